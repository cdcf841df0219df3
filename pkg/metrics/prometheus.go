package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var reqCnt = &Metric{
	ID:          "reqCnt",
	Name:        "req_total",
	Description: "How many HTTP requests processed, partitioned by status code, method and route.",
	Type:        "counter_vec",
	Args:        []string{"code", "method", "url"},
}

var reqDur = &Metric{
	ID:          "reqDur",
	Name:        "req_dur_ms",
	Description: "The HTTP request latencies in milliseconds.",
	Type:        "histogram_vec",
	Args:        []string{"code", "method", "url"},
}

var resSz = &Metric{
	ID:          "resSz",
	Name:        "resp_sz_bytes",
	Description: "The HTTP response sizes in bytes.",
	Type:        "summary_vec",
	Args:        []string{"code", "method", "url"},
}

const defaultMetricPath = "/metrics"

// URLLabelFn maps a request to its "url" label. Returning the route
// template keeps label cardinality bounded.
type URLLabelFn func(c *gin.Context) string

// Prometheus is a gin middleware recording request metrics, served on a
// dedicated listener so scrapes stay out of the access log.
type Prometheus struct {
	reqCnt *prometheus.CounterVec
	reqDur *prometheus.HistogramVec
	resSz  *prometheus.SummaryVec

	urlLabel    URLLabelFn
	metricsPath string
	log         *zap.SugaredLogger
	srv         *http.Server
}

type Options struct {
	Subsystem  string
	URLLabelFn URLLabelFn
	Registerer prometheus.Registerer
	Logger     *zap.SugaredLogger
}

func NewPrometheus(opts Options) *Prometheus {
	p := &Prometheus{
		urlLabel:    opts.URLLabelFn,
		metricsPath: defaultMetricPath,
		log:         opts.Logger,
	}
	if p.urlLabel == nil {
		p.urlLabel = func(c *gin.Context) string {
			if fp := c.FullPath(); fp != "" {
				return fp
			}
			return "unmatched"
		}
	}
	if p.log == nil {
		p.log = zap.NewNop().Sugar()
	}
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p.reqCnt = register(reg, reqCnt, opts.Subsystem, p.log).(*prometheus.CounterVec)
	p.reqDur = register(reg, reqDur, opts.Subsystem, p.log).(*prometheus.HistogramVec)
	p.resSz = register(reg, resSz, opts.Subsystem, p.log).(*prometheus.SummaryVec)
	return p
}

// register returns the already registered collector when one exists.
func register(reg prometheus.Registerer, m *Metric, subsystem string, log *zap.SugaredLogger) prometheus.Collector {
	c := NewMetric(m, subsystem)
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		log.Errorw("metric_register_failed", "metric", m.Name, "err", err)
	}
	m.MetricCollector = c
	return c
}

// HandlerFunc records every request except scrapes.
func (p *Prometheus) HandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == p.metricsPath {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		url := p.urlLabel(c)
		p.reqDur.WithLabelValues(status, c.Request.Method, url).Observe(MillisecondsSince(start))
		p.reqCnt.WithLabelValues(status, c.Request.Method, url).Inc()
		p.resSz.WithLabelValues(status, c.Request.Method, url).Observe(float64(max(c.Writer.Size(), 0)))
	}
}

// Use installs the middleware on e.
func (p *Prometheus) Use(e *gin.Engine) {
	e.Use(p.HandlerFunc())
}

// Start serves the metrics endpoint on addr until Stop is called.
func (p *Prometheus) Start(addr string) {
	r := gin.New()
	r.GET(p.metricsPath, gin.WrapH(promhttp.Handler()))
	p.srv = &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := p.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.log.Errorw("metrics server error", "addr", addr, "err", err)
		}
	}()
}

func (p *Prometheus) Stop(ctx context.Context) error {
	if p.srv == nil {
		return nil
	}
	return p.srv.Shutdown(ctx)
}
