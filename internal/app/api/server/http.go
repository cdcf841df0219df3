package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lovelyapp/backend/docs"
	"github.com/lovelyapp/backend/internal/app/api/handlers"
	mw "github.com/lovelyapp/backend/internal/app/api/middleware"
	"github.com/lovelyapp/backend/internal/app/service/auth"
	"github.com/lovelyapp/backend/internal/app/service/handoff"
	"github.com/lovelyapp/backend/internal/app/service/profile"
	"github.com/lovelyapp/backend/internal/app/service/statistics"
	subsvc "github.com/lovelyapp/backend/internal/app/service/subscription"
	"github.com/lovelyapp/backend/internal/app/service/webhook"
	"github.com/lovelyapp/backend/internal/app/service/webhook_log"
	cfgpkg "github.com/lovelyapp/backend/pkg/config"
	"github.com/lovelyapp/backend/pkg/metrics"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newEngine(cfg *cfgpkg.Config) *gin.Engine {
	if cfg.Env == cfgpkg.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", mw.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", mw.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

// Deps are the services the routes are built from.
type Deps struct {
	fx.In

	Config       *cfgpkg.Config
	Log          *zap.SugaredLogger
	Auth         *auth.Service
	Redirector   *handoff.Redirector
	Profile      *profile.Service
	Subscription *subsvc.Service
	Statistics   *statistics.Service
	Webhook      *webhook.Handler
	WebhookLogs  *webhook_log.Service
}

func registerRoutes(lc fx.Lifecycle, r *gin.Engine, d Deps) {
	cfg, log := d.Config, d.Log

	// Prometheus metrics
	if cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.Options{Subsystem: "http", Logger: log})
		p.Use(r)
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				p.Start(cfg.MetricsAddr)
				log.Infow("metrics started", "addr", cfg.MetricsAddr)
				return nil
			},
			OnStop: p.Stop,
		})
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterHealthRoutes(pub)
	handlers.RegisterRedirectRoutes(pub, d.Redirector)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterWebhookRoutes(api.Group("/webhook"), d.Webhook, log)
	handlers.RegisterAuthRoutes(api.Group("/auth"), d.Auth, log)

	authed := api.Group("", mw.RequireAuth(d.Auth))
	handlers.RegisterProfileRoutes(authed.Group("/profile"), d.Profile, log)
	handlers.RegisterSubscriptionRoutes(authed.Group("/subscription"), d.Subscription, log)
	handlers.RegisterUserRoutes(authed.Group("/user"), d.Statistics, log)

	if cfg.Admin.APIKey != "" {
		handlers.RegisterAdminRoutes(api.Group("/admin", mw.RequireAdminKey(cfg.Admin.APIKey)), d.WebhookLogs, d.Subscription, log)
	}
}

func runServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("server error", "addr", addr, "err", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
