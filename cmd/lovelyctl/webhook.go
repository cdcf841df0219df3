package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/lovelyapp/backend/internal/app/service/webhook_log"
	"github.com/lovelyapp/backend/internal/store"
	"github.com/lovelyapp/backend/pkg/config"
	"github.com/lovelyapp/backend/pkg/tool"
	"github.com/lovelyapp/backend/pkg/types"
)

func newWebhookCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "webhook", Short: "Send and inspect Perfect Pay webhooks"}
	cmd.AddCommand(newWebhookSendCmd(), newWebhookLogsCmd())
	return cmd
}

func newWebhookSendCmd() *cobra.Command {
	var target, email, name, plan, saleCode string
	var status int
	var amount float64
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Post a sample sale notification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if target == "" {
				cfg, err := config.New()
				if err != nil {
					return err
				}
				target = cfg.URLs.API + "/api/webhook/perfect-pay"
			}
			if saleCode == "" {
				saleCode = "CLI-" + tool.GenerateUUIDV7()
			}
			body, err := json.Marshal(map[string]any{
				"token":            tool.GenerateUUIDV7(),
				"code":             saleCode,
				"sale_status_enum": status,
				"sale_amount":      amount,
				"currency_enum":    1,
				"date_approved":    time.Now().Format("2006-01-02 15:04:05"),
				"customer":         map[string]string{"email": email, "full_name": name},
				"plan":             map[string]string{"code": plan},
			})
			if err != nil {
				return err
			}
			hc := &http.Client{Timeout: 15 * time.Second}
			status, code, out, err := postJSON(cmd.Context(), hc, target, body)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", status, out)
			if code >= 300 {
				return fmt.Errorf("webhook rejected with %d", code)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "url", "", "webhook endpoint (default <urls.api>/api/webhook/perfect-pay)")
	cmd.Flags().StringVar(&email, "email", "", "customer email")
	cmd.Flags().StringVar(&name, "name", "", "customer full name")
	cmd.Flags().StringVar(&plan, "plan", types.DefaultPlans()[0].Code, "Perfect Pay plan code")
	cmd.Flags().StringVar(&saleCode, "code", "", "sale code (generated when empty)")
	cmd.Flags().IntVar(&status, "status", int(types.SaleStatusApproved), "sale_status_enum")
	cmd.Flags().Float64Var(&amount, "amount", 47.90, "sale amount")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newWebhookLogsCmd() *cobra.Command {
	var failed bool
	var limit int
	var saleCode string
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List received webhook calls, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var svc *webhook_log.Service
			return withServices(cmd.Context(), func() error {
				logs, err := svc.List(cmd.Context(), store.WebhookLogFilter{
					FailedOnly: failed,
					SaleCode:   saleCode,
					Limit:      limit,
				})
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "RECEIVED\tSALE\tSTATUS\tPROCESSED\tERROR")
				for _, l := range logs {
					fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\n",
						l.CreatedAt.Format(time.RFC3339), l.SaleCode, l.Status, l.Processed, lo.FromPtr(l.Error))
				}
				return w.Flush()
			}, &svc)
		},
	}
	cmd.Flags().BoolVar(&failed, "failed", false, "only calls with a recorded error")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows")
	cmd.Flags().StringVar(&saleCode, "code", "", "filter by sale code")
	return cmd
}

// postJSON sends body and returns the status line, code and full response body.
func postJSON(ctx context.Context, hc *http.Client, target string, body []byte) (string, int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return "", 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := hc.Do(req)
	if err != nil {
		return "", 0, nil, err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, nil, fmt.Errorf("read webhook response: %w", err)
	}
	return resp.Status, resp.StatusCode, out, nil
}
