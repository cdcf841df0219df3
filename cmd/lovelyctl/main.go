// Command lovelyctl is the operator tool: it manages users, replays and
// inspects webhooks, and runs the dashboard session bootstrap from a terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/lovelyapp/backend/internal/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lovelyctl",
		Short:         "LovelyApp operator tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newUserCmd(), newWebhookCmd(), newSessionCmd())
	return root
}

// withServices starts the platform and service layer, populates targets and
// runs fn. The HTTP server is not started.
func withServices(ctx context.Context, fn func() error, targets ...any) error {
	a := fx.New(
		app.Platform,
		app.Services,
		fx.NopLogger,
		fx.Populate(targets...),
	)
	if err := a.Err(); err != nil {
		return err
	}
	startCtx, cancel := context.WithTimeout(ctx, app.DefaultStartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
		defer cancel()
		_ = a.Stop(stopCtx)
	}()
	return fn()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
