// Command qrgen renders QR codes from request files without running the
// HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"qrstudio/internal/generator"
	"qrstudio/internal/infra"
	"qrstudio/internal/render"
)

var (
	debug        bool
	maxLogoBytes = "5MB"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "qrgen",
		Short:         "Render decorated QR codes from JSON requests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env := "production"
			if debug {
				env = "development"
			}
			logger := infra.NewLoggerTo(cmd.ErrOrStderr(), env, "qrgen")
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	root.PersistentFlags().StringVar(&maxLogoBytes, "max-logo-bytes", "5MB", "largest accepted logo")

	root.AddCommand(newRenderCmd(), newBatchCmd())
	return root
}

func newGenerator() (*generator.Generator, error) {
	limit, err := parseBytes(maxLogoBytes)
	if err != nil {
		return nil, fmt.Errorf("--max-logo-bytes: %w", err)
	}
	return generator.New(render.New(render.Options{MaxLogoBytes: limit}), nil), nil
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "qrgen:", err)
		os.Exit(1)
	}
}
