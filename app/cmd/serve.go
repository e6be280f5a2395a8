package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	hostruntime "github.com/RamakrishnanGH/sqlopsstudio/app/hostd/runtime"
)

func newServeCmd() *cobra.Command {
	var stdio bool
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the extension-host surface over JSON-RPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.ListenAddr = listen
			}
			rt, err := hostruntime.New(cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if stdio {
				err = rt.Server.ServeStdio(ctx)
			} else {
				err = rt.Server.ListenAndServe(ctx, cfg.ListenAddr)
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&stdio, "stdio", false, "serve a single host over stdin/stdout")
	cmd.Flags().StringVar(&listen, "listen", "", "TCP listen address (overrides config)")
	return cmd
}
