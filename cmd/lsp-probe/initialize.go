package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zpc-sh/lsp-probe/internal/client"
)

func cmdInitialize() *cobra.Command {
	return &cobra.Command{
		Use:   "initialize",
		Short: "Send a framed initialize request and print the response",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeouts.Initialize)
			defer cancel()

			logger.Info().
				Str("addr", cfg.Addr()).
				Str("root_uri", cfg.RootURI).
				Msg("probing initialize")

			c, err := client.Dial(ctx, cfg.Addr(),
				client.WithLogger(logger),
				client.WithTimeout(cfg.Timeouts.Initialize),
			)
			if err != nil {
				return err
			}
			defer c.Close()

			msg, err := c.Initialize(cfg.RootURI, cfg.Workspace)
			if msg != nil {
				// Show whatever arrived, even alongside a truncation error.
				fmt.Fprintln(cmd.OutOrStdout(), msg.String())
			}
			return err
		},
	}
}
