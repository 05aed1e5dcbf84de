package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zpc-sh/lsp-probe/internal/probe"
)

func cmdRaw() *cobra.Command {
	var payload string

	cmd := &cobra.Command{
		Use:   "raw",
		Short: "Send raw bytes and report whatever the target answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if payload != "" {
				data = []byte(payload)
			}

			result, err := probe.Raw(cmd.Context(), cfg.Addr(), data, probeOptions())
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&payload, "payload", "", `bytes to send (default "hello\n")`)

	return cmd
}

func cmdHTTP() *cobra.Command {
	return &cobra.Command{
		Use:   "http",
		Short: "Send a plain HTTP GET to see whether the target is an HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := probe.HTTP(cmd.Context(), cfg.Addr(), probeOptions())
			if err != nil {
				return err
			}
			report(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func probeOptions() probe.Options {
	return probe.Options{
		DialTimeout: cfg.Timeouts.Dial,
		ReadWindow:  cfg.Timeouts.Read,
		Logger:      logger,
	}
}

func report(w io.Writer, result *probe.Result) {
	fmt.Fprintf(w, "sent %d bytes: %q\n", len(result.Sent), result.Sent)
	switch {
	case result.TimedOut:
		fmt.Fprintln(w, "no response within the read window")
	case len(result.Received) == 0:
		fmt.Fprintln(w, "target closed the connection without answering")
	default:
		fmt.Fprintf(w, "received %d bytes: %q\n", len(result.Received), result.Received)
	}
}
