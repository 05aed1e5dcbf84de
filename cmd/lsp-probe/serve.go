package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zpc-sh/lsp-probe/internal/testserver"
)

// cmdServe runs the built-in probe target, mainly for exercising the probe
// by hand without a real language server around.
func cmdServe() *cobra.Command {
	return &cobra.Command{
		Use:    "serve",
		Short:  "Run a minimal LSP server to probe against",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := cfg.Addr()
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s listening on %s\n", testserver.Name, version, addr)
			return testserver.New().RunTCP(addr)
		},
	}
}
