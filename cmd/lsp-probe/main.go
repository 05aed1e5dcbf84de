package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zpc-sh/lsp-probe/internal/config"
)

const version = "0.1.0"

var (
	settings *viper.Viper
	cfg      *config.Config
	logger   zerolog.Logger
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "lsp-probe",
		Short: "Probe a Language Server Protocol endpoint over a raw TCP socket",
		Long: `lsp-probe is a diagnostic client for LSP endpoints served over TCP.

It connects to the target, writes a Content-Length framed JSON-RPC
initialize request, and prints whatever comes back. When the target does
not speak LSP at all, the raw and http subcommands push arbitrary bytes
down the socket and report the response.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return errors.Wrapf(err, "invalid log level %q", logLevel)
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				With().Timestamp().Logger().Level(level)

			cfg, err = config.Resolve(settings)
			return err
		},
	}

	settings = config.New()

	flags := cmd.PersistentFlags()
	flags.StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("host", config.DefaultHost, "target host")
	flags.Int("port", config.DefaultPort, "target port")
	flags.String("root-uri", config.DefaultRootURI, "workspace root URI sent in initialize")
	flags.String("workspace", config.DefaultWorkspace, "workspace folder name sent in initialize")

	for key, name := range map[string]string{
		"host":      "host",
		"port":      "port",
		"root_uri":  "root-uri",
		"workspace": "workspace",
	} {
		if err := settings.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(
		cmdInitialize(),
		cmdRaw(),
		cmdHTTP(),
		cmdServe(),
	)

	return cmd
}
