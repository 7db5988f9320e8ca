package main

import (
	"fmt"
	"strings"

	"github.com/Azhovan/typedini"
	"github.com/Azhovan/typedini/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

const envPrefix = "TYPEDINI"

// app carries what every subcommand needs once flags are resolved.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:          "typedini",
		Short:        "Inspect INI files with typed values",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().String("encoding", "", "file encoding as an IANA name (default UTF-8), e.g. windows-1252")
	cmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")

	cmd.AddCommand(newDumpCmd(a), newGetCmd(a))
	return cmd
}

// init binds flags and TYPEDINI_* environment variables, then builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	level, err := zapcore.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.logger = logger.Named("typedini")

	return nil
}

func (a *app) loader() (*typedini.Loader, error) {
	l := typedini.NewLoader().WithReporter(report.Zap(a.logger))

	name := a.v.GetString("encoding")
	if name == "" {
		return l, nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return l.WithEncoding(enc), nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}
