package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Azhovan/typedini"
	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDumpCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print every coerced value of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDump(cmd, args[0])
		},
	}

	cmd.Flags().String("section", "", "only dump this section")
	cmd.Flags().String("format", "text", "output format: text, json, yaml, toml")
	cmd.Flags().Bool("sources", false, "annotate values with source, kind and fallback status")
	cmd.Flags().String("out", "", "write to this file atomically instead of stdout")

	return cmd
}

func (a *app) runDump(cmd *cobra.Command, path string) error {
	formatOpt, err := typedini.DumpFormat(a.v.GetString("format"))
	if err != nil {
		return err
	}
	opts := []typedini.DumpOption{formatOpt}
	if a.v.GetBool("sources") {
		opts = append(opts, typedini.WithSources())
	}
	if section := a.v.GetString("section"); section != "" {
		opts = append(opts, typedini.OnlySection(section))
	}

	loader, err := a.loader()
	if err != nil {
		return err
	}
	snap, err := loader.Load(cmd.Context(), path)
	if err != nil {
		return err
	}

	a.logger.Debug("loaded config",
		zap.String("path", path),
		zap.Strings("sections", snap.SectionNames()),
		zap.Int("degraded", len(snap.Degraded())),
	)

	out := a.v.GetString("out")
	if out == "" {
		return typedini.Dump(cmd.OutOrStdout(), snap, opts...)
	}
	return writeAtomically(out, func(w io.Writer) error {
		return typedini.Dump(w, snap, opts...)
	})
}

// writeAtomically writes through a pending file so readers never see a
// partially written dump.
func writeAtomically(path string, write func(io.Writer) error) (err error) {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(os.FileMode(0o644)))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		if cerr := pendingFile.Cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("cleanup pending file: %w", cerr)
		}
	}()

	if err := write(pendingFile); err != nil {
		return err
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}

	return nil
}
