package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get FILE SECTION KEY",
		Short: "Print one coerced value as JSON",
		Long: "Print one coerced value as JSON. When the section or key is absent the\n" +
			"--default text is printed as a JSON string, without coercion.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGet(cmd, args[0], args[1], args[2])
		},
	}

	cmd.Flags().String("default", "", "value printed when the section or key is absent")

	return cmd
}

func (a *app) runGet(cmd *cobra.Command, path, section, key string) error {
	loader, err := a.loader()
	if err != nil {
		return err
	}

	var def any
	if cmd.Flags().Changed("default") || a.v.IsSet("default") {
		def = a.v.GetString("default")
	}

	v, err := loader.Get(cmd.Context(), path, section, key, def)
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
