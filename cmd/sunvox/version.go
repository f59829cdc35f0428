package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sunvox "github.com/aspect-build/sunvox-go"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show SunVox library version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "sunvox-go: %s\n", sunvox.BindingVersion)

		e, err := openEngine(cfg.InitFlags())
		if err != nil {
			return err
		}
		defer e.Close()
		fmt.Fprintf(out, "SunVox library: %s\n", e.Version())
		fmt.Fprintf(out, "Sample rate: %d Hz\n", e.SampleRate())
		return nil
	},
}
