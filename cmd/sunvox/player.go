package main

import (
	"github.com/spf13/cobra"

	"github.com/aspect-build/sunvox-go/internal/tui"
)

var playerCmd = &cobra.Command{
	Use:   "player <file>",
	Short: "Play a project in an interactive terminal player",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	e, slot, err := openProject(args[0], cfg.InitFlags())
	if err != nil {
		return err
	}
	defer e.Close()

	if err := slot.SetVolume(cfg.Player.Volume); err != nil {
		return err
	}
	stopOutput, err := startOutput(e)
	if err != nil {
		return err
	}
	defer stopOutput()

	return tui.Run(slot, e.Channels(), cfg.PollInterval())
}
