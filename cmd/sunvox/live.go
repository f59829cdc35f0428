package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aspect-build/sunvox-go/internal/midi"
)

var (
	liveModule    int
	livePort      string
	liveChannel   int
	liveTranspose int
	liveList      bool
)

var liveCmd = &cobra.Command{
	Use:   "live <file>",
	Short: "Play a module from a MIDI keyboard",
	Long: `Loads a project and routes notes and control changes from a MIDI
input port to one of its modules until Ctrl+C is pressed.

Use --list to print the available input ports. Hardware ports need a
binary built with -tags rtmidi.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if liveList {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runLive,
}

func init() {
	liveCmd.Flags().IntVarP(&liveModule, "module", "m", 1, "Target module number")
	liveCmd.Flags().StringVar(&livePort, "port", "", "MIDI input port name, or part of it (default from config)")
	liveCmd.Flags().IntVar(&liveChannel, "channel", -2, "MIDI channel 0-15, -1 for all (default from config)")
	liveCmd.Flags().IntVar(&liveTranspose, "transpose", 0, "Semitones added to every note")
	liveCmd.Flags().BoolVar(&liveList, "list", false, "List MIDI input ports and exit")
}

func runLive(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if liveList {
		ports := midi.Ports()
		if len(ports) == 0 {
			fmt.Fprintln(out, "No MIDI input ports")
		}
		for i, name := range ports {
			fmt.Fprintf(out, "%d: %s\n", i, name)
		}
		return nil
	}

	e, slot, err := openProject(args[0], cfg.InitFlags())
	if err != nil {
		return err
	}
	defer e.Close()

	m := slot.Module(liveModule)
	if !m.Exists() {
		return fmt.Errorf("module %d does not exist", liveModule)
	}

	port := livePort
	if port == "" {
		port = cfg.MIDI.Port
	}
	in, err := midi.FindPort(port)
	if err != nil {
		return err
	}

	mapping := midi.Mapping{
		Module:    liveModule,
		Channel:   cfg.MIDI.Channel,
		Transpose: cfg.MIDI.Transpose + liveTranspose,
	}
	if liveChannel >= -1 {
		mapping.Channel = liveChannel
	}

	stopOutput, err := startOutput(e)
	if err != nil {
		return err
	}
	defer stopOutput()

	fmt.Fprintf(out, "Playing %s from %s\n", m.Name(), in.String())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	ctx, cancel := signalContext()
	defer cancel()
	return midi.Listen(ctx, in, midi.NewBridge(slot, mapping, logger))
}
