package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	sunvox "github.com/aspect-build/sunvox-go"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show project information",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var modulesCmd = &cobra.Command{
	Use:   "modules <file>",
	Short: "List all modules in a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runModules,
}

var moduleCmd = &cobra.Command{
	Use:   "module <file> <id>",
	Short: "Show module details",
	Args:  cobra.ExactArgs(2),
	RunE:  runModule,
}

var patternsCmd = &cobra.Command{
	Use:   "patterns <file>",
	Short: "List all patterns in a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatterns,
}

func runInfo(cmd *cobra.Command, args []string) error {
	e, slot, err := openProject(args[0], cfg.InitFlags())
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File: %s\n", filepath.Base(args[0]))
	fmt.Fprintf(out, "Name: %s\n", slot.Name())
	fmt.Fprintf(out, "BPM: %d\n", slot.BPM())
	fmt.Fprintf(out, "TPL: %d\n", slot.TPL())
	fmt.Fprintf(out, "Lines: %d\n", slot.LengthLines())
	fmt.Fprintf(out, "Frames: %d\n", slot.LengthFrames())
	fmt.Fprintf(out, "Duration: %.2fs\n", slot.Duration().Seconds())
	fmt.Fprintf(out, "Modules: %d\n", slot.NumModules())
	fmt.Fprintf(out, "Patterns: %d\n", slot.NumPatterns())
	return nil
}

func moduleFlags(f sunvox.ModuleFlags) string {
	var flags []string
	if f.IsGenerator() {
		flags = append(flags, "gen")
	}
	if f.IsEffect() {
		flags = append(flags, "fx")
	}
	if f.IsMuted() {
		flags = append(flags, "mute")
	}
	if f.IsSolo() {
		flags = append(flags, "solo")
	}
	if f.IsBypassed() {
		flags = append(flags, "bypass")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func runModules(cmd *cobra.Command, args []string) error {
	e, slot, err := openProject(args[0], cfg.InitFlags())
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Modules in '%s':\n\n", slot.Name())
	fmt.Fprintf(out, "%4s  %-20s  %-24s  %s\n", "ID", "Type", "Name", "Flags")
	fmt.Fprintln(out, strings.Repeat("-", 70))
	for _, m := range slot.Modules() {
		fmt.Fprintf(out, "%4d  %-20s  %-24s  %s\n", m.Num(), m.Type(), m.Name(), moduleFlags(m.Flags()))
	}
	return nil
}

func runModule(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid module id %q", args[1])
	}
	e, slot, err := openProject(args[0], cfg.InitFlags())
	if err != nil {
		return err
	}
	defer e.Close()

	m := slot.Module(id)
	f := m.Flags()
	if !f.Exists() {
		return fmt.Errorf("module %d does not exist", id)
	}

	out := cmd.OutOrStdout()
	x, y := m.Position()
	fmt.Fprintf(out, "Module %d: %s\n", id, m.Name())
	fmt.Fprintf(out, "  Type: %s\n", m.Type())
	fmt.Fprintf(out, "  Position: (%d, %d)\n", x, y)
	fmt.Fprintf(out, "  Color: #%06x\n", int(m.Color()))
	fmt.Fprintf(out, "  Generator: %t\n", f.IsGenerator())
	fmt.Fprintf(out, "  Effect: %t\n", f.IsEffect())
	fmt.Fprintf(out, "  Muted: %t\n", f.IsMuted())
	fmt.Fprintf(out, "  Solo: %t\n", f.IsSolo())
	fmt.Fprintf(out, "  Bypassed: %t\n", f.IsBypassed())
	fmt.Fprintf(out, "  Inputs: %s\n", intList(m.Inputs()))
	fmt.Fprintf(out, "  Outputs: %s\n", intList(m.Outputs()))

	ctls := m.Controllers()
	fmt.Fprintf(out, "\n  Controllers (%d):\n", len(ctls))
	for _, c := range ctls {
		fmt.Fprintf(out, "    %d: %s = %d (range: %d-%d)\n", c.Num(), c.Name(), c.Display(), c.Min(), c.Max())
	}
	return nil
}

func runPatterns(cmd *cobra.Command, args []string) error {
	e, slot, err := openProject(args[0], cfg.InitFlags())
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Patterns in '%s':\n\n", slot.Name())
	fmt.Fprintf(out, "%4s  %-24s  %6s  %6s  %s\n", "ID", "Name", "Tracks", "Lines", "Position")
	fmt.Fprintln(out, strings.Repeat("-", 70))
	for _, p := range slot.Patterns() {
		x, y := p.Position()
		fmt.Fprintf(out, "%4d  %-24s  %6d  %6d  (%d, %d)\n", p.Num(), p.Name(), p.Tracks(), p.Lines(), x, y)
	}
	return nil
}

// intList formats ids as "[1, 2]".
func intList(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
