// Package cli implements the pile command line: demos of the card stack
// in a terminal and in an SDL window.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/pile/pkg/pile"
	"github.com/BrandonKowalski/pile/pkg/pile/internal"
)

type flags struct {
	config      string
	lang        string
	logPath     string
	logLevel    string
	inputDevice string
	fps         int
}

// NewRootCommand builds the pile command tree.
func NewRootCommand() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "pile",
		Short: "Animated card stack demos",
		Long: `pile pushes and pops cards on an animated stack. Hold push to start
transitions faster than they finish.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "TOML config file (default $PILE_CONFIG)")
	pf.StringVar(&f.lang, "lang", "", "card language, e.g. es or pt-BR (default $PILE_LANG, then $LANG)")
	pf.StringVar(&f.logPath, "log-path", "", "write logs to this rotating file")
	pf.StringVar(&f.logLevel, "log-level", "warn", "debug, info, warn or error")
	pf.StringVar(&f.inputDevice, "input-device", "", "also read keys from an evdev node such as /dev/input/event1")
	pf.IntVar(&f.fps, "fps", pile.DefaultFPS, "animation frames per second")

	root.AddCommand(newTUICmd(f))
	root.AddCommand(newSDLCmd(f))

	return root
}

// Execute runs the command line with ctx.
func Execute(ctx context.Context) error {
	defer internal.CloseLogger()
	return NewRootCommand().ExecuteContext(ctx)
}
