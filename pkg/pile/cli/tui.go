package cli

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/pile/pkg/pile/tuiview"
)

func newTUICmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Show the stack in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal is taken, so logs go to a file by default.
			s, err := f.open(filepath.Join(os.TempDir(), "pile-tui.log"))
			if err != nil {
				return err
			}
			defer s.close()

			var poller tuiview.Poller
			if s.poller != nil {
				poller = s.poller
			}

			m, err := tuiview.NewModel(tuiview.Options{
				Titles: s.translator.Cities(),
				Pile:   s.opts,
				FPS:    f.fps,
				Help:   s.help(),
				Status: s.translator.Cards,
				Poller: poller,
				Logger: s.logger,
			})
			if err != nil {
				return err
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}
