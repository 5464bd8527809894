package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/pile/pkg/pile/sdlview"
)

var errNoFont = errors.New("--font is required")

func newSDLCmd(f *flags) *cobra.Command {
	var (
		fontPath   string
		fullscreen bool
		borderless bool
	)

	cmd := &cobra.Command{
		Use:   "sdl",
		Short: "Show the stack in an SDL window",
		Long: `Show the stack in an SDL window. Set ENVIRONMENT=DEV to run in a
decorated window sized by WINDOW_WIDTH and WINDOW_HEIGHT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fontPath == "" {
				return errNoFont
			}

			s, err := f.open("")
			if err != nil {
				return err
			}
			defer s.close()

			var poller sdlview.Poller
			if s.poller != nil {
				poller = s.poller
			}

			return sdlview.Run(sdlview.Options{
				Title:  "pile",
				Titles: s.translator.Cities(),
				Help:   s.help(),
				Theme:  sdlview.DefaultTheme(fontPath),
				Pile:   s.opts,
				FPS:    f.fps,
				Window: sdlview.WindowOptions{
					Resizable:         !fullscreen,
					Borderless:        borderless,
					FullscreenDesktop: fullscreen,
				},
				Poller: poller,
				Logger: s.logger,
			})
		},
	}

	cmd.Flags().StringVar(&fontPath, "font", "", "TTF font for card titles")
	cmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "cover the desktop")
	cmd.Flags().BoolVar(&borderless, "borderless", false, "remove window decorations")

	return cmd
}
