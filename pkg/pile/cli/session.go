package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BrandonKowalski/pile/pkg/pile"
	"github.com/BrandonKowalski/pile/pkg/pile/config"
	"github.com/BrandonKowalski/pile/pkg/pile/constants"
	"github.com/BrandonKowalski/pile/pkg/pile/internal"
	"github.com/BrandonKowalski/pile/pkg/pile/internal/input"
	"github.com/BrandonKowalski/pile/pkg/pile/internal/locale"
)

var errFPS = errors.New("fps must be positive")

// session is what both demos need: pile options from the config file,
// translations, an optional input device and a logger.
type session struct {
	opts       pile.Options
	translator *locale.Translator
	poller     *input.Poller
	logger     *slog.Logger
}

func (f *flags) open(defaultLogPath string) (*session, error) {
	logPath := f.logPath
	if logPath == "" {
		logPath = defaultLogPath
	}
	if logPath != "" {
		internal.SetLogPath(logPath)
	}
	level := internal.ParseLogLevel(f.logLevel)
	internal.SetLogLevel(level)
	internal.SetInternalLogLevel(level)
	logger := internal.GetLogger()

	if f.fps <= 0 {
		return nil, fmt.Errorf("--fps %d: %w", f.fps, errFPS)
	}

	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts.Logger = internal.GetInternalLogger()

	tr, err := locale.New(f.languages()...)
	if err != nil {
		return nil, err
	}

	s := &session{opts: opts, translator: tr, logger: logger}

	if f.inputDevice != "" {
		src, err := input.OpenEvdev(f.inputDevice)
		if err != nil {
			return nil, err
		}
		s.poller = input.NewPoller(src)
	}

	logger.Info("Session ready",
		"preset", cfg.Preset,
		"language", tr.Language().String(),
		"input_device", f.inputDevice,
		"fps", f.fps)
	return s, nil
}

func (s *session) close() {
	if s.poller != nil {
		if err := s.poller.Close(); err != nil {
			s.logger.Warn("Closing input device failed", "error", err)
		}
	}
}

// help returns the translated key hints.
func (s *session) help() string {
	t := s.translator
	return fmt.Sprintf("→ %s  ← %s  u %s  r %s  q %s",
		t.Text(locale.HintPush),
		t.Text(locale.HintPop),
		t.Text(locale.HintUpdate),
		t.Text(locale.HintReset),
		t.Text(locale.HintQuit))
}

func (f *flags) loadConfig() (*config.Config, error) {
	path := f.config
	if path == "" {
		path = os.Getenv(constants.ConfigPathEnvVar)
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// languages returns the language preferences, most preferred first.
func (f *flags) languages() []string {
	var langs []string
	for _, v := range []string{f.lang, os.Getenv(constants.LanguageEnvVar), posixLocale(os.Getenv("LANG"))} {
		if v != "" {
			langs = append(langs, v)
		}
	}
	return langs
}

// posixLocale turns a POSIX locale such as pt_BR.UTF-8 into a BCP 47
// tag such as pt-BR.
func posixLocale(v string) string {
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if v == "C" || v == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(v, "_", "-")
}
