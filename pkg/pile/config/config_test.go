package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/pile/pkg/pile"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Equal(t, pile.DefaultAnimationConfig(), cfg.AnimationConfig())

	m, err := cfg.Metrics()
	require.NoError(t, err)
	require.Equal(t, pile.DefaultMetrics(), m)
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("applies animation overrides", func(t *testing.T) {
		t.Parallel()
		cfg, err := Parse([]byte(`
[animation]
duration = 1.0
delay = 0.25
damping = 0.8
initial_velocity = 0.5
begin_from_current_state = false
`))
		require.NoError(t, err)

		require.Equal(t, pile.AnimationConfig{
			Duration:              time.Second,
			Delay:                 250 * time.Millisecond,
			Damping:               0.8,
			InitialVelocity:       0.5,
			BeginFromCurrentState: false,
		}, cfg.AnimationConfig())
	})

	t.Run("selects the flip preset", func(t *testing.T) {
		t.Parallel()
		cfg, err := Parse([]byte(`preset = "flip"`))
		require.NoError(t, err)

		m, err := cfg.Metrics()
		require.NoError(t, err)
		require.Equal(t, pile.FlipMetrics(), m)
	})

	t.Run("overrides a metric on top of the preset", func(t *testing.T) {
		t.Parallel()
		cfg, err := Parse([]byte(`
[leading]
alpha = 0.5
dx = -1.0
dy = 0.0
`))
		require.NoError(t, err)

		m, err := cfg.Metrics()
		require.NoError(t, err)

		bounds := pile.Rect{W: 100, H: 40}
		v := pile.Resolve(m.Leading, nil, bounds)
		require.Equal(t, 0.5, v.Alpha)
		require.Equal(t, pile.Rect{X: -100, W: 100, H: 40}, v.Frame)
		require.True(t, v.Transform.IsIdentity())

		require.Equal(t, pile.DefaultTrailingMetric(), m.Trailing, "untouched metrics keep the preset")
	})

	t.Run("builds transforms from rotation keys", func(t *testing.T) {
		t.Parallel()
		cfg, err := Parse([]byte(`
[trailing]
rotate_y = 0.5
perspective = 500.0
`))
		require.NoError(t, err)

		m, err := cfg.Metrics()
		require.NoError(t, err)

		want := pile.Rotation3D(0.5, 0, 1, 0).Concat(pile.Perspective(500))
		require.Equal(t, want, m.Trailing.Transform())
	})

	t.Run("options carry metrics and timing", func(t *testing.T) {
		t.Parallel()
		cfg, err := Parse([]byte("preset = \"flip\"\n[animation]\nduration = 1.0\n"))
		require.NoError(t, err)

		opts, err := cfg.Options()
		require.NoError(t, err)
		require.NotNil(t, opts.Animation)
		require.Equal(t, time.Second, opts.Animation.Duration)
		require.Equal(t, pile.FlipLeadingMetric(), opts.Leading)
	})
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		is   error
	}{
		{name: "unknown preset", data: `preset = "spin"`, is: ErrUnknownPreset},
		{name: "negative duration", data: "[animation]\nduration = -1.0", is: ErrInvalid},
		{name: "zero damping", data: "[animation]\ndamping = 0.0", is: ErrInvalid},
		{name: "alpha above one", data: "[active]\nalpha = 1.5", is: ErrInvalid},
		{name: "negative perspective", data: "[leading]\nperspective = -10.0", is: ErrInvalid},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.data))
			require.ErrorIs(t, err, tt.is)
		})
	}

	t.Run("unknown keys", func(t *testing.T) {
		t.Parallel()
		_, err := Parse([]byte("[animation]\nspeed = 2.0"))
		require.ErrorContains(t, err, "animation.speed")
	})

	t.Run("malformed toml", func(t *testing.T) {
		t.Parallel()
		_, err := Parse([]byte("preset = "))
		require.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads a file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "pile.toml")
		require.NoError(t, os.WriteFile(path, []byte("preset = \"flip\"\n"), 0600))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, PresetFlip, cfg.Preset)
	})

	t.Run("names the file on error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("preset = \"nope\"\n"), 0600))

		_, err := Load(path)
		require.ErrorIs(t, err, ErrUnknownPreset)
		require.ErrorContains(t, err, "bad.toml")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
