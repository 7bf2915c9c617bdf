package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saxvideo/midiprocessor"
	"saxvideo/scheduler"
	"saxvideo/videogenerator"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsMatchPackages(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	assert.Equal(t, midiprocessor.DefaultSettings(), cfg.TimelineSettings())
	assert.Equal(t, scheduler.DefaultConfig(), cfg.SchedulerConfig())
	assert.Equal(t, videogenerator.DefaultRenderSettings(), cfg.RenderSettings())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeFile(t, dir, "sax.yaml", `
width: 1280
height: 720
playline_x: 300
tempo_aware: false
retire_policy: playline
allowed_origins: ["http://localhost:3000"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Width)
	assert.False(t, cfg.TempoAware)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 60, cfg.FPS, "unset keys keep their defaults")

	sc := cfg.SchedulerConfig()
	assert.Equal(t, scheduler.RetireAtPlayline, sc.Policy)
	assert.Equal(t, 1280.0, sc.SpawnX)
	assert.Equal(t, 300.0, sc.PlaylineX)
	assert.Equal(t, 1480.0, cfg.TimelineSettings().SpawnBaseX)
	assert.Equal(t, videogenerator.ScreenResolution{1280, 720}, cfg.RenderSettings().Resolution)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeFile(t, dir, "sax.yaml", "fps: 30\nscroll_speed: 3\n")

	t.Setenv("SAXVIDEO_FPS", "24")
	t.Setenv("SAXVIDEO_AUDIO", "true")
	t.Setenv("SAXVIDEO_ALLOWED_ORIGINS", "http://a,http://b")
	t.Setenv("SAXVIDEO_OUTPUT", "out/video.mp4")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.FPS)
	assert.Equal(t, 3.0, cfg.ScrollSpeed)
	assert.True(t, cfg.Audio)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.AllowedOrigins)

	opts := cfg.GeneratorOptions("song.mid")
	assert.Equal(t, "song.mid", opts.MidiFilePath)
	assert.Equal(t, "out/video.mp4", opts.OutputPath)
	assert.Equal(t, 24, opts.Scheduler.FPS)
	assert.Equal(t, 24, opts.Timeline.FPS)
	assert.True(t, opts.Audio)
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, ".env", "SAXVIDEO_PIXELS_PER_BEAT=90\n")
	t.Cleanup(func() { os.Unsetenv("SAXVIDEO_PIXELS_PER_BEAT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 90.0, cfg.PixelsPerBeat)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "width: [1, 2]\n")
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("SAXVIDEO_FPS", "fast")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAXVIDEO_FPS")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero width":        func(c *Config) { c.Width = 0 },
		"playline outside":  func(c *Config) { c.PlaylineX = 5000 },
		"unknown policy":    func(c *Config) { c.RetirePolicy = "never" },
		"negative margin":   func(c *Config) { c.SafetyMargin = -1 },
		"zero scroll speed": func(c *Config) { c.ScrollSpeed = 0 },
		"zero fps":          func(c *Config) { c.FPS = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
