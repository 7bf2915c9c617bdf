package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"saxvideo/midiprocessor"
	"saxvideo/scheduler"
	"saxvideo/videogenerator"
)

const envPrefix = "SAXVIDEO_"

// Config holds every process parameter. Values are layered: defaults, then
// the YAML file, then SAXVIDEO_* environment variables (a .env file in the
// working directory is loaded first).
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`

	ScrollSpeed   float64 `yaml:"scroll_speed"`
	PixelsPerBeat float64 `yaml:"pixels_per_beat"`
	PlaylineX     float64 `yaml:"playline_x"`
	// SpawnOffset is how far right of the window a note at beat zero starts.
	SpawnOffset    float64 `yaml:"spawn_offset"`
	TempoAware     bool    `yaml:"tempo_aware"`
	FlatNoteLength float64 `yaml:"flat_note_length"`
	RetirePolicy   string  `yaml:"retire_policy"`
	// SafetyMargin is in seconds.
	SafetyMargin float64 `yaml:"safety_margin"`

	FramesFolder string `yaml:"frames_folder"`
	OutputPath   string `yaml:"output"`
	FFmpegPath   string `yaml:"ffmpeg"`
	TimidityPath string `yaml:"timidity"`
	Audio        bool   `yaml:"audio"`
	KeepFrames   bool   `yaml:"keep_frames"`

	ServerAddr     string   `yaml:"server_addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	Debug bool `yaml:"debug"`
}

func Default() Config {
	var tl = midiprocessor.DefaultSettings()
	var sc = scheduler.DefaultConfig()
	var gen = videogenerator.DefaultOptions()

	return Config{
		Width:          1600,
		Height:         900,
		FPS:            sc.FPS,
		ScrollSpeed:    sc.ScrollSpeed,
		PixelsPerBeat:  tl.PixelsPerBeat,
		PlaylineX:      sc.PlaylineX,
		SpawnOffset:    200,
		TempoAware:     tl.TempoAware,
		FlatNoteLength: tl.FlatNoteLength,
		RetirePolicy:   sc.Policy.String(),
		SafetyMargin:   sc.SafetyMargin,
		FramesFolder:   gen.FramesFolder,
		FFmpegPath:     gen.FFmpegPath,
		TimidityPath:   gen.TimidityPath,
		ServerAddr:     ":8888",
		AllowedOrigins: []string{"*"},
	}
}

// Load builds the configuration. path may be empty; a named file that
// cannot be read is an error, a missing .env file is not.
func Load(path string) (Config, error) {
	var cfg = Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config file %s", path)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return cfg, errors.Wrap(err, "load .env")
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(envPrefix + key)
	if value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, dst *int) error {
	v := getEnv(key, "")
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.Wrapf(err, "%s%s", envPrefix, key)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v := getEnv(key, "")
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errors.Wrapf(err, "%s%s", envPrefix, key)
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	v := getEnv(key, "")
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.Wrapf(err, "%s%s", envPrefix, key)
	}
	*dst = b
	return nil
}

func (c *Config) applyEnv() error {
	for key, dst := range map[string]*int{
		"WIDTH":  &c.Width,
		"HEIGHT": &c.Height,
		"FPS":    &c.FPS,
	} {
		if err := envInt(key, dst); err != nil {
			return err
		}
	}

	for key, dst := range map[string]*float64{
		"SCROLL_SPEED":     &c.ScrollSpeed,
		"PIXELS_PER_BEAT":  &c.PixelsPerBeat,
		"PLAYLINE_X":       &c.PlaylineX,
		"SPAWN_OFFSET":     &c.SpawnOffset,
		"FLAT_NOTE_LENGTH": &c.FlatNoteLength,
		"SAFETY_MARGIN":    &c.SafetyMargin,
	} {
		if err := envFloat(key, dst); err != nil {
			return err
		}
	}

	for key, dst := range map[string]*bool{
		"TEMPO_AWARE": &c.TempoAware,
		"AUDIO":       &c.Audio,
		"KEEP_FRAMES": &c.KeepFrames,
		"DEBUG":       &c.Debug,
	} {
		if err := envBool(key, dst); err != nil {
			return err
		}
	}

	c.RetirePolicy = getEnv("RETIRE_POLICY", c.RetirePolicy)
	c.FramesFolder = getEnv("FRAMES_FOLDER", c.FramesFolder)
	c.OutputPath = getEnv("OUTPUT", c.OutputPath)
	c.FFmpegPath = getEnv("FFMPEG", c.FFmpegPath)
	c.TimidityPath = getEnv("TIMIDITY", c.TimidityPath)
	c.ServerAddr = getEnv("ADDR", c.ServerAddr)
	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		c.AllowedOrigins = strings.Split(origins, ",")
	}
	return nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if _, err := scheduler.ParseRetirePolicy(c.RetirePolicy); err != nil {
		return err
	}
	if c.SafetyMargin < 0 {
		return errors.Errorf("safety margin must not be negative, got %v", c.SafetyMargin)
	}
	if err := c.TimelineSettings().Validate(); err != nil {
		return err
	}
	return c.RenderSettings().Validate()
}

func (c Config) TimelineSettings() midiprocessor.Settings {
	return midiprocessor.Settings{
		PixelsPerBeat:  c.PixelsPerBeat,
		ScrollSpeed:    c.ScrollSpeed,
		FPS:            c.FPS,
		SpawnBaseX:     float64(c.Width) + c.SpawnOffset,
		TempoAware:     c.TempoAware,
		FlatNoteLength: c.FlatNoteLength,
	}
}

// SchedulerConfig spawns notes at the right edge of the window and retires
// them at its left edge.
func (c Config) SchedulerConfig() scheduler.Config {
	policy, _ := scheduler.ParseRetirePolicy(c.RetirePolicy)
	return scheduler.Config{
		FPS:          c.FPS,
		ScrollSpeed:  c.ScrollSpeed,
		SpawnX:       float64(c.Width),
		PlaylineX:    c.PlaylineX,
		LeftEdge:     0,
		Policy:       policy,
		SafetyMargin: c.SafetyMargin,
	}
}

func (c Config) RenderSettings() videogenerator.RenderSettings {
	var s = videogenerator.DefaultRenderSettings()
	s.Resolution = videogenerator.ScreenResolution{float64(c.Width), float64(c.Height)}
	s.PlaylineX = c.PlaylineX
	return s
}

func (c Config) GeneratorOptions(midiFilePath string) videogenerator.Options {
	var opts = videogenerator.DefaultOptions()
	opts.MidiFilePath = midiFilePath
	opts.OutputPath = c.OutputPath
	opts.FramesFolder = c.FramesFolder
	opts.KeepFrames = c.KeepFrames
	opts.Audio = c.Audio
	opts.FFmpegPath = c.FFmpegPath
	opts.TimidityPath = c.TimidityPath
	opts.Timeline = c.TimelineSettings()
	opts.Scheduler = c.SchedulerConfig()
	opts.Render = c.RenderSettings()
	return opts
}
