package videogenerator

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"saxvideo/midiprocessor"
	"saxvideo/scheduler"
)

type Options struct {
	MidiFilePath string
	// OutputPath defaults to output/<midi name>.mp4.
	OutputPath string
	// FramesFolder is the parent of the per-run frames directory.
	FramesFolder string
	KeepFrames   bool
	// FramesOnly skips the ffmpeg step and implies KeepFrames.
	FramesOnly bool
	// Audio renders a soundtrack with timidity and muxes it in.
	Audio bool
	// Paced throttles capture to real time.
	Paced        bool
	FFmpegPath   string
	TimidityPath string

	Timeline  midiprocessor.Settings
	Scheduler scheduler.Config
	Render    RenderSettings
}

func DefaultOptions() Options {
	return Options{
		FramesFolder: framesFolderPath,
		FFmpegPath:   "ffmpeg",
		TimidityPath: "timidity",
		Timeline:     midiprocessor.DefaultSettings(),
		Scheduler:    scheduler.DefaultConfig(),
		Render:       DefaultRenderSettings(),
	}
}

type Result struct {
	Frames       int
	FramesFolder string
	OutputPath   string
	TimedOut     bool
	Elapsed      time.Duration
}

// RenderFrames plays tl through the scheduler and writes every frame as a PNG
// into a fresh directory under opts.FramesFolder.
func RenderFrames(ctx context.Context, tl midiprocessor.Timeline, opts Options) (Result, error) {
	var result Result

	renderer, err := NewRenderer(opts.Render)
	if err != nil {
		return result, err
	}

	result.FramesFolder = runFramesFolder(opts.FramesFolder)
	fw, err := NewFrameWriter(result.FramesFolder, opts.Render.Resolution, opts.Scheduler.FPS, tl.TotalFrames)
	if err != nil {
		return result, err
	}

	var gov Governor
	if opts.Paced {
		rg := NewRateGovernor(opts.Scheduler.FPS)
		defer rg.Stop()
		gov = rg
	}

	var sched = scheduler.New(tl, opts.Scheduler)
	runErr := Run(ctx, sched, renderer, fw, gov)
	closeErr := fw.Close()

	result.Frames = fw.Frames()
	result.TimedOut = sched.TimedOut()

	if runErr != nil {
		return result, runErr
	}
	return result, closeErr
}

// Generate loads a MIDI file, renders its frames and encodes them into a
// video with ffmpeg.
func Generate(ctx context.Context, opts Options) (Result, error) {
	var executionStartTime = time.Now()

	tl, err := midiprocessor.LoadFile(opts.MidiFilePath, opts.Timeline)
	if err != nil {
		return Result{}, err
	}

	result, err := RenderFrames(ctx, tl, opts)
	if result.FramesFolder != "" && !opts.KeepFrames && !opts.FramesOnly {
		defer removeFrames(result.FramesFolder)
	}
	if err != nil {
		return result, err
	}

	if opts.FramesOnly {
		result.Elapsed = time.Since(executionStartTime)
		logrus.WithFields(logrus.Fields{
			"frames": result.Frames,
			"folder": result.FramesFolder,
		}).Info("frames rendered")
		return result, nil
	}

	var audio audioTrack
	if opts.Audio {
		audioPath, err := convertMidiToWav(ctx, opts.TimidityPath, opts.MidiFilePath, result.FramesFolder)
		if err != nil {
			logrus.WithError(err).Warn("rendering video without audio")
		} else {
			audio = syncAudio(audioPath, tl, opts)
			logrus.WithFields(logrus.Fields{
				"offset": audio.Offset,
				"tempo":  audio.Tempo,
			}).Debug("audio synced to the playline")
		}
		defer removeAudioFile(audioPath)
	}

	result.OutputPath = opts.OutputPath
	if result.OutputPath == "" {
		result.OutputPath = defaultOutputPath(opts.MidiFilePath)
	}
	if err := os.MkdirAll(filepath.Dir(result.OutputPath), 0o755); err != nil {
		return result, errors.Wrap(err, "create output folder")
	}

	var duration = float64(result.Frames) / float64(opts.Scheduler.FPS)
	err = createVideoFromFrames(ctx, opts.FFmpegPath, result.FramesFolder, opts.Scheduler.FPS, audio, duration, result.OutputPath)
	if err != nil {
		return result, err
	}

	result.Elapsed = time.Since(executionStartTime)
	logrus.WithFields(logrus.Fields{
		"seconds": result.Elapsed.Seconds(),
		"frames":  result.Frames,
		"video":   result.OutputPath,
	}).Info("Video Generated")
	return result, nil
}

func removeFrames(folder string) {
	if err := os.RemoveAll(folder); err != nil {
		logrus.WithError(err).WithField("folder", folder).Warn("could not remove frames")
	}
}
