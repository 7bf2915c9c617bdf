package videogenerator

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"saxvideo/midiprocessor"
)

// audioTrack is a soundtrack to mux under the frames. Offset delays it by
// that many seconds; Tempo speeds it up (>1) or slows it down (<1).
type audioTrack struct {
	Path   string
	Offset float64
	Tempo  float64
}

// syncAudio lines path up with the picture. Beat zero sits at the spawn base
// and needs (SpawnBaseX-PlaylineX)/ScrollSpeed frames to be struck, and the
// picture scrolls ScrollSpeed*FPS/PixelsPerBeat beats per second whatever the
// file tempo is, so the soundtrack is stretched to match.
func syncAudio(path string, tl midiprocessor.Timeline, opts Options) audioTrack {
	var pixelsPerSecond = opts.Scheduler.ScrollSpeed * float64(opts.Scheduler.FPS)
	var sourceTempo = tl.SourceTempo
	if sourceTempo == 0 {
		sourceTempo = midiprocessor.DefaultTempo
	}
	return audioTrack{
		Path:   path,
		Offset: (opts.Timeline.SpawnBaseX - opts.Scheduler.PlaylineX) / pixelsPerSecond,
		Tempo:  pixelsPerSecond / opts.Timeline.PixelsPerBeat * sourceTempo.SecondsPerBeat(),
	}
}

// atempoFilter chains atempo stages, each kept within the 0.5..2 range every
// ffmpeg build accepts.
func atempoFilter(factor float64) string {
	var stages []string
	for factor > 2 {
		stages = append(stages, "atempo=2.0")
		factor /= 2
	}
	for factor < 0.5 {
		stages = append(stages, "atempo=0.5")
		factor /= 0.5
	}
	stages = append(stages, fmt.Sprintf("atempo=%f", factor))
	return strings.Join(stages, ",")
}

// ffmpegArgs builds the command line that encodes the frame sequence, muxing
// in the audio track when it has a path.
func ffmpegArgs(framesFolder string, fps int, audio audioTrack, duration float64, outputPath string) []string {
	var args = []string{
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", filepath.Join(framesFolder, framePattern),
	}
	if audio.Path != "" {
		args = append(args,
			"-itsoffset", fmt.Sprintf("%fs", audio.Offset),
			"-i", audio.Path,
			"-map", "0:v", "-map", "1:a",
		)
		if audio.Tempo > 0 && math.Abs(audio.Tempo-1) > 1e-6 {
			args = append(args, "-filter:a", atempoFilter(audio.Tempo))
		}
	}
	args = append(args,
		"-preset", "veryfast",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-tune", "animation",
		"-y",
	)
	if duration > 0 {
		args = append(args, "-t", fmt.Sprintf("%f", duration))
	}
	return append(args, outputPath)
}

func createVideoFromFrames(ctx context.Context, ffmpeg string, framesFolder string, fps int, audio audioTrack, duration float64, outputPath string) error {
	var cmdArgs = ffmpegArgs(framesFolder, fps, audio, duration, outputPath)

	out, err := exec.CommandContext(ctx, ffmpeg, cmdArgs...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "error executing FFmpeg command: %s %s; %s",
			ffmpeg, strings.Join(cmdArgs, " "), lastLine(string(out)))
	}
	return nil
}

func lastLine(s string) string {
	var lines = strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
