package videogenerator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// convertMidiToWav renders midiFilePath to a wav file in dir with timidity.
func convertMidiToWav(ctx context.Context, timidity string, midiFilePath string, dir string) (string, error) {
	var outputPath = filepath.Join(dir, getFileNameWithoutExtension(midiFilePath)+".wav")
	timidityCmdArgs := []string{
		midiFilePath, "-Ow",
		"--preserve-silence",
		"-o", outputPath,
	}

	if err := exec.CommandContext(ctx, timidity, timidityCmdArgs...).Run(); err != nil {
		return "", errors.Wrap(err, "error executing timidity command")
	}
	return outputPath, nil
}

func removeAudioFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", filePath).Warn("could not remove audio file")
	}
}
