package videogenerator

import (
	"path/filepath"

	"github.com/google/uuid"
)

func getFileNameWithoutExtension(filePath string) string {
	fileName := filepath.Base(filePath)
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}

// runFramesFolder returns a fresh directory under base for one run's frames.
func runFramesFolder(base string) string {
	return filepath.Join(base, uuid.NewString())
}

// defaultOutputPath places the video next to other outputs, named after the
// MIDI file.
func defaultOutputPath(midiFilePath string) string {
	return filepath.Join(outputFolderPath, getFileNameWithoutExtension(midiFilePath)+".mp4")
}
