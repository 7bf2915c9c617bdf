package videogenerator

import (
	"github.com/pkg/errors"
)

// RenderSettings positions the lanes, the playline and the fingering chart.
type RenderSettings struct {
	Resolution ScreenResolution
	PlaylineX  float64
	// ChartX and ChartY offset the key layout inside the window.
	ChartX float64
	ChartY float64
	// NoteNameX and NoteNameY place the top centre of the note name.
	NoteNameX     float64
	NoteNameY     float64
	MinLaneHeight float64
	// HighlightTolerance is how close to the playline a note's leading edge
	// must be for it to get an outline.
	HighlightTolerance float64
	LabelSize          float64
	NoteNameSize       float64
}

func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		Resolution:         resolution900p,
		PlaylineX:          400,
		ChartX:             100,
		ChartY:             40,
		NoteNameX:          150,
		NoteNameY:          840,
		MinLaneHeight:      20,
		HighlightTolerance: 2,
		LabelSize:          12,
		NoteNameSize:       26,
	}
}

func (s RenderSettings) Validate() error {
	if s.Resolution.Width() <= 0 || s.Resolution.Height() <= 0 {
		return errors.Errorf("invalid resolution %vx%v", s.Resolution.Width(), s.Resolution.Height())
	}
	if s.PlaylineX <= 0 || s.PlaylineX >= s.Resolution.Width() {
		return errors.Errorf("playline x %v outside the window", s.PlaylineX)
	}
	if s.LabelSize <= 0 || s.NoteNameSize <= 0 {
		return errors.New("text sizes must be positive")
	}
	return nil
}
