package videogenerator

import (
	"context"
	"image/color"
)

// Canvas is the drawing surface a frame is rendered onto. Coordinates are in
// window pixels with the origin at the top left.
type Canvas interface {
	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	FillRoundedRect(x, y, w, h, r float64, c color.Color)
	FillCircle(x, y, r float64, c color.Color)
	Line(x1, y1, x2, y2, width float64, c color.Color)
	// Text draws s so that the point (x, y) sits at the relative anchor
	// (ax, ay) of the text's bounding box; 0.5, 0.5 centres it.
	Text(s string, size, x, y, ax, ay float64, c color.Color)
	// Present finishes the current frame.
	Present() error
}

// CloseRequester is implemented by canvases that can be asked to stop, such
// as a window the user closed.
type CloseRequester interface {
	CloseRequested() bool
}

// Governor caps how often the render loop iterates.
type Governor interface {
	Wait(ctx context.Context) error
}

type ScreenResolution [2]float64

func (r ScreenResolution) Width() float64 {
	return r[0]
}

func (r ScreenResolution) Height() float64 {
	return r[1]
}
