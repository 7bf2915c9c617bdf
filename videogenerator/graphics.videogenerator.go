package videogenerator

import (
	"math"
	"strings"

	"saxvideo/fingering"
	"saxvideo/scheduler"
)

// Renderer turns scheduler state into draw calls. It holds no per-frame
// state, so the same value can draw any number of frames.
type Renderer struct {
	s RenderSettings
}

func NewRenderer(s RenderSettings) (*Renderer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{s: s}, nil
}

func (r *Renderer) Settings() RenderSettings {
	return r.s
}

// DrawFrame draws one complete frame. The fingering chart is only drawn once
// a note has reached the playline.
func (r *Renderer) DrawFrame(c Canvas, active []scheduler.ActiveNote, current scheduler.ActiveNote, hasCurrent bool) {
	c.Clear(backgroundColor)
	r.drawLanes(c)
	r.drawPlayline(c)
	for _, n := range active {
		r.drawNote(c, n)
	}
	if hasCurrent {
		r.drawFingeringChart(c, current.Pitch)
	}
}

func laneLabel(k fingering.KeyID) string {
	return strings.ReplaceAll(k.String(), "_", " ")
}

func (r *Renderer) drawLanes(c Canvas) {
	var w, h = r.s.Resolution.Width(), r.s.Resolution.Height()
	var left = r.s.PlaylineX

	c.FillRect(left, 0, w-left, h, laneAreaColor)
	c.Line(left-10, 0, left-10, h, 1, separatorColor)

	for _, k := range fingering.Keys() {
		var key = fingering.Layout(k)
		var laneH = math.Max(r.s.MinLaneHeight, key.Radius*2)
		c.FillRect(left, key.LaneY-laneH/2, w-left, laneH, laneColor)
		c.Text(laneLabel(k), r.s.LabelSize, left-5, key.LaneY, 1, 0.5, laneLabelColor)
	}
}

func (r *Renderer) drawPlayline(c Canvas) {
	c.Line(r.s.PlaylineX, 0, r.s.PlaylineX, r.s.Resolution.Height(), 2, playlineColor)
}

func (r *Renderer) highlighted(n scheduler.ActiveNote) bool {
	return math.Abs(n.X-r.s.PlaylineX) <= r.s.HighlightTolerance
}

// drawNote draws one block per pressed key, each in that key's lane, clipped
// to the window.
func (r *Renderer) drawNote(c Canvas, n scheduler.ActiveNote) {
	var endX = n.TrailingX()
	if endX <= 0 {
		return
	}
	var startX = math.Max(n.X, 0)
	var width = math.Min(endX, r.s.Resolution.Width()) - startX
	if width <= 0 {
		return
	}

	for _, k := range fingering.Fingering(n.Pitch) {
		var key = fingering.Layout(k)
		var laneH = math.Max(r.s.MinLaneHeight, key.Radius*2.5)
		var noteH = laneH * 0.8
		var y = key.LaneY - noteH/2
		var radius = math.Min(noteH/2, 10)

		c.FillRoundedRect(startX, y, width, noteH, radius, getKeyColor(k))
		if r.highlighted(n) {
			drawOutline(c, startX, y, width, noteH)
		}
	}
}

func drawOutline(c Canvas, x, y, w, h float64) {
	c.Line(x, y, x+w, y, 2, highlightColor)
	c.Line(x+w, y, x+w, y+h, 2, highlightColor)
	c.Line(x+w, y+h, x, y+h, 2, highlightColor)
	c.Line(x, y+h, x, y, 2, highlightColor)
}

func (r *Renderer) drawFingeringChart(c Canvas, pitch int) {
	var pressed = fingering.Pressed(pitch)

	for _, k := range fingering.Keys() {
		var key = fingering.Layout(k)
		var x = key.Position.X + r.s.ChartX
		var y = key.Position.Y + r.s.ChartY

		if pressed.Has(k) {
			c.FillCircle(x, y, key.Radius+1, pressedKeyBorder)
			c.FillCircle(x, y, key.Radius, pressedKeyColor)
		} else {
			c.FillCircle(x, y, key.Radius+1, idleKeyBorder)
			c.FillCircle(x, y, key.Radius, idleKeyColor)
		}
	}

	c.Text(fingering.NoteName(pitch), r.s.NoteNameSize, r.s.NoteNameX, r.s.NoteNameY, 0.5, 0, noteNameColor)
}

// ChartResolution is the size of a stand-alone fingering chart image.
var ChartResolution = ScreenResolution{300, 900}

// DrawChart draws only the fingering chart for pitch.
func (r *Renderer) DrawChart(c Canvas, pitch int) {
	c.Clear(backgroundColor)
	r.drawFingeringChart(c, pitch)
}
