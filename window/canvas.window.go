package window

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

var fontSource *text.GoTextFaceSource

func init() {
	var err error
	fontSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}
}

// canvas draws onto the ebiten screen image for the duration of one Draw.
type canvas struct {
	dst   *ebiten.Image
	faces map[float64]*text.GoTextFace
}

func newCanvas() *canvas {
	return &canvas{faces: map[float64]*text.GoTextFace{}}
}

func (c *canvas) Clear(clr color.Color) {
	c.dst.Fill(clr)
}

func (c *canvas) FillRect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// FillRoundedRect composes the shape from two rectangles and four corner
// circles.
func (c *canvas) FillRoundedRect(x, y, w, h, r float64, clr color.Color) {
	if r*2 > w {
		r = w / 2
	}
	if r*2 > h {
		r = h / 2
	}
	if r <= 0 {
		c.FillRect(x, y, w, h, clr)
		return
	}
	c.FillRect(x+r, y, w-2*r, h, clr)
	c.FillRect(x, y+r, w, h-2*r, clr)
	c.FillCircle(x+r, y+r, r, clr)
	c.FillCircle(x+w-r, y+r, r, clr)
	c.FillCircle(x+r, y+h-r, r, clr)
	c.FillCircle(x+w-r, y+h-r, r, clr)
}

func (c *canvas) FillCircle(x, y, r float64, clr color.Color) {
	vector.DrawFilledCircle(c.dst, float32(x), float32(y), float32(r), clr, true)
}

func (c *canvas) Line(x1, y1, x2, y2, width float64, clr color.Color) {
	vector.StrokeLine(c.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), clr, true)
}

func align(a float64) text.Align {
	switch {
	case a >= 1:
		return text.AlignEnd
	case a > 0:
		return text.AlignCenter
	}
	return text.AlignStart
}

func (c *canvas) Text(s string, size, x, y, ax, ay float64, clr color.Color) {
	face, ok := c.faces[size]
	if !ok {
		face = &text.GoTextFace{Source: fontSource, Size: size}
		c.faces[size] = face
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align(ax)
	op.SecondaryAlign = align(ay)
	text.Draw(c.dst, s, face, op)
}

// Present is a no-op; ebiten flips the screen after Draw returns.
func (c *canvas) Present() error {
	return nil
}
