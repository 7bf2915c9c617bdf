package videogenerator

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const maxEncodeWorkers = 8

var regularFont *truetype.Font

func init() {
	var err error
	regularFont, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// ImageCanvas is a Canvas backed by an in-memory gg context.
type ImageCanvas struct {
	dc    *gg.Context
	faces map[float64]font.Face
}

func NewImageCanvas(res ScreenResolution) *ImageCanvas {
	return &ImageCanvas{
		dc:    gg.NewContext(int(res.Width()), int(res.Height())),
		faces: map[float64]font.Face{},
	}
}

func (ic *ImageCanvas) Clear(c color.Color) {
	ic.dc.SetColor(c)
	ic.dc.Clear()
}

func (ic *ImageCanvas) FillRect(x, y, w, h float64, c color.Color) {
	ic.dc.DrawRectangle(x, y, w, h)
	ic.dc.SetColor(c)
	ic.dc.Fill()
}

func (ic *ImageCanvas) FillRoundedRect(x, y, w, h, r float64, c color.Color) {
	ic.dc.DrawRoundedRectangle(x, y, w, h, r)
	ic.dc.SetColor(c)
	ic.dc.Fill()
}

func (ic *ImageCanvas) FillCircle(x, y, r float64, c color.Color) {
	ic.dc.DrawCircle(x, y, r)
	ic.dc.SetColor(c)
	ic.dc.Fill()
}

func (ic *ImageCanvas) Line(x1, y1, x2, y2, width float64, c color.Color) {
	ic.dc.SetColor(c)
	ic.dc.SetLineWidth(width)
	ic.dc.DrawLine(x1, y1, x2, y2)
	ic.dc.Stroke()
}

func (ic *ImageCanvas) Text(s string, size, x, y, ax, ay float64, c color.Color) {
	face, ok := ic.faces[size]
	if !ok {
		face = truetype.NewFace(regularFont, &truetype.Options{Size: size})
		ic.faces[size] = face
	}
	ic.dc.SetFontFace(face)
	ic.dc.SetColor(c)
	ic.dc.DrawStringAnchored(s, x, y, ax, ay)
}

func (ic *ImageCanvas) Present() error {
	return nil
}

func (ic *ImageCanvas) Image() image.Image {
	return ic.dc.Image()
}

func (ic *ImageCanvas) EncodePNG(w io.Writer) error {
	return ic.dc.EncodePNG(w)
}

func (ic *ImageCanvas) closeFaces() {
	for _, face := range ic.faces {
		face.Close()
	}
	ic.faces = map[float64]font.Face{}
}

// FrameWriter is an ImageCanvas whose Present snapshots the image and hands
// it to a bounded pool of PNG encoders, so frames on disk are numbered in the
// order they were drawn.
type FrameWriter struct {
	*ImageCanvas
	dir   string
	fps   int
	total int

	sem      chan struct{}
	wg       sync.WaitGroup
	frames   int
	finished atomic.Uint64
	start    time.Time

	errMu sync.Mutex
	err   error
}

// NewFrameWriter creates dir if needed. expected is only used for progress
// reporting and may be zero.
func NewFrameWriter(dir string, res ScreenResolution, fps int, expected int) (*FrameWriter, error) {
	if fps <= 0 {
		return nil, errors.Errorf("invalid fps %d", fps)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create frames folder %s", dir)
	}
	return &FrameWriter{
		ImageCanvas: NewImageCanvas(res),
		dir:         dir,
		fps:         fps,
		total:       expected,
		sem:         make(chan struct{}, maxEncodeWorkers),
		start:       time.Now(),
	}, nil
}

func snapshot(src image.Image) *image.RGBA {
	var b = src.Bounds()
	var dst = image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// FramePath returns where frame i (1-based) is written.
func (f *FrameWriter) FramePath(i int) string {
	return filepath.Join(f.dir, fmt.Sprintf(framePattern, i))
}

func (f *FrameWriter) Present() error {
	if err := f.Err(); err != nil {
		return err
	}

	f.frames++
	var img = snapshot(f.dc.Image())
	var path = f.FramePath(f.frames)

	f.wg.Add(1)
	f.sem <- struct{}{}
	go func() {
		defer f.wg.Done()
		defer func() { <-f.sem }()

		if err := gg.SavePNG(path, img); err != nil {
			f.setErr(errors.Wrapf(err, "save frame %s", path))
			return
		}

		n := f.finished.Add(1)
		if int(n)%(f.fps*30) == 0 {
			logrus.Infof("Finished frames: %d/%d\tavg time per frame: %.4f", n, f.total, time.Since(f.start).Seconds()/float64(n))
		}
	}()

	return nil
}

func (f *FrameWriter) setErr(err error) {
	f.errMu.Lock()
	defer f.errMu.Unlock()
	if f.err == nil {
		f.err = err
	}
}

// Err returns the first encoding failure, if any.
func (f *FrameWriter) Err() error {
	f.errMu.Lock()
	defer f.errMu.Unlock()
	return f.err
}

// Frames is the number of frames presented so far.
func (f *FrameWriter) Frames() int {
	return f.frames
}

func (f *FrameWriter) Dir() string {
	return f.dir
}

// Close waits for pending encodes and reports the first failure.
func (f *FrameWriter) Close() error {
	f.wg.Wait()
	f.closeFaces()
	return f.Err()
}
