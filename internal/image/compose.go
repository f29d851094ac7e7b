package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Layout positions the overlay and caption on the base image.
type Layout struct {
	OverlayOffset image.Point
	// TextOrigin is the top-left of the caption line; the baseline sits one ascent below it.
	TextOrigin image.Point
	FontSize   float64
	TextColor  color.NRGBA
}

func DefaultLayout() Layout {
	return Layout{
		OverlayOffset: image.Pt(50, 50),
		TextOrigin:    image.Pt(50, 100),
		FontSize:      20,
		TextColor:     color.NRGBA{A: 0xff},
	}
}

// Compositor stamps an overlay and a caption onto a base image.
type Compositor struct {
	layout Layout
	font   *opentype.Font
}

func NewCompositor(layout Layout, f *opentype.Font) *Compositor {
	if layout.FontSize <= 0 {
		layout.FontSize = DefaultLayout().FontSize
	}
	return &Compositor{layout: layout, font: f}
}

// Compose returns a copy of base with overlay pasted at the overlay offset and
// caption drawn at the text origin. base and overlay are not modified.
// Overlay pixels outside base are clipped; transparent pixels blend.
func (c *Compositor) Compose(base, overlay image.Image, caption string) (*image.NRGBA, error) {
	face, err := newFace(c.font, c.layout.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	out := imaging.Overlay(base, overlay, base.Bounds().Min.Add(c.layout.OverlayOffset), 1.0)

	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(c.layout.TextColor),
		Face: face,
		Dot:  c.baseline(face),
	}
	d.DrawString(caption)

	return out, nil
}

// TextRect is the pixel rectangle caption would cover, in output coordinates.
func (c *Compositor) TextRect(caption string) (image.Rectangle, error) {
	face, err := newFace(c.font, c.layout.FontSize)
	if err != nil {
		return image.Rectangle{}, err
	}
	defer face.Close()

	bounds, _ := font.BoundString(face, caption)
	dot := c.baseline(face)
	return image.Rect(
		(dot.X+bounds.Min.X).Floor(),
		(dot.Y+bounds.Min.Y).Floor(),
		(dot.X+bounds.Max.X).Ceil(),
		(dot.Y+bounds.Max.Y).Ceil(),
	), nil
}

func (c *Compositor) baseline(face font.Face) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.I(c.layout.TextOrigin.X),
		Y: fixed.I(c.layout.TextOrigin.Y) + face.Metrics().Ascent,
	}
}
