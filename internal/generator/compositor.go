package generator

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Compose draws the selected layers onto a fresh canvas and overlays the
// generation timestamp.
//
// The canvas is filled white, then each layer is decoded and stretched to
// the full canvas bounds in attribute order, so later layers occlude
// earlier ones. A layer that fails to decode is skipped with a warning;
// its attribute was already selected and stays in the metadata. The
// timestamp is the current UTC time in RFC 3339 form, drawn centered near
// the top edge with an outline so it stays legible on any background.
//
// Compose returns the finished canvas and the timestamp string it drew.
// Nothing is persisted here.
//
// Parameters:
//   - ctx: Context for cancellation (currently unused)
//   - attrs: Selected layer attributes in draw order
func (g *Generator) Compose(ctx context.Context, attrs []LayerAttribute) (*image.NRGBA, string, error) {
	canvas := imaging.New(g.collection.Width, g.collection.Height, color.White)

	for _, attr := range attrs {
		layerImg, err := imaging.Open(attr.Path)
		if err != nil {
			g.progress(ProgressEvent{Message: fmt.Sprintf("Cannot decode %s: %v", attr.Path, err), Level: LevelWarning})
			continue
		}

		// Catmull-Rom for high-quality scaling
		draw.CatmullRom.Scale(canvas, canvas.Bounds(), layerImg, layerImg.Bounds(), draw.Over, nil)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	if err := g.drawTimestamp(canvas, timestamp); err != nil {
		return nil, "", fmt.Errorf("rendering timestamp: %w", err)
	}

	return canvas, timestamp, nil
}

// drawTimestamp renders the timestamp centered near the top edge, sized
// relative to the canvas height.
func (g *Generator) drawTimestamp(canvas *image.NRGBA, timestamp string) error {
	size := float64(g.collection.Height) / 24
	face, err := newFace(size)
	if err != nil {
		return err
	}
	defer face.Close()

	textWidth := font.MeasureString(face, timestamp)
	x := (fixed.I(g.collection.Width) - textWidth) / 2
	y := fixed.I(int(size * 2))

	drawOutlinedString(canvas, face, timestamp, x, y)
	return nil
}

// newFace builds a Go Regular font face at the given point size.
func newFace(size float64) (font.Face, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// drawOutlinedString draws text in white over a black outline. The outline
// is the same string drawn at eight 2px offsets around the fill position.
func drawOutlinedString(dst *image.NRGBA, face font.Face, text string, x, y fixed.Int26_6) {
	for _, dy := range []int{-2, 0, 2} {
		for _, dx := range []int{-2, 0, 2} {
			if dx == 0 && dy == 0 {
				continue
			}
			outline := &font.Drawer{
				Dst:  dst,
				Src:  image.Black,
				Face: face,
				Dot:  fixed.Point26_6{X: x + fixed.I(dx), Y: y + fixed.I(dy)},
			}
			outline.DrawString(text)
		}
	}

	fill := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	fill.DrawString(text)
}
