package generator

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/math/fixed"

	"github.com/SaeeDawod/gen-nft-app/internal/model"
)

// Share card layout.
const (
	cardSize     = 1080
	cardMargin   = 60
	cardQRSize   = 220
	cardFontSize = 44
)

// ComposeShareCard renders a square promotional card for a token: the
// token art centered in the upper area, a QR code of the metadata URL in
// the lower right corner, and the token name to its left.
func ComposeShareCard(art image.Image, metadataURL, name string) (*image.NRGBA, error) {
	canvas := imaging.New(cardSize, cardSize, color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff})

	fitted := imaging.Fit(art, cardSize-2*cardMargin, cardSize-3*cardMargin-cardQRSize, imaging.Lanczos)
	artX := (cardSize - fitted.Bounds().Dx()) / 2
	canvas = imaging.Paste(canvas, fitted, image.Pt(artX, cardMargin))

	qrImg, err := qrImage(metadataURL, cardQRSize)
	if err != nil {
		return nil, fmt.Errorf("rendering QR code: %w", err)
	}
	canvas = imaging.Paste(canvas, qrImg, image.Pt(cardSize-cardMargin-cardQRSize, cardSize-cardMargin-cardQRSize))

	face, err := newFace(cardFontSize)
	if err != nil {
		return nil, fmt.Errorf("loading card font: %w", err)
	}
	defer face.Close()
	drawOutlinedString(canvas, face, name,
		fixed.I(cardMargin), fixed.I(cardSize-cardMargin-cardQRSize/2))

	return canvas, nil
}

// ShareCard builds the promotional card for an already generated token.
//
// The token image must exist on disk. The QR code encodes the token's
// public metadata URL when a metadata base URL is set, or the relative
// metadata filename in local-only mode.
func (g *Generator) ShareCard(ctx context.Context, tokenID uint64) (*image.NRGBA, error) {
	token := model.NewToken(g.collection, tokenID)

	art, err := imaging.Open(token.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("opening token image %s: %w", token.ImagePath, err)
	}

	return ComposeShareCard(art, g.metadataURL(token), g.collection.TokenName(tokenID))
}

// metadataURL returns what a share card's QR code should point at.
func (g *Generator) metadataURL(token *model.Token) string {
	if g.metadataBaseURL == "" {
		return token.MetadataFileName()
	}
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(g.metadataBaseURL, "/"), token.MetadataFileName())
}

// qrImage renders a QR code for the given text as an image.
func qrImage(text string, size int) (image.Image, error) {
	data, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(data))
}
