package services

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Placeholder card art shown whenever a remote card image cannot be
// fetched or decoded. Fixed 340x220 so the UI layout never shifts.
const (
	PlaceholderWidth  = 340
	PlaceholderHeight = 220
)

var (
	placeholderBackground = color.RGBA{R: 30, G: 58, B: 138, A: 255} // dark blue
	placeholderChip       = color.RGBA{R: 255, G: 215, B: 0, A: 255} // gold
	placeholderText       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	placeholderLegend     = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// renderPlaceholder draws the generic card graphic: blue background,
// gold chip, brand line, masked number row and the usual card legends.
func renderPlaceholder() (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, PlaceholderWidth, PlaceholderHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBackground), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(20, 20, 70, 60), image.NewUniform(placeholderChip), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	if face == nil {
		return nil, fmt.Errorf("placeholder font unavailable")
	}

	drawCentered(img, face, placeholderText, "FLEECE CARD", PlaceholderWidth/2, PlaceholderHeight/2)
	drawAt(img, face, placeholderText, "**** **** **** ****", 40, 160)
	drawAt(img, face, placeholderLegend, "CARDHOLDER NAME", 40, 185)
	drawAt(img, face, placeholderLegend, "VALID THRU", 250, 185)
	drawAt(img, face, placeholderText, "MM/YY", 250, 200)

	return img, nil
}

func drawAt(dst *image.RGBA, face font.Face, col color.Color, text string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func drawCentered(dst *image.RGBA, face font.Face, col color.Color, text string, cx, cy int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	w := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(cx) - w/2,
		Y: fixed.I(cy) + face.Metrics().Ascent/2,
	}
	d.DrawString(text)
}

// copyImage returns an independent copy so one caller mutating its
// placeholder cannot bleed into another's.
func copyImage(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
