package terminal

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// linear maps an 8-bit sRGB channel to linear light. Pixels are averaged in
// linear space so bright stars don't vanish into dark cells.
var linear = func() (lut [256]float64) {
	for i := range lut {
		lut[i], _, _ = colorful.Color{R: float64(i) / 255}.LinearRgb()
	}
	return lut
}()

// averageBlock returns the mean colour of a w x h block of img. Canvas
// pixels are opaque, so premultiplied values are used as is.
func averageBlock(img *image.RGBA, x0, y0, w, h int) tcell.Color {
	var r, g, b float64
	for y := y0; y < y0+h; y++ {
		i := img.PixOffset(x0, y)
		for x := 0; x < w; x++ {
			r += linear[img.Pix[i]]
			g += linear[img.Pix[i+1]]
			b += linear[img.Pix[i+2]]
			i += 4
		}
	}
	n := float64(w * h)
	c := colorful.LinearRgb(r/n, g/n, b/n).Clamped()
	cr, cg, cb := c.RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}
