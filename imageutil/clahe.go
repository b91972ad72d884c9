package imageutil

import (
	"image"
	"math"
)

// CLAHE holds the parameters of contrast limited adaptive histogram
// equalization. The image is split into a Tiles grid, each tile gets its
// own clipped histogram lookup table, and output pixels interpolate
// bilinearly between the four nearest tile tables.
type CLAHE struct {
	ClipLimit float64
	Tiles     image.Point
}

// NewCLAHE returns a CLAHE with the given clip limit and tile grid.
func NewCLAHE(clipLimit float64, tiles image.Point) CLAHE {
	return CLAHE{ClipLimit: clipLimit, Tiles: tiles}
}

// Apply equalizes gray and returns a new image.
//
// When the image does not divide evenly into tiles, histograms are taken
// over a copy padded on the bottom and right with reflect-101 borders so
// every tile has the same area, as OpenCV does.
func (c CLAHE) Apply(gray *GrayImage) *GrayImage {
	width, height := gray.Width(), gray.Height()
	tilesX, tilesY := max(c.Tiles.X, 1), max(c.Tiles.Y, 1)

	padX, padY := 0, 0
	if width%tilesX != 0 || height%tilesY != 0 {
		padX = tilesX - width%tilesX
		padY = tilesY - height%tilesY
	}
	tileW := (width + padX) / tilesX
	tileH := (height + padY) / tilesY
	tileArea := tileW * tileH

	clipLimit := 0
	if c.ClipLimit > 0 {
		clipLimit = max(int(c.ClipLimit*float64(tileArea)/256), 1)
	}
	lutScale := 255.0 / float64(tileArea)

	luts := make([][256]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			var hist [256]int
			for y := ty * tileH; y < (ty+1)*tileH; y++ {
				sy := reflect101(y, height)
				row := gray.Pix[sy*gray.Stride:]
				for x := tx * tileW; x < (tx+1)*tileW; x++ {
					hist[row[reflect101(x, width)]]++
				}
			}
			if clipLimit > 0 {
				clipHistogram(&hist, clipLimit)
			}
			lut := &luts[ty*tilesX+tx]
			sum := 0
			for i, n := range hist {
				sum += n
				lut[i] = clampUint8(float64(sum) * lutScale)
			}
		}
	}

	dst := NewGrayImage(width, height)
	invTW, invTH := 1/float64(tileW), 1/float64(tileH)

	xs := make([]tileWeight, width)
	for x := range xs {
		xs[x] = interpolationWeight(float64(x)*invTW-0.5, tilesX)
	}

	for y := 0; y < height; y++ {
		wy := interpolationWeight(float64(y)*invTH-0.5, tilesY)
		src := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+width]
		for x, v := range src {
			wx := xs[x]
			top := float64(luts[wy.lo*tilesX+wx.lo][v])*(1-wx.frac) +
				float64(luts[wy.lo*tilesX+wx.hi][v])*wx.frac
			bottom := float64(luts[wy.hi*tilesX+wx.lo][v])*(1-wx.frac) +
				float64(luts[wy.hi*tilesX+wx.hi][v])*wx.frac
			out[x] = clampUint8(top*(1-wy.frac) + bottom*wy.frac)
		}
	}
	return dst
}

// clipHistogram caps every bin at limit and spreads the excess evenly,
// handing the remainder out one count at a time at a fixed stride.
func clipHistogram(hist *[256]int, limit int) {
	clipped := 0
	for i := range hist {
		if hist[i] > limit {
			clipped += hist[i] - limit
			hist[i] = limit
		}
	}

	batch := clipped / len(hist)
	residual := clipped - batch*len(hist)
	for i := range hist {
		hist[i] += batch
	}
	if residual != 0 {
		step := max(len(hist)/residual, 1)
		for i := 0; i < len(hist) && residual > 0; i += step {
			hist[i]++
			residual--
		}
	}
}

type tileWeight struct {
	lo, hi int
	frac   float64
}

func interpolationWeight(pos float64, tiles int) tileWeight {
	lo := int(math.Floor(pos))
	w := tileWeight{lo: lo, hi: lo + 1, frac: pos - float64(lo)}
	w.lo = max(w.lo, 0)
	w.hi = min(w.hi, tiles-1)
	return w
}

// reflect101 maps an index past the end of [0, n) back inside by mirroring
// without repeating the edge pixel.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*n - 2 - i
		}
	}
	return i
}
