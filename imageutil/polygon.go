package imageutil

import (
	"image"
	"math"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"
)

// coverageOn is the minimum span coverage (out of 0xffff) for a pixel to
// count as inside a filled polygon.
const coverageOn = 0x8000

// FillPolygon scan-fills the closed polygon pts into mask with value v.
// Vertices are pixel coordinates; a vertex lying on a pixel marks that
// pixel, so a square from (0,0) to (9,9) fills a 10x10 block. Anything
// outside the mask bounds is clipped. Polygons with fewer than three
// points fill nothing.
func FillPolygon(mask *GrayImage, pts []image.Point, v uint8) {
	width, height := mask.Width(), mask.Height()
	path := polygonPath(pts, width, height)
	if len(path) < 3 {
		return
	}

	r := raster.NewRasterizer(width, height)
	r.UseNonZeroWinding = true
	addPath(r, path)

	r.Rasterize(raster.PainterFunc(func(spans []raster.Span, done bool) {
		for _, s := range spans {
			if s.Alpha < coverageOn || s.Y < 0 || s.Y >= height {
				continue
			}
			x0, x1 := max(s.X0, 0), min(s.X1, width)
			row := mask.Pix[s.Y*mask.Stride:]
			for x := x0; x < x1; x++ {
				row[x] = v
			}
		}
	}))
}

// FillPolygonRGBA paints the polygon pts into img with color c, blending
// partially covered edge pixels.
func FillPolygonRGBA(img *RGBAImage, pts []image.Point, c RGB) {
	path := polygonPath(pts, img.Width(), img.Height())
	if len(path) < 3 {
		return
	}
	r := raster.NewRasterizer(img.Width(), img.Height())
	r.UseNonZeroWinding = true
	addPath(r, path)

	painter := raster.NewRGBAPainter(img.RGBA)
	painter.SetColor(c.ToColor())
	r.Rasterize(painter)
}

type vertex struct{ x, y float64 }

// polygonPath clips pts to the frame [-w, 2w] x [-h, 2h] and returns the
// outline at pixel centers in 26.6 fixed point. Vertices inside the frame
// are unchanged; far-out ones would overflow the rasterizer's int32
// coordinates. Clipping against a convex window keeps the winding number
// of every pixel inside it.
func polygonPath(pts []image.Point, w, h int) []fixed.Point26_6 {
	if len(pts) < 3 || w <= 0 || h <= 0 {
		return nil
	}
	poly := make([]vertex, len(pts))
	for i, p := range pts {
		poly[i] = vertex{float64(p.X), float64(p.Y)}
	}

	minX, maxX := -float64(w), 2*float64(w)
	minY, maxY := -float64(h), 2*float64(h)
	poly = clipEdge(poly, func(v vertex) bool { return v.x >= minX }, func(a, b vertex) vertex { return crossX(a, b, minX) })
	poly = clipEdge(poly, func(v vertex) bool { return v.x <= maxX }, func(a, b vertex) vertex { return crossX(a, b, maxX) })
	poly = clipEdge(poly, func(v vertex) bool { return v.y >= minY }, func(a, b vertex) vertex { return crossY(a, b, minY) })
	poly = clipEdge(poly, func(v vertex) bool { return v.y <= maxY }, func(a, b vertex) vertex { return crossY(a, b, maxY) })

	path := make([]fixed.Point26_6, len(poly))
	for i, v := range poly {
		path[i] = fixed.Point26_6{
			X: fixed.Int26_6(math.Round(v.x*64)) + 32,
			Y: fixed.Int26_6(math.Round(v.y*64)) + 32,
		}
	}
	return path
}

// clipEdge is one Sutherland-Hodgman step against a half-plane.
func clipEdge(poly []vertex, inside func(vertex) bool, cross func(a, b vertex) vertex) []vertex {
	if len(poly) == 0 {
		return nil
	}
	out := make([]vertex, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		switch curIn, prevIn := inside(cur), inside(prev); {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn:
			out = append(out, cross(prev, cur), cur)
		case prevIn:
			out = append(out, cross(prev, cur))
		}
		prev = cur
	}
	return out
}

func crossX(a, b vertex, x float64) vertex {
	t := (x - a.x) / (b.x - a.x)
	return vertex{x, a.y + t*(b.y-a.y)}
}

func crossY(a, b vertex, y float64) vertex {
	t := (y - a.y) / (b.y - a.y)
	return vertex{a.x + t*(b.x-a.x), y}
}

func addPath(r *raster.Rasterizer, path []fixed.Point26_6) {
	r.Start(path[0])
	for _, p := range path[1:] {
		r.Add1(p)
	}
	r.Add1(path[0])
}
