// Package imageutil provides the pure Go image primitives the sketch
// pipeline is built on: owned RGBA and grayscale buffers, loading, resizing,
// grayscale conversion, local contrast equalization, adaptive thresholding
// and polygon scan-fill.
package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// White is the color of an untouched canvas.
var White = RGB{R: 255, G: 255, B: 255}

// ToColor converts RGB to color.RGBA.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBAImage is an owned, zero-origin RGBA buffer.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage copies any image.Image into a zero-origin RGBAImage.
// Transparent sources are flattened onto black, the same way OpenCV drops
// the alpha channel when reading a color image.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())
	draw.Draw(rgba.RGBA, rgba.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(rgba.RGBA, rgba.Bounds(), img, bounds.Min, draw.Over)
	return rgba
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	i := img.PixOffset(x, y)
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// SetRGB sets the RGB value at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	i := img.PixOffset(x, y)
	img.Pix[i] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = 255
}

// Fill paints every pixel with c.
func (img *RGBAImage) Fill(c RGB) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = 255
	}
}

// Clone creates a deep copy of the image.
func (img *RGBAImage) Clone() *RGBAImage {
	clone := NewRGBAImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}

// CopyFrom overwrites img with the pixels of src. Both images must have
// the same dimensions.
func (img *RGBAImage) CopyFrom(src *RGBAImage) {
	copy(img.Pix, src.Pix)
}

// Crop returns an owned copy of the rectangle r, clipped to the image.
func (img *RGBAImage) Crop(r image.Rectangle) *RGBAImage {
	r = r.Intersect(img.Bounds())
	dst := NewRGBAImage(r.Dx(), r.Dy())
	draw.Draw(dst.RGBA, dst.Bounds(), img.RGBA, r.Min, draw.Src)
	return dst
}

// Equal reports whether both images have the same size and pixels.
func (img *RGBAImage) Equal(other *RGBAImage) bool {
	if img.Width() != other.Width() || img.Height() != other.Height() {
		return false
	}
	for y := 0; y < img.Height(); y++ {
		a := img.Pix[y*img.Stride : y*img.Stride+img.Width()*4]
		b := other.Pix[y*other.Stride : y*other.Stride+other.Width()*4]
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// BGR returns the pixels packed as 3-byte BGR triples, row-major, which is
// the layout OpenCV expects for CV_8UC3. buf is reused when large enough.
func (img *RGBAImage) BGR(buf []byte) []byte {
	width, height := img.Width(), img.Height()
	n := width * height * 3
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	j := 0
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for i := 0; i < len(row); i += 4 {
			buf[j] = row[i+2]
			buf[j+1] = row[i+1]
			buf[j+2] = row[i]
			j += 3
		}
	}
	return buf
}

// GrayImage is an owned, zero-origin single-channel buffer. Binary images
// (masks, ink maps) use 0 and 255.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// NewFilledGrayImage creates a GrayImage with every pixel set to v.
func NewFilledGrayImage(width, height int, v uint8) *GrayImage {
	img := NewGrayImage(width, height)
	img.Fill(v)
	return img
}

// GrayImageFromImage converts any image.Image to GrayImage using the
// standard library's luminance model.
func GrayImageFromImage(img image.Image) *GrayImage {
	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())
	draw.Draw(gray.Gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the grayscale value at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.Pix[y*img.Stride+x]
}

// SetGrayValue sets the grayscale value at (x, y).
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.Pix[y*img.Stride+x] = v
}

// Fill sets every pixel to v.
func (img *GrayImage) Fill(v uint8) {
	for i := range img.Pix {
		img.Pix[i] = v
	}
}

// Clone creates a deep copy of the image.
func (img *GrayImage) Clone() *GrayImage {
	clone := NewGrayImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}

// Crop returns an owned copy of the rectangle r, clipped to the image.
func (img *GrayImage) Crop(r image.Rectangle) *GrayImage {
	r = r.Intersect(img.Bounds())
	dst := NewGrayImage(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		src := img.Pix[(r.Min.Y+y)*img.Stride+r.Min.X : (r.Min.Y+y)*img.Stride+r.Max.X]
		copy(dst.Pix[y*dst.Stride:], src)
	}
	return dst
}

// Count returns the number of pixels for which keep returns true.
func (img *GrayImage) Count(keep func(v uint8) bool) int {
	n := 0
	for _, v := range img.Pix {
		if keep(v) {
			n++
		}
	}
	return n
}

// BoundsOf returns the smallest rectangle containing every pixel equal to v.
// ok is false when no pixel matches.
func (img *GrayImage) BoundsOf(v uint8) (r image.Rectangle, ok bool) {
	minX, minY := img.Width(), img.Height()
	maxX, maxY := -1, -1
	for y := 0; y < img.Height(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+img.Width()]
		for x, p := range row {
			if p != v {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
