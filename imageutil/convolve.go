package imageutil

import "math"

// GaussianSigma returns the sigma OpenCV derives for a Gaussian kernel of
// size ksize when none is given.
func GaussianSigma(ksize int) float64 {
	return 0.3*(float64(ksize-1)*0.5-1) + 0.8
}

// GaussianKernel1D returns a normalized 1-D Gaussian kernel of odd length
// ksize. A non-positive sigma is derived from ksize.
func GaussianKernel1D(ksize int, sigma float64) []float64 {
	if sigma <= 0 {
		sigma = GaussianSigma(ksize)
	}
	k := make([]float64, ksize)
	half := float64(ksize-1) / 2
	var sum float64
	for i := range k {
		d := float64(i) - half
		k[i] = math.Exp(-(d * d) / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// GaussianBlurGray blurs a grayscale image with a separable Gaussian of
// size ksize, replicating border pixels. The horizontal pass is kept in
// floating point; only the final value is rounded.
func GaussianBlurGray(img *GrayImage, ksize int, sigma float64) *GrayImage {
	width, height := img.Width(), img.Height()
	k := GaussianKernel1D(ksize, sigma)
	half := ksize / 2

	rows := make([]float64, width*height)
	for y := 0; y < height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+width]
		for x := 0; x < width; x++ {
			var sum float64
			for i, w := range k {
				sum += float64(src[clampInt(x+i-half, 0, width-1)]) * w
			}
			rows[y*width+x] = sum
		}
	}

	dst := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for i, w := range k {
				sum += rows[clampInt(y+i-half, 0, height-1)*width+x] * w
			}
			dst.Pix[y*dst.Stride+x] = clampUint8(sum)
		}
	}
	return dst
}

// clampInt clamps an integer to the given range.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampUint8 clamps a float64 to [0, 255] and converts to uint8.
func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
