package imageutil

// AdaptiveThresholdGaussian binarizes gray against a Gaussian-weighted
// local mean. A pixel becomes 255 when it is brighter than the mean of its
// blockSize x blockSize neighborhood minus offset, and 0 otherwise; dark
// strokes on a lighter background therefore come out as 0.
func AdaptiveThresholdGaussian(gray *GrayImage, blockSize int, offset float64) *GrayImage {
	mean := GaussianBlurGray(gray, blockSize, 0)
	dst := NewGrayImage(gray.Width(), gray.Height())

	for y := 0; y < gray.Height(); y++ {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+gray.Width()]
		m := mean.Pix[y*mean.Stride:]
		out := dst.Pix[y*dst.Stride:]
		for x, v := range src {
			if float64(v) > float64(m[x])-offset {
				out[x] = 255
			}
		}
	}
	return dst
}
