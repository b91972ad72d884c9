package imageutil

import "testing"

// gaussianKernel2D is the outer product of GaussianKernel1D with itself.
func gaussianKernel2D(ksize int, sigma float64) [][]float64 {
	k1 := GaussianKernel1D(ksize, sigma)
	k := make([][]float64, ksize)
	for y := range k {
		k[y] = make([]float64, ksize)
		for x := range k[y] {
			k[y][x] = k1[y] * k1[x]
		}
	}
	return k
}

// convolveGray is a direct 2-D convolution with replicated borders.
func convolveGray(img *GrayImage, kernel [][]float64) *GrayImage {
	width, height := img.Width(), img.Height()
	dst := NewGrayImage(width, height)
	half := len(kernel) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for ky, row := range kernel {
				sy := clampInt(y+ky-half, 0, height-1)
				for kx, w := range row {
					sx := clampInt(x+kx-half, 0, width-1)
					sum += float64(img.Pix[sy*img.Stride+sx]) * w
				}
			}
			dst.Pix[y*dst.Stride+x] = clampUint8(sum)
		}
	}
	return dst
}

func TestGaussianBlurMatchesKernelConvolution(t *testing.T) {
	gray := ToGrayscale(CreateCheckerboardImage(20, 20, 3))
	separable := GaussianBlurGray(gray, 5, 0)
	full := convolveGray(gray, gaussianKernel2D(5, 0))

	if mse := CalculateMSEGray(separable, full); mse > 0.5 {
		t.Errorf("Separable and 2-D blur diverge, MSE %f", mse)
	}
}

func TestClampUint8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-3, 0},
		{0.4, 0},
		{127.5, 128},
		{254.6, 255},
		{400, 255},
	}
	for _, tt := range tests {
		if got := clampUint8(tt.in); got != tt.want {
			t.Errorf("clampUint8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
