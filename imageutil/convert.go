package imageutil

// ToGrayscale converts an RGBA image to grayscale with the BT.601 luma
// weights Y = 0.299*R + 0.587*G + 0.114*B, rounded, matching OpenCV's
// COLOR_BGR2GRAY.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+width*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := range dst {
			r, g, b := int(src[x*4]), int(src[x*4+1]), int(src[x*4+2])
			dst[x] = uint8((299*r + 587*g + 114*b + 500) / 1000)
		}
	}

	return gray
}

// GrayscaleToRGBA expands a grayscale image to RGBA with equal channels.
func GrayscaleToRGBA(gray *GrayImage) *RGBAImage {
	width, height := gray.Width(), gray.Height()
	rgba := NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := gray.Pix[y*gray.Stride+x]
			rgba.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}

	return rgba
}

// Binarize maps every pixel to 255 when it is at least threshold and to 0
// otherwise.
func Binarize(gray *GrayImage, threshold uint8) *GrayImage {
	dst := NewGrayImage(gray.Width(), gray.Height())
	for i, v := range gray.Pix {
		if v >= threshold {
			dst.Pix[i] = 255
		}
	}
	return dst
}

// Invert returns 255 - v for every pixel.
func Invert(gray *GrayImage) *GrayImage {
	dst := NewGrayImage(gray.Width(), gray.Height())
	for i, v := range gray.Pix {
		dst.Pix[i] = 255 - v
	}
	return dst
}
