package img2sketch

import "fmt"

// StandardResolutions lists the frame dimensions an output video may have,
// ascending. Both 16:9 widths and heights appear, so either axis can snap to
// the same table.
var StandardResolutions = []int{
	360, 480, 640, 720, 1080, 1280, 1440, 1920, 2160, 2560, 3840, 4320, 7680,
}

// NormalizeResolution snaps an image's dimensions onto StandardResolutions.
// The height snaps first; the width is then derived from the original
// aspect ratio at the snapped height and snapped on its own. Inputs must be
// positive.
func NormalizeResolution(height, width int) (normWidth, normHeight int) {
	normHeight = NearestResolution(height)
	aspect := float64(width) / float64(height)
	normWidth = NearestResolution(int(float64(normHeight) * aspect))
	return normWidth, normHeight
}

// NormalizeResolutionChecked is NormalizeResolution with input validation.
func NormalizeResolutionChecked(height, width int) (normWidth, normHeight int, err error) {
	if height <= 0 || width <= 0 {
		return 0, 0, fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, width, height)
	}
	normWidth, normHeight = NormalizeResolution(height, width)
	return normWidth, normHeight, nil
}

// NearestResolution returns the entry of StandardResolutions closest to v.
// Ties go to the smaller entry.
func NearestResolution(v int) int {
	best := StandardResolutions[0]
	for _, r := range StandardResolutions[1:] {
		if absInt(r-v) < absInt(best-v) {
			best = r
		}
	}
	return best
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
