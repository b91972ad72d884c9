package img2sketch

import (
	"fmt"

	"github.com/wbrown/img2sketch/imageutil"
)

// ComposeStats collects the statistics of every pass of one composition,
// in the order the passes ran.
type ComposeStats struct {
	Passes []PassStats
}

// Frames returns the total number of frames written by all passes.
func (s ComposeStats) Frames() int {
	n := 0
	for _, p := range s.Passes {
		n += p.Frames
	}
	return n
}

// Compose draws the whole image.
//
// Without object masks a single unmasked pass runs at the configured split
// length and object skip rate. With masks, each object is drawn in turn
// and removed from the background mask, then the remaining background is
// drawn with a BackgroundSplitLen grid and the background skip rate.
// Object masks must match the frame size.
func (e *Engine) Compose(cfg RenderConfig, objects []*imageutil.GrayImage) (ComposeStats, error) {
	var stats ComposeStats
	if len(objects) == 0 {
		ps, err := e.DrawRegion(RegionPass{
			SplitLen: cfg.SplitLen,
			SkipRate: cfg.ObjectSkipRate,
			Name:     "image",
		})
		stats.Passes = append(stats.Passes, ps)
		return stats, err
	}

	background := imageutil.NewFilledGrayImage(e.prepared.Width(), e.prepared.Height(), 255)
	for i, mask := range objects {
		ps, err := e.DrawRegion(RegionPass{
			Mask:     mask,
			SplitLen: cfg.SplitLen,
			SkipRate: cfg.ObjectSkipRate,
			Name:     fmt.Sprintf("object %d", i+1),
		})
		stats.Passes = append(stats.Passes, ps)
		if err != nil {
			return stats, err
		}
		for j, m := range mask.Pix {
			if m == 255 {
				background.Pix[j] = 0
			}
		}
	}

	ps, err := e.DrawRegion(RegionPass{
		Mask:     background,
		SplitLen: BackgroundSplitLen,
		SkipRate: cfg.BackgroundSkipRate,
		Name:     "background",
	})
	stats.Passes = append(stats.Passes, ps)
	return stats, err
}
