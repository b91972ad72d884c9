package img2sketch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/wbrown/img2sketch/imageutil"
)

// SaveStages writes the preprocessing buffers as PNG files named
// <prefix>_<stage>.png in dir, creating dir when needed, and returns the
// paths written. It is meant for tuning: the ink stage shows exactly what
// the hand will draw.
func (p *PreparedImage) SaveStages(dir, prefix string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create stage directory: %w", err)
	}

	stages := []struct {
		name string
		img  image.Image
	}{
		{"color", p.Color},
		{"gray", p.Gray},
		{"equalized", p.Equalized},
		{"ink", p.Ink},
	}

	paths := make([]string, 0, len(stages))
	for _, s := range stages {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", prefix, s.name))
		if err := imageutil.SaveImage(s.img, path); err != nil {
			return paths, fmt.Errorf("stage %s: %w", s.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
