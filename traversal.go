package img2sketch

import (
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats"

	"github.com/wbrown/img2sketch/imageutil"
)

// progressInterval is how many visits pass between progress log lines.
const progressInterval = 40

// Cell is a grid coordinate.
type Cell struct {
	Row, Col int
}

func (c Cell) point() [2]float64 {
	return [2]float64{float64(c.Row), float64(c.Col)}
}

// CellGrid partitions a width x height frame into square cells of side
// Size. The last row and column are partial when Size does not divide the
// frame.
type CellGrid struct {
	Width, Height int
	Size          int
	Rows, Cols    int
}

// NewCellGrid builds the grid for a frame and cell size.
func NewCellGrid(width, height, size int) CellGrid {
	return CellGrid{
		Width:  width,
		Height: height,
		Size:   size,
		Rows:   (height + size - 1) / size,
		Cols:   (width + size - 1) / size,
	}
}

// Rect returns the pixel rectangle covered by c.
func (g CellGrid) Rect(c Cell) image.Rectangle {
	return image.Rect(
		c.Col*g.Size,
		c.Row*g.Size,
		min((c.Col+1)*g.Size, g.Width),
		min((c.Row+1)*g.Size, g.Height),
	)
}

// Midpoint returns the pixel the hand points at while c is drawn.
func (g CellGrid) Midpoint(c Cell) image.Point {
	return image.Pt(c.Col*g.Size+g.Size/2, c.Row*g.Size+g.Size/2)
}

// ActiveCells returns, in row-major order, the cells of ink holding at
// least one pixel below threshold.
func (g CellGrid) ActiveCells(ink *imageutil.GrayImage, threshold uint8) []Cell {
	active := make([]bool, g.Rows*g.Cols)
	for y := 0; y < g.Height; y++ {
		row := ink.Pix[y*ink.Stride : y*ink.Stride+g.Width]
		base := (y / g.Size) * g.Cols
		for x, v := range row {
			if v < threshold {
				active[base+x/g.Size] = true
			}
		}
	}

	var cells []Cell
	for i, on := range active {
		if on {
			cells = append(cells, Cell{Row: i / g.Cols, Col: i % g.Cols})
		}
	}
	return cells
}

// nearestCell returns the index of the cell in cells closest to from in
// grid space. The first of several equally close cells wins.
func nearestCell(cells []Cell, from Cell) int {
	p := from.point()
	best, bestDist := 0, -1.0
	for i, c := range cells {
		q := c.point()
		d := floats.Distance(p[:], q[:], 2)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// RegionPass describes one traversal: the region to draw, the cell size
// and how many visits elapse per emitted frame.
type RegionPass struct {
	// Mask limits the pass to pixels where it is 255. nil means the whole
	// frame.
	Mask     *imageutil.GrayImage
	SplitLen int
	SkipRate int
	// Name labels the pass in log output.
	Name string
}

// PassStats summarizes one traversal.
type PassStats struct {
	Name        string
	ActiveCells int
	Visited     int
	Frames      int
}

// Engine draws regions of a prepared image onto a canvas it owns and
// streams the sampled frames to a sink. An Engine serves one request and
// is not safe for concurrent use.
type Engine struct {
	prepared *PreparedImage
	hand     *HandAsset
	sink     FrameSink
	logger   *log.Logger

	canvas *imageutil.RGBAImage
	frame  *imageutil.RGBAImage
}

// NewEngine returns an Engine with a white canvas the size of prepared.
// A nil logger logs to log.Default().
func NewEngine(prepared *PreparedImage, hand *HandAsset, sink FrameSink, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	canvas := imageutil.CreateSolidImage(prepared.Width(), prepared.Height(), imageutil.White)
	return &Engine{
		prepared: prepared,
		hand:     hand,
		sink:     sink,
		logger:   logger,
		canvas:   canvas,
		frame:    imageutil.NewRGBAImage(canvas.Width(), canvas.Height()),
	}
}

// Canvas returns the canvas. It must not be modified while the engine is
// drawing.
func (e *Engine) Canvas() *imageutil.RGBAImage {
	return e.canvas
}

// DrawRegion traverses the ink cells of one region.
//
// Cells are visited in greedy nearest-neighbor order starting from the
// first active cell in row-major order. Visiting a cell copies its ink map
// content onto the canvas; on every SkipRate-th visit the canvas with the
// hand at the cell midpoint is written to the sink. The walk stops when a
// single cell remains, so that cell is never visited on its own. Finally
// the region is revealed in full color.
func (e *Engine) DrawRegion(pass RegionPass) (PassStats, error) {
	stats := PassStats{Name: pass.Name}
	if pass.SplitLen <= 0 || pass.SkipRate <= 0 {
		return stats, fmt.Errorf("%w: split length %d, skip rate %d",
			ErrInvalidConfig, pass.SplitLen, pass.SkipRate)
	}
	width, height := e.prepared.Width(), e.prepared.Height()
	if pass.Mask != nil && (pass.Mask.Width() != width || pass.Mask.Height() != height) {
		return stats, fmt.Errorf("%w: region mask %dx%d, frame %dx%d", ErrSizeMismatch,
			pass.Mask.Width(), pass.Mask.Height(), width, height)
	}

	view := e.prepared.Ink
	if pass.Mask != nil {
		view = view.Clone()
		for i, m := range pass.Mask.Pix {
			if m != 255 {
				view.Pix[i] = 255
			}
		}
	}

	grid := NewCellGrid(width, height, pass.SplitLen)
	cells := grid.ActiveCells(view, BlackPixelThreshold)
	stats.ActiveCells = len(cells)
	e.logger.Debug("drawing region", "pass", pass.Name, "grid", fmt.Sprintf("%dx%d", grid.Rows, grid.Cols),
		"active", len(cells), "skip_rate", pass.SkipRate)

	selected := 0
	for len(cells) > 1 {
		current := cells[selected]
		e.inkCell(view, grid.Rect(current))

		last := len(cells) - 1
		cells[selected] = cells[last]
		cells = cells[:last]
		selected = nearestCell(cells, current)

		stats.Visited++
		if stats.Visited%pass.SkipRate == 0 {
			// The hand is only composited for frames that are emitted.
			e.frame.CopyFrom(e.canvas)
			mid := grid.Midpoint(current)
			e.hand.Overlay(e.frame, mid.X, mid.Y)
			if err := e.sink.WriteFrame(e.frame); err != nil {
				return stats, fmt.Errorf("write frame %d: %w", stats.Frames, err)
			}
			stats.Frames++
		}
		if stats.Visited%progressInterval == 0 {
			e.logger.Debug("drawing progress", "pass", pass.Name, "remaining", len(cells))
		}
	}

	e.reveal(pass.Mask)
	return stats, nil
}

// inkCell copies the ink map content of r onto the canvas as gray pixels.
func (e *Engine) inkCell(view *imageutil.GrayImage, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := view.Pix[y*view.Stride:]
		for x := r.Min.X; x < r.Max.X; x++ {
			v := src[x]
			e.canvas.SetRGB(x, y, imageutil.RGB{R: v, G: v, B: v})
		}
	}
}

// reveal copies the color image onto the canvas inside mask, or
// everywhere when mask is nil.
func (e *Engine) reveal(mask *imageutil.GrayImage) {
	color := e.prepared.Color
	if mask == nil {
		e.canvas.CopyFrom(color)
		return
	}
	for y := 0; y < mask.Height(); y++ {
		row := mask.Pix[y*mask.Stride:]
		for x := 0; x < mask.Width(); x++ {
			if row[x] == 255 {
				e.canvas.SetRGB(x, y, color.GetRGB(x, y))
			}
		}
	}
}
