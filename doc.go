// Package img2sketch turns a still image into the frames of a whiteboard
// hand-drawing animation.
//
// The pipeline snaps the image to a standard resolution, binarizes it into
// an ink map, splits the ink map into a grid of square cells and walks the
// cells that carry ink in greedy nearest-neighbor order. Every visited cell
// is inked onto a persistent white canvas; every SkipRate-th visit the
// canvas, with a hand sprite drawn at the current cell, is written to a
// FrameSink. When a region has been walked its true colors are revealed.
//
// With object annotations each object polygon is drawn as its own region
// before a coarser pass over the remaining background.
//
// Typical use:
//
//	cfg := img2sketch.RenderConfig{FrameRate: 25, Width: w, Height: h,
//		SplitLen: 10, ObjectSkipRate: 8, BackgroundSkipRate: 20,
//		EndHoldSeconds: 3}
//	prepared, err := img2sketch.Prepare(img, cfg)
//	hand, err := img2sketch.DefaultHand()
//	engine := img2sketch.NewEngine(prepared, hand, sink, logger)
//	stats, err := engine.Compose(cfg, nil)
package img2sketch
