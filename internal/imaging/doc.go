// Package imaging implements the pixel-level stages of the plan-extraction
// pipeline: source decoding and downscaling, grayscale reduction, smoothing,
// Canny-style edge detection, morphological dilation, and mirroring.
//
// All stages operate on the Buffer type, a single-channel intensity plane.
// Every stage allocates a fresh Buffer for its output; no Buffer is written
// to by more than one stage, so stages can be composed freely and pipeline
// invocations may run concurrently on independent inputs.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner,
// X increasing rightward and Y increasing downward.
//
// # Edge Masks
//
// Edge detection and dilation produce binary Buffers where 255 marks an
// edge pixel and 0 marks background. The intermediate weak-edge value 128
// never survives past hysteresis tracing.
//
// # Error Handling
//
// Decoding the source image is the only operation in this package that can
// fail. The pure pixel transforms have no failure modes and return values
// directly.
package imaging
