package imaging

// Buffer is a single-channel intensity plane backed by a flat sample slice.
//
// Samples are stored row-major: the pixel at (x, y) lives at index
// y*Width + x. Every pipeline stage that derives a new plane allocates a
// fresh Buffer of the same dimensions rather than mutating its input.
type Buffer struct {
	// Width of the plane in pixels.
	Width int

	// Height of the plane in pixels.
	Height int

	// Pix holds Width*Height intensity samples in row-major order.
	Pix []uint8
}

// NewBuffer allocates a zeroed Buffer of the given dimensions.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At returns the sample at (x, y). Coordinates must be in bounds.
func (b *Buffer) At(x, y int) uint8 {
	return b.Pix[y*b.Width+x]
}

// Set stores a sample at (x, y). Coordinates must be in bounds.
func (b *Buffer) Set(x, y int, v uint8) {
	b.Pix[y*b.Width+x] = v
}

// In reports whether (x, y) lies inside the plane.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Clone returns a deep copy of the Buffer.
func (b *Buffer) Clone() *Buffer {
	out := NewBuffer(b.Width, b.Height)
	copy(out.Pix, b.Pix)
	return out
}

// Equal reports whether two Buffers have identical dimensions and samples.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.Width != other.Width || b.Height != other.Height {
		return false
	}
	for i, v := range b.Pix {
		if other.Pix[i] != v {
			return false
		}
	}
	return true
}
