package camera

import (
	"image"
	"sync/atomic"
)

type cellFrame struct {
	img image.Image
	seq uint64
}

// FrameCell holds the most recent frame. Store overwrites without
// blocking; Load never sees a partially published frame.
type FrameCell struct {
	current atomic.Pointer[cellFrame]
	seq     atomic.Uint64
}

// Store publishes img as the latest frame.
func (c *FrameCell) Store(img image.Image) {
	c.current.Store(&cellFrame{img: img, seq: c.seq.Add(1)})
}

// Load returns the latest frame and its sequence number, or nil and 0
// when nothing was stored yet.
func (c *FrameCell) Load() (image.Image, uint64) {
	f := c.current.Load()
	if f == nil {
		return nil, 0
	}
	return f.img, f.seq
}

// Reset drops the held frame.
func (c *FrameCell) Reset() {
	c.current.Store(nil)
}
