package camera

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/common"
	"github.com/NYTEMODEONLY/codedexpro/internal/config"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, dir, name string, shade uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = shade
	}
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestFrameCell(t *testing.T) {
	var cell FrameCell
	img, seq := cell.Load()
	assert.Nil(t, img)
	assert.Zero(t, seq)

	a := image.NewGray(image.Rect(0, 0, 1, 1))
	b := image.NewGray(image.Rect(0, 0, 2, 2))
	cell.Store(a)
	cell.Store(b)

	img, seq = cell.Load()
	assert.Same(t, b, img)
	assert.Equal(t, uint64(2), seq)

	cell.Reset()
	img, _ = cell.Load()
	assert.Nil(t, img)
}

func TestFrameCell_ConcurrentStoreLoad(t *testing.T) {
	var cell FrameCell
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			cell.Store(image.NewGray(image.Rect(0, 0, 1, 1)))
		}
	}()
	go func() {
		defer wg.Done()
		var last uint64
		for i := 0; i < 1000; i++ {
			_, seq := cell.Load()
			assert.GreaterOrEqual(t, seq, last)
			last = seq
		}
	}()
	wg.Wait()
	_, seq := cell.Load()
	assert.Equal(t, uint64(1000), seq)
}

func TestReplay_CyclesInNameOrder(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "b.png", 200)
	writeImage(t, dir, "a.png", 10)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	ctx := context.Background()
	r := NewReplay(dir)
	require.NoError(t, r.Open(ctx, 0))

	var shades []uint8
	for i := 0; i < 3; i++ {
		img, err := r.ReadFrame(ctx)
		require.NoError(t, err)
		shades = append(shades, color.GrayModel.Convert(img.At(0, 0)).(color.Gray).Y)
	}
	assert.Equal(t, []uint8{10, 200, 10}, shades)

	require.NoError(t, r.Close())
	_, err := r.ReadFrame(ctx)
	assert.Error(t, err)
}

func TestReplay_OpenErrors(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, NewReplay(t.TempDir()).Open(ctx, 0), "empty directory")
	assert.Error(t, NewReplay(filepath.Join(t.TempDir(), "missing")).Open(ctx, 0))
}

func TestListImages_Glob(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "frame2.png", 1)
	writeImage(t, dir, "frame1.jpg", 1)
	writeImage(t, dir, "other.png", 1)

	files, err := ListImages(filepath.Join(dir, "frame*"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "frame1.jpg"), filepath.Join(dir, "frame2.png")}, files)

	single, err := ListImages(filepath.Join(dir, "other.png"))
	require.NoError(t, err)
	assert.Len(t, single, 1)
}

func TestYUYVToYCbCr(t *testing.T) {
	// Two pixels: Y0=16 U=128 Y1=235 V=128, on two rows.
	data := []byte{16, 128, 235, 128, 50, 90, 60, 170}
	img, err := yuyvToYCbCr(data, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(16), img.YCbCrAt(0, 0).Y)
	assert.Equal(t, uint8(235), img.YCbCrAt(1, 0).Y)
	assert.Equal(t, uint8(60), img.YCbCrAt(1, 1).Y)
	assert.Equal(t, uint8(90), img.YCbCrAt(0, 1).Cb)
	assert.Equal(t, uint8(170), img.YCbCrAt(1, 1).Cr)

	_, err = yuyvToYCbCr(data[:4], 2, 2)
	assert.Error(t, err)
	_, err = yuyvToYCbCr(data, 3, 1)
	assert.Error(t, err)
}

type countingCamera struct {
	reads  atomic.Int64
	opened atomic.Bool
}

func (c *countingCamera) Open(_ context.Context, _ int) error {
	c.opened.Store(true)
	return nil
}

func (c *countingCamera) ReadFrame(_ context.Context) (image.Image, error) {
	n := c.reads.Add(1)
	return image.NewGray(image.Rect(0, 0, int(n), 1)), nil
}

func (c *countingCamera) Close() error {
	c.opened.Store(false)
	return nil
}

func TestBuffered_ServesLatestFrame(t *testing.T) {
	ctx := context.Background()
	inner := &countingCamera{}
	b := NewBuffered(inner, time.Millisecond)

	require.NoError(t, b.Open(ctx, 0))
	require.Eventually(t, func() bool {
		img, _ := b.ReadFrame(ctx)
		return img != nil && img.Bounds().Dx() >= 3
	}, time.Second, time.Millisecond)

	require.NoError(t, b.Close())
	assert.False(t, inner.opened.Load())

	stopped := inner.reads.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, inner.reads.Load(), "loop stops on Close")

	img, err := b.ReadFrame(ctx)
	require.NoError(t, err)
	assert.Nil(t, img)
}

func TestCaptureLoop_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	inner := &countingCamera{}
	var cell FrameCell
	loop := NewCaptureLoop(inner, &cell, time.Millisecond)

	loop.Start(ctx)
	require.Eventually(t, func() bool {
		_, seq := cell.Load()
		return seq > 0
	}, time.Second, time.Millisecond)
	cancel()
	loop.Stop()

	_, seq := cell.Load()
	time.Sleep(5 * time.Millisecond)
	_, after := cell.Load()
	assert.Equal(t, seq, after)
}

func TestNew(t *testing.T) {
	settings := config.Defaults()

	cam, err := New(settings)
	require.NoError(t, err)
	assert.IsType(t, &Webcam{}, cam)

	settings.Camera.Source = config.SourceScreen
	cam, err = New(settings)
	require.NoError(t, err)
	assert.IsType(t, &Screen{}, cam)

	settings.Camera.Source = config.SourceReplay
	_, err = New(settings)
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	settings.Camera.ReplayPath = t.TempDir()
	settings.Scan.CaptureLoop = true
	cam, err = New(settings)
	require.NoError(t, err)
	assert.IsType(t, &Buffered{}, cam)

	settings.Camera.Source = "telescope"
	_, err = New(settings)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
