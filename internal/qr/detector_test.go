package qr

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeQR(t *testing.T, content string, size int) image.Image {
	t.Helper()
	matrix, err := qrcode.NewQRCodeWriter().Encode(content, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	require.NoError(t, err)
	return matrix
}

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img
}

func TestDetect_SingleCode(t *testing.T) {
	d := NewDetector()
	got, err := d.Detect(context.Background(), encodeQR(t, "ABC-DEF-123", 240))
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC-DEF-123"}, got)
}

func TestDetect_CodeOnLargerFrame(t *testing.T) {
	frame := blank(640, 480)
	draw.Draw(frame, image.Rect(100, 80, 340, 320), encodeQR(t, "TCG-CODE-42", 240), image.Point{}, draw.Src)

	got, err := NewDetector().Detect(context.Background(), frame)
	require.NoError(t, err)
	assert.Equal(t, []string{"TCG-CODE-42"}, got)
}

func TestDetect_NothingFound(t *testing.T) {
	tests := []struct {
		img  image.Image
		name string
	}{
		{name: "blank frame", img: blank(320, 240)},
		{name: "nil frame", img: nil},
		{name: "empty bounds", img: image.NewGray(image.Rect(0, 0, 0, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDetector().Detect(context.Background(), tt.img)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestDetect_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDetector().Detect(ctx, blank(10, 10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreprocess_Binary(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			src.SetGray(x, y, color.Gray{Y: uint8((x * 4) ^ (y * 3))})
		}
	}

	out := Preprocess(src)
	assert.Equal(t, image.Rect(0, 0, 64, 48), out.Bounds())
	for _, v := range out.Pix {
		if v != 0 && v != 0xff {
			t.Fatalf("pixel value %d is not black or white", v)
		}
	}
}

func TestPreprocess_UniformIsWhite(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range src.Pix {
		src.Pix[i] = 90
	}
	out := Preprocess(src)
	for _, v := range out.Pix {
		require.Equal(t, uint8(0xff), v)
	}
}

func TestMorph_RemovesSpeck(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 7, 7))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetGray(3, 3, color.Gray{})

	closed := erode(dilate(img))
	assert.Equal(t, uint8(0xff), closed.GrayAt(3, 3).Y, "closing fills an isolated dark pixel")
}
