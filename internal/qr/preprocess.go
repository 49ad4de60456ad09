package qr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	// blurSigma matches a 5x5 Gaussian kernel.
	blurSigma = 1.1
	// thresholdSigma matches the 11x11 Gaussian neighbourhood used for
	// the adaptive threshold.
	thresholdSigma = 2.0
	thresholdC     = 2
)

// Preprocess converts img into a black and white image that decodes more
// reliably under uneven lighting: grayscale, Gaussian blur, adaptive
// threshold, then a 3x3 close followed by a 3x3 open.
func Preprocess(img image.Image) *image.Gray {
	gray := imaging.Grayscale(img)
	blurred := imaging.Blur(gray, blurSigma)
	local := imaging.Blur(blurred, thresholdSigma)

	bin := threshold(blurred, local)
	bin = erode(dilate(bin))
	bin = dilate(erode(bin))
	return bin
}

// threshold marks a pixel white when it is brighter than its weighted
// neighbourhood mean minus thresholdC.
func threshold(src, mean *image.NRGBA) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := int(src.Pix[y*src.Stride+x*4])
			m := int(mean.Pix[y*mean.Stride+x*4])
			if v > m-thresholdC {
				out.Pix[y*out.Stride+x] = 0xff
			}
		}
	}
	return out
}

func dilate(src *image.Gray) *image.Gray {
	return morph(src, func(a, b uint8) bool { return b > a })
}

func erode(src *image.Gray) *image.Gray {
	return morph(src, func(a, b uint8) bool { return b < a })
}

// morph applies a 3x3 rank filter; better reports whether b replaces a.
// Pixels outside the image are ignored.
func morph(src *image.Gray, better func(a, b uint8) bool) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := src.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					if n := src.GrayAt(b.Min.X+nx, b.Min.Y+ny).Y; better(v, n) {
						v = n
					}
				}
			}
			out.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return out
}
