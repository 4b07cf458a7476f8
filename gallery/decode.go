package gallery

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/rwcarlsen/goexif/exif"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxTextureSize bounds the longest edge of an uploaded texture.
const DefaultMaxTextureSize = 2048

// MaxSourceDimension bounds either edge of an encoded image before it is decoded.
const MaxSourceDimension = 16384

// DecodeImage turns encoded image bytes into straight-alpha RGBA pixels ready for upload.
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported. The EXIF orientation tag is honoured so
// photos appear upright, and images whose longest edge exceeds maxSize are scaled down with
// a Catmull-Rom filter. A maxSize of zero or less disables scaling.
//
// Parameters:
//   - data: the encoded image
//   - maxSize: the longest allowed edge in pixels
//
// Returns:
//   - common.TextureStagingData: the decoded pixels
//   - error: error if the bytes are not a supported image or declare edges beyond MaxSourceDimension
func DecodeImage(data []byte, maxSize int) (common.TextureStagingData, error) {
	hdr, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode image: %w", err)
	}
	if hdr.Width <= 0 || hdr.Height <= 0 || hdr.Width > MaxSourceDimension || hdr.Height > MaxSourceDimension {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode image: %s is %dx%d, limit is %d per edge", format, hdr.Width, hdr.Height, MaxSourceDimension)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode image: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return common.TextureStagingData{}, fmt.Errorf("failed to decode image: empty %s", format)
	}

	dw, dh := fitWithin(b.Dx(), b.Dy(), maxSize)
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	if dw == b.Dx() && dh == b.Dy() {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	}

	dst = applyOrientation(dst, readOrientation(data))
	return common.TextureStagingData{
		Pixels: dst.Pix,
		Width:  uint32(dst.Rect.Dx()),
		Height: uint32(dst.Rect.Dy()),
	}, nil
}

// fitWithin scales w x h down so neither edge exceeds maxSize, preserving aspect.
func fitWithin(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w)
	}
	return max(1, w*maxSize/h), maxSize
}

// readOrientation returns the EXIF orientation (1-8), or 1 when absent or unreadable.
func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}

// applyOrientation returns src transformed so that EXIF orientation o displays upright.
func applyOrientation(src *image.NRGBA, o int) *image.NRGBA {
	if o <= 1 || o > 8 {
		return src
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dw, dh := w, h
	if o >= 5 {
		dw, dh = h, w
	}
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	for y := range dh {
		for x := range dw {
			var sx, sy int
			switch o {
			case 2:
				sx, sy = w-1-x, y
			case 3:
				sx, sy = w-1-x, h-1-y
			case 4:
				sx, sy = x, h-1-y
			case 5:
				sx, sy = y, x
			case 6:
				sx, sy = y, h-1-x
			case 7:
				sx, sy = w-1-y, h-1-x
			case 8:
				sx, sy = w-1-y, x
			}
			si := src.PixOffset(src.Rect.Min.X+sx, src.Rect.Min.Y+sy)
			di := dst.PixOffset(x, y)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}
