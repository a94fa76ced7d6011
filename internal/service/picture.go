package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"net/http"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"go-tms-api/pkg/apierror"
)

const (
	defaultPictureSize      = 256
	defaultPictureMaxPixels = 4096 * 4096
	pictureQuality          = 90
)

// PictureNormalizer re-encodes profile pictures as JPEG no larger than
// size pixels on the long edge. Sources above maxPixels are refused before
// their pixels are decoded.
type PictureNormalizer struct {
	size      int
	maxPixels int
}

func NewPictureNormalizer(size int, maxPixels int) *PictureNormalizer {
	if size <= 0 {
		size = defaultPictureSize
	}
	if maxPixels <= 0 {
		maxPixels = defaultPictureMaxPixels
	}
	return &PictureNormalizer{size: size, maxPixels: maxPixels}
}

// Normalize returns nil for empty input and a 400 error for undecodable data.
func (n *PictureNormalizer) Normalize(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	header, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apierror.New("UNSUPPORTED_TYPE", "profile picture is not a supported image", "", http.StatusBadRequest)
	}
	if header.Width <= 0 || header.Height <= 0 {
		return nil, apierror.New("UNSUPPORTED_TYPE", "profile picture has invalid dimensions", "", http.StatusBadRequest)
	}
	if int64(header.Width)*int64(header.Height) > int64(n.maxPixels) {
		return nil, apierror.New("PAYLOAD_TOO_LARGE",
			fmt.Sprintf("profile picture exceeds %d pixels", n.maxPixels),
			fmt.Sprintf("%dx%d", header.Width, header.Height),
			http.StatusRequestEntityTooLarge)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apierror.New("UNSUPPORTED_TYPE", "profile picture is not a supported image", "", http.StatusBadRequest)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, apierror.New("UNSUPPORTED_TYPE", "profile picture has invalid dimensions", "", http.StatusBadRequest)
	}

	maxDim := width
	if height > maxDim {
		maxDim = height
	}

	scale := float64(n.size) / float64(maxDim)
	if scale > 1 {
		scale = 1
	}

	targetWidth := max(int(math.Round(float64(width)*scale)), 1)
	targetHeight := max(int(math.Round(float64(height)*scale)), 1)

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: pictureQuality}); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
