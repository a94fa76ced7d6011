package service

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width int, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestPictureNormalizer_Empty(t *testing.T) {
	out, err := NewPictureNormalizer(64, 0).Normalize(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestPictureNormalizer_DownscalesLongEdge(t *testing.T) {
	out, err := NewPictureNormalizer(64, 0).Normalize(encodePNG(t, 200, 100))
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestPictureNormalizer_KeepsSmallImages(t *testing.T) {
	out, err := NewPictureNormalizer(64, 0).Normalize(encodePNG(t, 10, 20))
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestPictureNormalizer_RejectsGarbage(t *testing.T) {
	_, err := NewPictureNormalizer(0, 0).Normalize([]byte{0x00, 0x01, 0x02})
	requireAPIError(t, err, 400, "profile picture is not a supported image")
}

func TestPictureNormalizer_RejectsOversizedSource(t *testing.T) {
	normalizer := NewPictureNormalizer(64, 100*100)

	_, err := normalizer.Normalize(encodePNG(t, 200, 100))
	requireAPIError(t, err, http.StatusRequestEntityTooLarge, "profile picture exceeds 10000 pixels")

	out, err := normalizer.Normalize(encodePNG(t, 100, 100))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
