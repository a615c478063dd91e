package imagepkg

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaroslavdusek1/metasnap/internal/exif"
	"github.com/jaroslavdusek1/metasnap/internal/testutil"
)

func TestDecodeJPEGWithExif(t *testing.T) {
	data := testutil.ExifJPEG(t, testutil.TIFF(
		[]testutil.Tag{testutil.ASCII(0x010F, "TestCam")}, nil, nil))

	img, err := Decode(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, "jpeg", img.Format())
	require.Equal(t, 8, img.Image().Bounds().Dx())

	src, ok := img.(exif.Source)
	require.True(t, ok, "jpeg should expose an exif accessor")
	raw, ok := src.RawExif()
	require.True(t, ok)
	v, ok := raw.Lookup(0x010F)
	require.True(t, ok)
	require.Equal(t, "TestCam", v.String())
}

func TestDecodeJPEGWithoutExif(t *testing.T) {
	img, err := Decode(context.Background(), testutil.JPEG(t, nil))
	require.NoError(t, err)

	src, ok := img.(exif.Source)
	require.True(t, ok)
	_, ok = src.RawExif()
	require.False(t, ok)
}

func TestDecodePNGHasNoAccessor(t *testing.T) {
	img, err := Decode(context.Background(), testutil.PNG(t))
	require.NoError(t, err)
	require.Equal(t, "png", img.Format())

	_, ok := img.(exif.Source)
	require.False(t, ok)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(context.Background(), []byte("<html>not an image</html>"))
	require.Error(t, err)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
}

func TestDecodeTIFFExposesExif(t *testing.T) {
	img, err := Decode(context.Background(), testutil.TIFFImage(t))
	require.NoError(t, err)
	require.Equal(t, "tiff", img.Format())

	src, ok := img.(exif.Source)
	require.True(t, ok, "tiff should expose an exif accessor")
	raw, ok := src.RawExif()
	require.True(t, ok)
	v, ok := raw.Lookup(0x0100)
	require.True(t, ok, "ImageWidth missing")
	require.Equal(t, "4", v.String())
}
