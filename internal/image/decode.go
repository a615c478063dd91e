package imagepkg

import (
	"bytes"
	"context"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"

	"github.com/jaroslavdusek1/metasnap/internal/exif"
)

// DecodeError reports bytes that do not form a decodable image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decoding image: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// Decoded is an image returned by Decode. Images whose container can carry
// EXIF also implement exif.Source.
type Decoded interface {
	Format() string
	Image() image.Image
}

type decoded struct {
	format string
	img    image.Image
}

func (d *decoded) Format() string     { return d.format }
func (d *decoded) Image() image.Image { return d.img }

type exifDecoded struct {
	decoded
	raw     exif.Directory
	hasExif bool
}

func (d *exifDecoded) RawExif() (exif.Directory, bool) { return d.raw, d.hasExif }

// formats whose containers carry an EXIF block goexif can locate
var exifFormats = map[string]bool{
	"jpeg": true,
	"tiff": true,
}

// Decode interprets data as an image. Failure is returned as *DecodeError.
func Decode(ctx context.Context, data []byte) (Decoded, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	b := img.Bounds()
	zerolog.Ctx(ctx).Debug().
		Str("format", format).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Msg("image decoded")

	d := decoded{format: format, img: img}
	if !exifFormats[format] {
		return &d, nil
	}
	raw, ok := exif.ReadRaw(ctx, bytes.NewReader(data))
	return &exifDecoded{decoded: d, raw: raw, hasExif: ok}, nil
}
