package exif

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/jaroslavdusek1/metasnap/internal/exif/tags"
)

// ReadRaw locates the EXIF block in r, either the first JPEG APP1 segment
// carrying an Exif header or a bare TIFF stream, and returns IFD0 merged with
// the Exif sub-IFD. The GPS pointer value is replaced by the GPS sub-IFD as a
// nested Directory.
// It reports false when no usable EXIF block exists.
func ReadRaw(ctx context.Context, r io.Reader) (Directory, bool) {
	logger := zerolog.Ctx(ctx)

	data, err := io.ReadAll(r)
	if err != nil {
		logger.Debug().Err(err).Msg("reading image data")
		return nil, false
	}
	if bytes.HasPrefix(data, jpegSOI) {
		block, ok := exifSegment(data)
		if !ok {
			logger.Debug().Msg("no exif app1 segment")
			return nil, false
		}
		data = block
	}

	x, err := goexif.Decode(bytes.NewReader(data))
	if err != nil && goexif.IsCriticalError(err) {
		logger.Debug().Err(err).Msg("no usable exif block")
		return nil, false
	}
	if err != nil {
		logger.Warn().Err(err).Msg("exif sub-directory errors, keeping readable tags")
	}
	if x == nil || x.Tiff == nil || len(x.Tiff.Dirs) == 0 {
		return nil, false
	}

	ifd0 := x.Tiff.Dirs[0]
	dir := fromDir(ifd0)

	if off, ok := pointer(ifd0, tags.ExifIFD); ok {
		sub, err := subDir(x, off)
		if err != nil {
			logger.Warn().Err(err).Int64("offset", off).Msg("skipping exif sub-ifd")
		} else {
			for _, f := range fromDir(sub) {
				dir.set(f.ID, f.Value)
			}
		}
	}

	if off, ok := pointer(ifd0, tags.GPSIFD); ok {
		sub, err := subDir(x, off)
		if err != nil {
			logger.Warn().Err(err).Int64("offset", off).Msg("skipping gps sub-ifd")
		} else {
			dir.set(tags.GPSIFD, fromDir(sub))
		}
	}

	return dir, true
}

var (
	jpegSOI    = []byte{0xFF, 0xD8}
	exifHeader = []byte("Exif\x00\x00")
)

// exifSegment walks the JPEG marker segments up to the first scan and returns
// the TIFF payload of the first APP1 segment that starts with the Exif header.
// Other APP1 segments, such as XMP packets, are skipped.
func exifSegment(data []byte) ([]byte, bool) {
	pos := len(jpegSOI)
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return nil, false
		}
		marker := data[pos+1]
		switch {
		case marker == 0xFF:
			// fill byte
			pos++
			continue
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7):
			pos += 2
			continue
		case marker == 0xD9 || marker == 0xDA:
			return nil, false
		}

		n := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		end := pos + 2 + n
		if n < 2 || end > len(data) {
			return nil, false
		}
		payload := data[pos+4 : end]
		if marker == 0xE1 && bytes.HasPrefix(payload, exifHeader) {
			return payload[len(exifHeader):], true
		}
		pos = end
	}
	return nil, false
}

func pointer(d *tiff.Dir, id uint16) (int64, bool) {
	for _, t := range d.Tags {
		if t.Id != id {
			continue
		}
		off, err := t.Int64(0)
		if err != nil {
			return 0, false
		}
		return off, true
	}
	return 0, false
}

func subDir(x *goexif.Exif, offset int64) (*tiff.Dir, error) {
	r := bytes.NewReader(x.Raw)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to sub-ifd: %w", err)
	}
	d, _, err := tiff.DecodeDir(r, x.Tiff.Order)
	if err != nil {
		return nil, fmt.Errorf("decoding sub-ifd: %w", err)
	}
	return d, nil
}

func fromDir(d *tiff.Dir) Directory {
	dir := make(Directory, 0, len(d.Tags))
	for _, t := range d.Tags {
		dir.set(t.Id, fromTag(t))
	}
	return dir
}

func fromTag(t *tiff.Tag) Value {
	switch t.Type {
	case tiff.DTAscii:
		return String(strings.TrimSuffix(string(t.Val), "\x00"))
	case tiff.DTByte, tiff.DTUndefined:
		return Bytes(append([]byte(nil), t.Val...))
	}

	n := int(t.Count)
	vals := make(Tuple, 0, n)
	for i := 0; i < n; i++ {
		v, err := element(t, i)
		if err != nil {
			return Bytes(append([]byte(nil), t.Val...))
		}
		vals = append(vals, v)
	}
	if n == 1 {
		return vals[0]
	}
	return vals
}

func element(t *tiff.Tag, i int) (Value, error) {
	switch t.Format() {
	case tiff.IntVal:
		v, err := t.Int64(i)
		return Int(v), err
	case tiff.RatVal:
		num, den, err := t.Rat2(i)
		return Rational{Num: num, Den: den}, err
	case tiff.FloatVal:
		v, err := t.Float(i)
		return Float(v), err
	}
	return nil, fmt.Errorf("unsupported tiff type %d", t.Type)
}
