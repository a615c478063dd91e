// Package testutil builds small in-memory image fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	xtiff "golang.org/x/image/tiff"
)

// TIFF data types.
const (
	typeByte      = 1
	typeASCII     = 2
	typeShort     = 3
	typeLong      = 4
	typeRational  = 5
	typeUndefined = 7
)

const (
	tagExifIFD = 0x8769
	tagGPSIFD  = 0x8825
)

// Tag is one IFD entry. Data holds the big-endian encoded value.
type Tag struct {
	ID    uint16
	Type  uint16
	Count uint32
	Data  []byte
}

// ASCII returns a NUL-terminated string tag.
func ASCII(id uint16, s string) Tag {
	data := append([]byte(s), 0)
	return Tag{ID: id, Type: typeASCII, Count: uint32(len(data)), Data: data}
}

// Short returns a SHORT tag holding vs.
func Short(id uint16, vs ...uint16) Tag {
	data := make([]byte, 2*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint16(data[2*i:], v)
	}
	return Tag{ID: id, Type: typeShort, Count: uint32(len(vs)), Data: data}
}

// Long returns a LONG tag holding vs.
func Long(id uint16, vs ...uint32) Tag {
	data := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.BigEndian.PutUint32(data[4*i:], v)
	}
	return Tag{ID: id, Type: typeLong, Count: uint32(len(vs)), Data: data}
}

// Rational returns a RATIONAL tag from num/den pairs.
func Rational(id uint16, pairs ...uint32) Tag {
	data := make([]byte, 4*len(pairs))
	for i, v := range pairs {
		binary.BigEndian.PutUint32(data[4*i:], v)
	}
	return Tag{ID: id, Type: typeRational, Count: uint32(len(pairs) / 2), Data: data}
}

// Bytes returns a BYTE tag.
func Bytes(id uint16, b ...byte) Tag {
	return Tag{ID: id, Type: typeByte, Count: uint32(len(b)), Data: b}
}

// Undefined returns an UNDEFINED tag.
func Undefined(id uint16, b []byte) Tag {
	return Tag{ID: id, Type: typeUndefined, Count: uint32(len(b)), Data: b}
}

// TIFF builds a big-endian TIFF structure. Non-empty exifTags and gpsTags
// are written as sub-IFDs referenced from IFD0 by pointer tags.
func TIFF(ifd0, exifTags, gpsTags []Tag) []byte {
	tags := append([]Tag(nil), ifd0...)
	if len(exifTags) > 0 {
		tags = append(tags, Long(tagExifIFD, 0))
	}
	if len(gpsTags) > 0 {
		tags = append(tags, Long(tagGPSIFD, 0))
	}

	ifd0Off := uint32(8)
	exifOff := ifd0Off + ifdLen(tags)
	gpsOff := exifOff
	if len(exifTags) > 0 {
		gpsOff += ifdLen(exifTags)
	}
	for i := range tags {
		switch {
		case tags[i].ID == tagExifIFD && len(exifTags) > 0:
			tags[i] = Long(tagExifIFD, exifOff)
		case tags[i].ID == tagGPSIFD && len(gpsTags) > 0:
			tags[i] = Long(tagGPSIFD, gpsOff)
		}
	}

	buf := &bytes.Buffer{}
	buf.WriteString("MM")
	binary.Write(buf, binary.BigEndian, uint16(42))
	binary.Write(buf, binary.BigEndian, ifd0Off)
	writeIFD(buf, tags, ifd0Off)
	if len(exifTags) > 0 {
		writeIFD(buf, exifTags, exifOff)
	}
	if len(gpsTags) > 0 {
		writeIFD(buf, gpsTags, gpsOff)
	}
	return buf.Bytes()
}

// ifdLen is the size of an IFD plus its out-of-line value area.
func ifdLen(tags []Tag) uint32 {
	n := uint32(2 + 12*len(tags) + 4)
	for _, t := range tags {
		if len(t.Data) > 4 {
			n += padded(len(t.Data))
		}
	}
	return n
}

func padded(n int) uint32 {
	return uint32(n + n%2)
}

func writeIFD(buf *bytes.Buffer, tags []Tag, off uint32) {
	dataOff := off + uint32(2+12*len(tags)+4)
	var data []byte

	binary.Write(buf, binary.BigEndian, uint16(len(tags)))
	for _, t := range tags {
		binary.Write(buf, binary.BigEndian, t.ID)
		binary.Write(buf, binary.BigEndian, t.Type)
		binary.Write(buf, binary.BigEndian, t.Count)
		if len(t.Data) <= 4 {
			field := make([]byte, 4)
			copy(field, t.Data)
			buf.Write(field)
			continue
		}
		binary.Write(buf, binary.BigEndian, dataOff+uint32(len(data)))
		data = append(data, t.Data...)
		if len(t.Data)%2 == 1 {
			data = append(data, 0)
		}
	}
	binary.Write(buf, binary.BigEndian, uint32(0))
	buf.Write(data)
}

// JPEG encodes a small image and, when app1 is not nil, inserts it as an
// APP1 segment right after the SOI marker.
func JPEG(t testing.TB, app1 []byte) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, sample(), nil); err != nil {
		t.Fatalf("encoding jpeg fixture: %v", err)
	}
	b := buf.Bytes()
	if app1 == nil {
		return b
	}
	return InsertAPP1(b, app1)
}

// InsertAPP1 returns a copy of the JPEG stream b with an APP1 segment holding
// payload placed right after the SOI marker, ahead of any existing segments.
func InsertAPP1(b, payload []byte) []byte {
	out := make([]byte, 0, len(b)+len(payload)+4)
	out = append(out, b[:2]...)
	out = append(out, 0xFF, 0xE1)
	out = binary.BigEndian.AppendUint16(out, uint16(len(payload)+2))
	out = append(out, payload...)
	out = append(out, b[2:]...)
	return out
}

// XMP is a minimal XMP packet as found in APP1 segments.
func XMP() []byte {
	return []byte("http://ns.adobe.com/xap/1.0/\x00<x:xmpmeta xmlns:x=\"adobe:ns:meta/\"></x:xmpmeta>")
}

// ExifJPEG wraps a TIFF structure in an Exif APP1 segment.
func ExifJPEG(t testing.TB, tiff []byte) []byte {
	t.Helper()
	return JPEG(t, append([]byte("Exif\x00\x00"), tiff...))
}

// TIFFImage encodes a small 4x4 image as a TIFF file.
func TIFFImage(t testing.TB) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := xtiff.Encode(buf, img, nil); err != nil {
		t.Fatalf("encoding tiff fixture: %v", err)
	}
	return buf.Bytes()
}

// PNG encodes a small PNG image.
func PNG(t testing.TB) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, sample()); err != nil {
		t.Fatalf("encoding png fixture: %v", err)
	}
	return buf.Bytes()
}

func sample() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 0x80, A: 0xff})
		}
	}
	return img
}
