package exif

import (
	"strconv"
	"strings"
)

// Field is one raw tag of an image file directory.
type Field struct {
	ID    uint16
	Value Value
}

// Directory is a raw tag-ID-to-value mapping in file order. It is also a
// Value, which is how the GPS sub-directory travels as a single opaque value.
type Directory []Field

// Lookup returns the value stored under id.
func (d Directory) Lookup(id uint16) (Value, bool) {
	for _, f := range d {
		if f.ID == id {
			return f.Value, true
		}
	}
	return nil, false
}

// set replaces the value of an existing id in place or appends a new field.
func (d *Directory) set(id uint16, v Value) {
	for i := range *d {
		if (*d)[i].ID == id {
			(*d)[i].Value = v
			return
		}
	}
	*d = append(*d, Field{ID: id, Value: v})
}

func (d Directory) String() string {
	parts := make([]string, len(d))
	for i, f := range d {
		parts[i] = strconv.Itoa(int(f.ID)) + ": " + f.Value.repr()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (d Directory) repr() string { return d.String() }

// Source is implemented by decoded images whose container can carry EXIF.
// RawExif reports false when the image has no readable EXIF block.
type Source interface {
	RawExif() (Directory, bool)
}
