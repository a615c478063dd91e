// Package exif turns the raw EXIF directory of a decoded image into an
// ordered mapping of human-readable tag names to values.
package exif

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/jaroslavdusek1/metasnap/internal/exif/tags"
)

// Entry is one resolved tag. Name is empty when the tag is not in the table.
type Entry struct {
	Tag   uint16
	Name  string
	Value Value
}

// Key is the tag name, or the decimal tag ID for unknown tags.
func (e Entry) Key() string {
	if e.Name != "" {
		return e.Name
	}
	return strconv.Itoa(int(e.Tag))
}

// Metadata is an insertion-ordered mapping of keys to entries.
type Metadata struct {
	entries []Entry
	index   map[string]int
}

// Set inserts e, or replaces the value under an existing key in place.
func (m *Metadata) Set(e Entry) {
	if m.index == nil {
		m.index = map[string]int{}
	}
	key := e.Key()
	if i, ok := m.index[key]; ok {
		m.entries[i] = e
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, e)
}

// Get returns the entry stored under key.
func (m *Metadata) Get(key string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// Len reports the number of entries.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns the entries in insertion order.
func (m *Metadata) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Result is the outcome of Extract. Supported is false when the image has no
// EXIF accessor or the accessor found nothing.
type Result struct {
	Metadata  *Metadata
	Supported bool
}

// Extract resolves the raw EXIF directory of img. img only needs to implement
// Source when its format can carry EXIF.
func Extract(ctx context.Context, img any) Result {
	md := &Metadata{}

	src, ok := img.(Source)
	if !ok {
		return Result{Metadata: md}
	}
	raw, ok := src.RawExif()
	if !ok {
		return Result{Metadata: md}
	}

	for _, f := range raw {
		name, _ := tags.Name(f.ID)
		if gps, ok := f.Value.(Directory); ok && f.ID == tags.GPSIFD {
			logGPS(ctx, gps)
		}
		md.Set(Entry{Tag: f.ID, Name: name, Value: f.Value})
	}

	zerolog.Ctx(ctx).Debug().Int("entries", md.Len()).Msg("exif extracted")
	return Result{Metadata: md, Supported: true}
}

// logGPS records which GPS fields are being passed through unexpanded.
func logGPS(ctx context.Context, gps Directory) {
	names := make([]string, 0, len(gps))
	for _, f := range gps {
		if name, ok := tags.GPSName(f.ID); ok {
			names = append(names, name)
		} else {
			names = append(names, strconv.Itoa(int(f.ID)))
		}
	}
	zerolog.Ctx(ctx).Debug().Strs("gps_fields", names).Msg("gps sub-ifd kept as a nested value")
}
