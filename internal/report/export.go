package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jaroslavdusek1/metasnap/internal/exif"
)

// ExportText renders one "<key>: <value>" line per entry, in order.
func ExportText(md *exif.Metadata) string {
	lines := []string{}
	for _, e := range md.Entries() {
		lines = append(lines, e.Key()+": "+e.Value.String())
	}
	return strings.Join(lines, "\n")
}

// Write prints the metadata block, or the "no metadata" line when md is empty.
// progress receives the heading line and may be the same writer as out.
func Write(out, progress io.Writer, md *exif.Metadata) error {
	if _, err := fmt.Fprintln(progress, "[-] Displaying EXIF metadata..."); err != nil {
		return err
	}
	if md.Len() == 0 {
		_, err := fmt.Fprintln(out, "[-] No EXIF metadata to display.")
		return err
	}
	_, err := fmt.Fprintf(out, "[-] EXIF Metadata:\n%s\n", ExportText(md))
	return err
}
