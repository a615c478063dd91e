package report

import (
	"bytes"
	"testing"

	"github.com/jaroslavdusek1/metasnap/internal/exif"
)

func TestExportText(t *testing.T) {
	md := &exif.Metadata{}
	md.Set(exif.Entry{Tag: 0x010F, Name: "Make", Value: exif.String("TestCam")})
	md.Set(exif.Entry{Tag: 0x9999, Value: exif.Int(42)})
	md.Set(exif.Entry{Tag: 0x011A, Name: "XResolution", Value: exif.Rational{Num: 72, Den: 1}})

	got := ExportText(md)
	want := "Make: TestCam\n39321: 42\nXResolution: 72.0"
	if got != want {
		t.Errorf("ExportText() = %q, want %q", got, want)
	}
}

func TestWrite(t *testing.T) {
	md := &exif.Metadata{}
	md.Set(exif.Entry{Tag: 0x010F, Name: "Make", Value: exif.String("TestCam")})

	var buf bytes.Buffer
	if err := Write(&buf, &buf, md); err != nil {
		t.Fatal(err)
	}
	want := "[-] Displaying EXIF metadata...\n[-] EXIF Metadata:\nMake: TestCam\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteEmpty(t *testing.T) {
	var out, progress bytes.Buffer
	if err := Write(&out, &progress, &exif.Metadata{}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "[-] No EXIF metadata to display.\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if progress.String() != "[-] Displaying EXIF metadata...\n" {
		t.Errorf("unexpected progress %q", progress.String())
	}
}
