package metadata

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePdf assembles a minimal PDF with a classic cross-reference table.
func writePdf(t *testing.T, path string, objects []string) {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 4 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// TestReadPdf tests the information dictionary and outline mapping.
func TestReadPdf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dune.pdf")
	writePdf(t, path, []string{
		"<< /Type /Catalog /Pages 2 0 R /Outlines 5 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
		"<< /Title (Dune) /Author (Frank Herbert) /Subject (Desert planet) /CreationDate (D:19650801120000Z) /Producer (Test Suite) >>",
		"<< /Type /Outlines /First 6 0 R /Last 6 0 R /Count 1 >>",
		"<< /Title (Book One) /Parent 5 0 R >>",
	})

	md, err := ReadPdf(path)
	require.NoError(t, err)

	require.NotNil(t, md.Title)
	assert.Equal(t, "Dune", *md.Title)
	require.NotNil(t, md.Author)
	assert.Equal(t, "Frank Herbert", *md.Author)
	require.NotNil(t, md.Description)
	assert.Equal(t, "Desert planet", *md.Description)
	require.NotNil(t, md.PublishDate)
	assert.Equal(t, "1965-08-01", *md.PublishDate)
	assert.Nil(t, md.Publisher)
	assert.Equal(t, "Test Suite", md.Extras["producer"])
	assert.Equal(t, []string{"Book One"}, md.Chapters)
}

// TestExtract_NotAPdf tests that garbage input degrades to empty metadata.
func TestExtract_NotAPdf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	md, err := Extract(path, Pdf)
	assert.Error(t, err)
	assert.Equal(t, Empty(), md)
}

// TestPdfDate tests date truncation to the available precision.
func TestPdfDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"D:20230115093000+01'00'", "2023-01-15"},
		{"D:202301", "2023-01"},
		{"D:2023", "2023"},
		{"20230115", "2023-01-15"},
		{"sometime", "sometime"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, pdfDate(tt.input))
		})
	}
}
