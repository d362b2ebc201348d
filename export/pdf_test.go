package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTextReport(t *testing.T) {
	body := "Expiry Summary for profile: Self (Today: 2024-06-01)\n\nPassport: expires on 2030-01-01 (2040 days left) - status: OK, reminder at 30 days before."

	pdfBytes, err := RenderTextReport("Profile summary: Self", body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")), "Output should start with the PDF magic bytes")
	assert.Greater(t, len(pdfBytes), 500, "A rendered page should not be trivially small")
}

func TestRenderTextReport_EmptyBody(t *testing.T) {
	pdfBytes, err := RenderTextReport("Empty report", "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))
}

func TestAsciiSafe(t *testing.T) {
	assert.Equal(t, "plain text 123", asciiSafe("plain text 123"))
	assert.Equal(t, "Jos?", asciiSafe("José"))
	assert.Equal(t, "a?b", asciiSafe("a\tb"))
}
