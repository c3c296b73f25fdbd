package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURL(t *testing.T) {
	d, err := ParseDataURL("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", d.MimeType)
	assert.Equal(t, []byte("hello"), d.Data)

	assert.Equal(t, "data:image/png;base64,aGVsbG8=", d.String())
}

func TestParseDataURLErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"https://example.com/a.png",
		"data:;base64,aGVsbG8=",
		"data:image/png,hello",
		"data:image/png;base64,!!!",
	} {
		_, err := ParseDataURL(s)
		assert.Error(t, err, "input %q", s)
	}
}
