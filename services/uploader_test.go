package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://res.cloudinary.com/demo/image/upload/v1712/guest-documents/abc.jpg": "guest-documents/abc",
		"https://res.cloudinary.com/demo/image/upload/guest-documents/passport.pdf":  "guest-documents/passport",
		"https://res.cloudinary.com/demo/raw/upload/v9/vouchers/v2/scan":             "vouchers/v2/scan",
	}
	for in, want := range cases {
		got, err := publicIDFromURL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := publicIDFromURL("https://example.com/files/abc.jpg")
	assert.Error(t, err)
}
