package services_test

import (
	"testing"

	"github.com/adampresley/albumshare/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareEmailBody(t *testing.T) {
	body, err := services.ShareEmailBody(map[string]any{
		"link":      "https://gallery.example.com/?id=abcd1234",
		"numPhotos": 3,
		"toName":    "Jane <script>",
		"fromName":  "Studio",
	})

	require.NoError(t, err)
	assert.Contains(t, body, `href="https://gallery.example.com/?id=abcd1234"`)
	assert.Contains(t, body, "There are 3 photos")
	assert.Contains(t, body, "Jane &lt;script&gt;")
	assert.NotContains(t, body, "<script>")
}
