package email

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulloo/relivator/internal/config"
)

func previewClient(t *testing.T) *Client {
	t.Helper()

	logger := zerolog.Nop()
	return NewClient(&config.Config{}, &logger)
}

func TestRenderBoardInvite(t *testing.T) {
	c := previewClient(t)

	html, err := c.render(TemplateBoardInvite, map[string]string{
		"InviterName": "Ada",
		"BoardTitle":  "Q3 Roadmap",
		"BoardURL":    "https://app.relivator.dev/boards/abc",
	})

	require.NoError(t, err)
	assert.Contains(t, html, "Ada")
	assert.Contains(t, html, "Q3 Roadmap")
	assert.Contains(t, html, "https://app.relivator.dev/boards/abc")
}

func TestRenderEscapesHTML(t *testing.T) {
	c := previewClient(t)

	html, err := c.render(TemplateBoardInvite, map[string]string{
		"InviterName": "<script>alert(1)</script>",
		"BoardTitle":  "Board",
		"BoardURL":    "https://app.relivator.dev/boards/abc",
	})

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	c := previewClient(t)

	_, err := c.render(Template("does_not_exist"), nil)
	assert.Error(t, err)
}

func TestSendBoardInvitePreviewMode(t *testing.T) {
	// No API key configured: rendering happens, nothing is sent, no error.
	c := previewClient(t)

	err := c.SendBoardInvite("friend@example.com", "Ada", "Q3 Roadmap", "https://app.relivator.dev/boards/abc")
	assert.NoError(t, err)
}
