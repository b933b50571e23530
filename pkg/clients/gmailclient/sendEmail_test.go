package gmailclient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage_PlainText(t *testing.T) {
	raw, err := buildMessage(Email{
		To:      []string{"pmo@example.com"},
		Subject: "Priorização",
		Text:    "corpo",
	}, "b1")
	require.NoError(t, err)

	msg := string(raw)
	assert.Contains(t, msg, "To: pmo@example.com\r\n")
	assert.Contains(t, msg, "Subject: =?utf-8?q?Prioriza=C3=A7=C3=A3o?=\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\ncorpo"))
	assert.NotContains(t, msg, "From:")
}

func TestBuildMessage_Alternative(t *testing.T) {
	raw, err := buildMessage(Email{
		From:    "tool@example.com",
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Report",
		Text:    "plain",
		HTML:    "<p>html</p>",
	}, "b1")
	require.NoError(t, err)

	msg := string(raw)
	assert.Contains(t, msg, "From: tool@example.com\r\n")
	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, msg, `multipart/alternative; boundary="b1"`)
	assert.Less(t, strings.Index(msg, "plain"), strings.Index(msg, "<p>html</p>"))
	assert.True(t, strings.HasSuffix(msg, "--b1--\r\n"))
}

func TestBuildMessage_NoRecipients(t *testing.T) {
	_, err := buildMessage(Email{Subject: "x"}, "b1")
	assert.Error(t, err)
}
