package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	raw := string(encode("news@example.com", Message{
		To:      "reader@example.com",
		Subject: "New Article: Hello",
		Body:    "<p>hi</p>",
	}))

	assert.True(t, strings.HasPrefix(raw, "From: news@example.com\r\nTo: reader@example.com\r\nSubject: New Article: Hello\r\n"))
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8\r\n\r\n<p>hi</p>")
}

func TestEncodeExtraHeaders(t *testing.T) {
	t.Parallel()

	raw := string(encode("news@example.com", Message{
		To:      "reader@example.com",
		Subject: "Digest",
		Body:    "<p>hi</p>",
		Headers: map[string]string{
			"List-Unsubscribe": "<https://news.example.com/unsubscribe?token=abc>",
			"Auto-Submitted":   "auto-generated",
		},
	}))

	// Extra headers land between Subject and the MIME block, sorted.
	assert.Contains(t, raw, "Subject: Digest\r\nAuto-Submitted: auto-generated\r\nList-Unsubscribe: <https://news.example.com/unsubscribe?token=abc>\r\nMIME-Version: 1.0\r\n")
}
