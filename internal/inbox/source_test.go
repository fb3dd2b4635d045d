package inbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multipartRaw = "From: Sender <sender@x.test>\r\n" +
	"To: abcdefghij@example.com\r\n" +
	"Subject: Multipart\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/mixed; boundary=outer\r\n" +
	"\r\n" +
	"--outer\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Hello text\r\n" +
	"--outer\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>Hello html</p>\r\n" +
	"--outer\r\n" +
	"Content-Type: application/pdf\r\n" +
	"Content-Disposition: attachment; filename=\"doc.pdf\"\r\n" +
	"\r\n" +
	"PDFDATA\r\n" +
	"--outer--\r\n"

func TestParseRaw_Multipart(t *testing.T) {
	raw, err := ParseRaw("m1", multipartRaw)
	require.NoError(t, err)

	assert.Equal(t, len(multipartRaw), raw.Size)
	assert.Equal(t, "Hello text", strings.TrimSpace(raw.TextBody))
	assert.Equal(t, "<p>Hello html</p>", strings.TrimSpace(raw.HTMLBody))

	require.Len(t, raw.Attachments, 1)
	assert.Equal(t, "doc.pdf", raw.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", raw.Attachments[0].MIMEType)
	assert.Positive(t, raw.Attachments[0].Size)

	keys := make([]string, 0, len(raw.Headers))
	for _, h := range raw.Headers {
		keys = append(keys, h.Key)
	}
	assert.Contains(t, keys, "Subject")
	assert.Contains(t, keys, "From")
}

func TestParseRaw_PlainWithoutContentType(t *testing.T) {
	raw, err := ParseRaw("m2", "Subject: bare\r\n\r\njust text\r\n")
	require.NoError(t, err)
	assert.Contains(t, raw.TextBody, "just text")
	assert.Empty(t, raw.HTMLBody)
}
