package inbox

import (
	"fmt"
	"io"
	"strings"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"

	"github.com/nhle/tempinbox/internal/model"
)

// ParseRaw parses a raw RFC 5322 message using go-message and extracts
// its headers, text/plain and text/html bodies, and attachment metadata.
func ParseRaw(id, raw string) (model.RawMessage, error) {
	msg := model.RawMessage{ID: id, Size: len(raw)}

	// An unknown charset still yields a usable reader.
	mr, err := mail.CreateReader(strings.NewReader(raw))
	if mr == nil {
		return msg, fmt.Errorf("parsing message source: %w", err)
	}
	defer mr.Close()

	fields := mr.Header.Fields()
	for fields.Next() {
		msg.Headers = append(msg.Headers, model.Header{
			Key:   fields.Key(),
			Value: fields.Value(),
		})
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return msg, fmt.Errorf("reading message part: %w", err)
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			body, readErr := io.ReadAll(part.Body)
			if readErr != nil {
				continue
			}

			switch {
			case strings.HasPrefix(contentType, "text/html"):
				if msg.HTMLBody == "" {
					msg.HTMLBody = string(body)
				}
			case contentType == "" || strings.HasPrefix(contentType, "text/plain"):
				if msg.TextBody == "" {
					msg.TextBody = string(body)
				}
			}

		case *mail.AttachmentHeader:
			filename, _ := h.Filename()
			contentType, _, _ := h.ContentType()

			n, copyErr := io.Copy(io.Discard, part.Body)
			if copyErr != nil {
				continue
			}

			msg.Attachments = append(msg.Attachments, model.Attachment{
				Filename: filename,
				Size:     n,
				MIMEType: contentType,
			})
		}
	}

	return msg, nil
}
