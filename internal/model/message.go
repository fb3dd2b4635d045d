package model

import "time"

// NoSubject is displayed when a message carries no subject line.
const NoSubject = "(No Subject)"

// MessageSummary is the list-view representation of a remote message.
// It is rebuilt on every poll and never persisted.
type MessageSummary struct {
	// ID is the remote message identifier used to fetch the detail.
	ID string `json:"id"`

	// SenderAddress is the bare address of the From header.
	SenderAddress string `json:"sender_address"`

	// Subject defaults to NoSubject when the API omits it.
	Subject string `json:"subject"`

	// ReceivedAt is the remote createdAt timestamp.
	ReceivedAt time.Time `json:"received_at"`

	// Seen mirrors the remote seen flag.
	Seen bool `json:"seen"`
}

// MessageDetail is the full-body representation shown in the detail view.
type MessageDetail struct {
	ID            string    `json:"id"`
	Subject       string    `json:"subject"`
	SenderAddress string    `json:"sender_address"`
	ReceivedAt    time.Time `json:"received_at"`

	// BodyContent is the first HTML body when present, otherwise the
	// plain-text intro snippet.
	BodyContent string `json:"body_content"`

	// IsHTML reports whether BodyContent came from the HTML body.
	IsHTML bool `json:"is_html"`
}

// Header is a single raw message header field.
type Header struct {
	Key   string
	Value string
}

// Attachment holds metadata about a message attachment.
type Attachment struct {
	Filename string
	Size     int64
	MIMEType string
}

// RawMessage is the parsed RFC 5322 source of a message.
type RawMessage struct {
	ID          string
	Headers     []Header
	TextBody    string
	HTMLBody    string
	Attachments []Attachment

	// Size is the length of the raw source in bytes.
	Size int
}
