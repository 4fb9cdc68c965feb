// Package email defines the outbound email model and the sender
// adapter contract.
package email

// ProviderName identifies an email delivery provider (e.g. "mailgun").
type ProviderName string

// OutboundEmail is a fully assembled send request.
type OutboundEmail struct {
	From        string
	To          []string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Attachment carries raw attachment bytes. Adapters apply whatever
// transfer encoding their wire format requires.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}
