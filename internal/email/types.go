package email

// Attachment is a file attached to an outgoing message.
type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

// Email is one outgoing message.
type Email struct {
	From        string
	To          []string
	Cc          []string
	Bcc         []string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}

// TemplateData feeds the HTML templates.
type TemplateData map[string]interface{}
