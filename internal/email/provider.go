package email

// Provider sends outgoing mail.
type Provider interface {
	// Send delivers a fully built message.
	Send(email *Email) error

	// SendWithTemplate renders the template into the message body and
	// sends it.
	SendWithTemplate(templateName string, data TemplateData, email *Email) error

	// SendVerification sends the account verification message.
	SendVerification(email string, token string) error

	// SendTemplate is the convenience form used by services.
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate checks the provider configuration.
	Validate() error

	// Close releases any held connections.
	Close() error
}

// TemplateRenderer renders named HTML templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}
