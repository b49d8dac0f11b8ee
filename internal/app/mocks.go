package app

import "github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/email"

// NopEmailProvider discards all outgoing mail. Used in tests and when
// SMTP is not configured.
type NopEmailProvider struct{}

func (m *NopEmailProvider) Send(e *email.Email) error { return nil }
func (m *NopEmailProvider) SendWithTemplate(templateName string, data email.TemplateData, e *email.Email) error {
	return nil
}
func (m *NopEmailProvider) SendVerification(to string, token string) error { return nil }
func (m *NopEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	return nil
}
func (m *NopEmailProvider) Validate() error { return nil }
func (m *NopEmailProvider) Close() error    { return nil }
