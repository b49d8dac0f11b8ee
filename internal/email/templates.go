package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TemplateManager implements TemplateRenderer with an in-memory template
// registry. Built-in templates cover the transactional mail the platform
// sends; LoadTemplates can override them from disk.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		// Built-ins are compile-time constants, parse cannot fail.
		_ = tm.AddTemplate(name, body)
	}
	return tm
}

var builtinTemplates = map[string]string{
	"verification": `<html><body>
<h2>Welcome to EduMatch</h2>
<p>Confirm your email address by following the link below.</p>
<p><a href="{{.Link}}">Verify email</a></p>
</body></html>`,

	"application_received": `<html><body>
<h2>New application</h2>
<p>Your post <strong>{{.PostTitle}}</strong> has received a new application.</p>
<p>Application ID: {{.ApplicationID}}</p>
</body></html>`,

	"application_status_changed": `<html><body>
<h2>Application update</h2>
<p>The status of your application for <strong>{{.PostTitle}}</strong> changed to <strong>{{.Status}}</strong>.</p>
</body></html>`,
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}
		return nil
	})
}
