package notify

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Templates holds the rendered message shapes for the two publish
// channels. Operators can override them with a YAML file; the defaults
// match the product copy.
type Templates struct {
	Email struct {
		Subject string `yaml:"subject"`
		Body    string `yaml:"body"`
	} `yaml:"email"`
	Social struct {
		Text string `yaml:"text"`
	} `yaml:"social"`
}

// TemplateData is what the templates can reference. UnsubscribeLink is
// per recipient and may be empty.
type TemplateData struct {
	TypeLabel       string // "Article" or "Newsletter"
	Title           string
	Author          string
	Link            string
	UnsubscribeLink string
}

const defaultTemplatesYAML = `
email:
  subject: "New {{.TypeLabel}}: {{.Title}}"
  body: |
    <p>A new {{.TypeLabel}} has been published.</p>
    <p><strong>{{.Title}}</strong><br>by {{.Author}}</p>
    <p><a href="{{.Link}}">Read it here</a></p>
    {{if .UnsubscribeLink}}<p><a href="{{.UnsubscribeLink}}">Unsubscribe</a></p>{{end}}
social:
  text: "New {{.TypeLabel}}: {{.Title}} by {{.Author}}"
`

// DefaultTemplates returns the built-in message templates.
func DefaultTemplates() *Templates {
	t := &Templates{}
	// The default YAML is a compile-time constant; a parse failure here
	// is a programming error.
	if err := yaml.Unmarshal([]byte(defaultTemplatesYAML), t); err != nil {
		panic(fmt.Sprintf("notify: invalid default templates: %v", err))
	}
	return t
}

// LoadTemplates reads a YAML template file, filling missing fields from
// the defaults. An empty path returns the defaults unchanged.
func LoadTemplates(path string) (*Templates, error) {
	t := DefaultTemplates()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notification templates: %w", err)
	}

	var override Templates
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse notification templates: %w", err)
	}

	if override.Email.Subject != "" {
		t.Email.Subject = override.Email.Subject
	}
	if override.Email.Body != "" {
		t.Email.Body = override.Email.Body
	}
	if override.Social.Text != "" {
		t.Social.Text = override.Social.Text
	}
	return t, nil
}

// RenderEmail renders the email subject and body for one publish event.
func (t *Templates) RenderEmail(data TemplateData) (subject, body string, err error) {
	subject, err = render("email.subject", t.Email.Subject, data)
	if err != nil {
		return "", "", err
	}
	body, err = render("email.body", t.Email.Body, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

// RenderSocial renders the social feed text for one publish event.
func (t *Templates) RenderSocial(data TemplateData) (string, error) {
	return render("social.text", t.Social.Text, data)
}

func render(name, tmpl string, data TemplateData) (string, error) {
	parsed, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
