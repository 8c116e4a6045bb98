package model

import (
	"bytes"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
)

// EventConfig holds the wedding event wording used in outbound messages.
// Templates may reference {{.Name}} (member name), {{.Couple}} and
// {{.Station}}.
type EventConfig struct {
	Couple       string `yaml:"couple"`
	Station      string `yaml:"station"`
	MessageText  string `yaml:"message_text"`
	EmailSubject string `yaml:"email_subject"`
	EmailText    string `yaml:"email_text"`
	EmailHTML    string `yaml:"email_html"`
}

// DefaultEventConfig returns the built-in wording used when no event
// configuration file is provided
func DefaultEventConfig() *EventConfig {
	return &EventConfig{
		Couple:       "the happy couple",
		Station:      "the photo station",
		MessageText:  "Hi {{.Name}}! Time for your group photo with {{.Couple}}! Please head to {{.Station}} now.",
		EmailSubject: "Time for Your Group Photo!",
		EmailText:    "Hi {{.Name}}!\n\nIt's time for your group photo with {{.Couple}}!\n\nPlease head to {{.Station}} now.\n\nThank you!\n- Wedding Planning Team",
		EmailHTML: `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Time for Your Group Photo!</h2>
  <p>Hi {{.Name}}!</p>
  <p>It's time for your group photo with <strong>{{.Couple}}</strong>!</p>
  <p><strong>Please head to {{.Station}} now.</strong></p>
  <p>Thank you!<br>- Wedding Planning Team</p>
</div>`,
	}
}

// Validate checks that every template parses and required fields are set
func (c *EventConfig) Validate() error {
	if c.MessageText == "" {
		return goerr.New("message_text is required")
	}
	if c.EmailSubject == "" {
		return goerr.New("email_subject is required")
	}
	for name, text := range map[string]string{
		"message_text":  c.MessageText,
		"email_subject": c.EmailSubject,
		"email_text":    c.EmailText,
		"email_html":    c.EmailHTML,
	} {
		if _, err := template.New(name).Parse(text); err != nil {
			return goerr.Wrap(err, "invalid template", goerr.V("template", name))
		}
	}
	return nil
}

type templateVars struct {
	Name    string
	Couple  string
	Station string
}

// Render expands one of the config's templates for a member name
func (c *EventConfig) Render(tmpl, memberName string) (string, error) {
	t, err := template.New("message").Parse(tmpl)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse message template")
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, templateVars{
		Name:    memberName,
		Couple:  c.Couple,
		Station: c.Station,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render message template")
	}
	return buf.String(), nil
}
