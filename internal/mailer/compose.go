package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/noah-isme/unagency-contact/pkg/contactform"
)

const htmlBody = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #171717; border-bottom: 1px solid #262626; padding-bottom: 10px;">New Contact Form Submission</h2>
  <div style="margin-top: 20px;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Message:</strong></p>
    <div style="background: #f5f5f5; padding: 15px; border-left: 3px solid #171717; margin-top: 10px;">
      {{- range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end -}}
    </div>
  </div>
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e5e5; font-size: 12px; color: #737373;">
    <p>This email was sent from the contact form on {{.Site}}.</p>
  </div>
</div>
`

const textBody = `New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}

Message:
{{.Message}}

---
This email was sent from the contact form on {{.Site}}.
`

var (
	htmlTemplate = htmltemplate.Must(htmltemplate.New("contact.html").Parse(htmlBody))
	textTemplate = texttemplate.Must(texttemplate.New("contact.txt").Parse(textBody))
)

// Composer renders contact submissions into outbound messages.
type Composer struct {
	From string
	To   string
	Site string
}

type bodyData struct {
	Name    string
	Email   string
	Message string
	Lines   []string
	Site    string
}

// Compose builds the notification email for a submission. Values are escaped
// by the HTML template, so they need not be pre-cleaned for markup.
func (c Composer) Compose(s contactform.Submission) (Message, error) {
	site := c.Site
	if site == "" {
		site = "the website"
	}
	data := bodyData{
		Name:    s.Name,
		Email:   s.Email,
		Message: s.Message,
		Lines:   strings.Split(strings.ReplaceAll(s.Message, "\r\n", "\n"), "\n"),
		Site:    site,
	}

	var html bytes.Buffer
	if err := htmlTemplate.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}

	var text bytes.Buffer
	if err := textTemplate.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}

	return Message{
		From:    c.From,
		To:      c.To,
		ReplyTo: s.Email,
		Subject: Subject(s.Name),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

// Subject returns the notification subject line for a sender name.
func Subject(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return "New Inquiry from " + name
}
