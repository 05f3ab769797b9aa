// Package mailx renders and delivers transactional email.
package mailx

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// Message is a templated notification for one recipient
type Message struct {
	To      string `json:"to"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer delivers a message
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

const (
	WelcomeSubject = "Welcome to Our Platform!"
	WelcomeBody    = "Thank you for registering. We're excited to have you onboard!"
)

// WelcomeMessage is sent to applicants after they apply
func WelcomeMessage(to, name string) Message {
	return Message{
		To:      to,
		Name:    name,
		Subject: WelcomeSubject,
		Body:    WelcomeBody,
	}
}

var htmlTemplate = template.Must(template.New("mail").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.5;">
  <h2>Hello {{.Name}},</h2>
  <p>{{.Body}}</p>
  <p>Best regards,<br/>The Team</p>
</body>
</html>
`))

// RenderHTML renders the HTML body of a message. Fields are escaped.
func RenderHTML(msg Message) (string, error) {
	if msg.Name == "" {
		msg.Name = "there"
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, msg); err != nil {
		return "", fmt.Errorf("render mail template: %w", err)
	}
	return buf.String(), nil
}
