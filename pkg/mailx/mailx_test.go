package mailx

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRenderHTMLEscapesFields(t *testing.T) {
	html, err := RenderHTML(Message{Name: "<Ada>", Body: WelcomeBody})
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if !strings.Contains(html, "Hello &lt;Ada&gt;,") {
		t.Fatalf("RenderHTML() did not escape name: %s", html)
	}
	if !strings.Contains(html, "Thank you for registering.") {
		t.Fatalf("RenderHTML() missing body: %s", html)
	}
}

func TestRenderHTMLDefaultsName(t *testing.T) {
	html, _ := RenderHTML(Message{Body: "x"})
	if !strings.Contains(html, "Hello there,") {
		t.Fatalf("RenderHTML() = %s", html)
	}
}

func TestWelcomeMessage(t *testing.T) {
	msg := WelcomeMessage("a@x.com", "Ada")
	if msg.Subject != "Welcome to Our Platform!" || msg.To != "a@x.com" || msg.Body != WelcomeBody {
		t.Fatalf("WelcomeMessage() = %+v", msg)
	}
}

func TestSMTPMailerSend(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "jobs@example.com", FromName: "Job Board"})
	m.now = func() time.Time { return time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC) }

	var gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(_ context.Context, from string, to []string, msg []byte) error {
		gotFrom, gotTo, gotMsg = from, to, msg
		return nil
	}

	if err := m.Send(context.Background(), WelcomeMessage("a@x.com", "Ada")); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotFrom != "jobs@example.com" || len(gotTo) != 1 || gotTo[0] != "a@x.com" {
		t.Fatalf("send(%q, %v)", gotFrom, gotTo)
	}

	raw := string(gotMsg)
	for _, want := range []string{"Subject: Welcome to Our Platform!", "text/html", "Hello Ada,"} {
		if !strings.Contains(raw, want) {
			t.Fatalf("message missing %q:\n%s", want, raw)
		}
	}
}

func TestSMTPMailerSendErrors(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587})
	m.send = func(context.Context, string, []string, []byte) error { return errors.New("535 auth failed") }

	if err := m.Send(context.Background(), Message{}); err == nil {
		t.Fatalf("Send(no recipient) error = nil")
	}
	if err := m.Send(context.Background(), WelcomeMessage("a@x.com", "")); err == nil {
		t.Fatalf("Send() error = nil, want server failure")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Send(ctx, WelcomeMessage("a@x.com", "")); !errors.Is(err, context.Canceled) {
		t.Fatalf("Send(canceled) error = %v", err)
	}
}
