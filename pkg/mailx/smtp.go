package mailx

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// SMTPConfig holds the credentials of the sending account
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Password string
	FromName string
}

// SMTPMailer sends HTML mail through an authenticated SMTP server
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(ctx context.Context, from string, to []string, msg []byte) error
	now  func() time.Time
}

var _ Mailer = (*SMTPMailer)(nil)

// implicitTLSPort is the submission port that expects TLS from the first byte
const implicitTLSPort = 465

// NewSMTPMailer creates a mailer for cfg
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	m := &SMTPMailer{
		cfg: cfg,
		now: time.Now,
	}
	m.send = m.deliver
	return m
}

// Send renders msg and hands it to the SMTP server.
// Cancelling ctx aborts the dial and any exchange in progress.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("mail has no recipient")
	}

	raw, err := m.compose(msg)
	if err != nil {
		return err
	}

	if err := m.send(ctx, m.cfg.From, []string{msg.To}, raw); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// deliver runs one SMTP session: dial, optional STARTTLS, PLAIN auth, MAIL/RCPT/DATA, QUIT
func (m *SMTPMailer) deliver(ctx context.Context, from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	var (
		dialer net.Dialer
		conn   net.Conn
		err    error
	)
	if m.cfg.Port == implicitTLSPort {
		conn, err = (&tls.Dialer{NetDialer: &dialer, Config: tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	// closing the connection unblocks a session stuck on a slow server
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := m.session(c, tlsConfig, from, to, msg); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", ctxErr, err)
		}
		return err
	}
	return nil
}

func (m *SMTPMailer) session(c *smtp.Client, tlsConfig *tls.Config, from string, to []string, msg []byte) error {
	if m.cfg.Port != implicitTLSPort {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}
	if m.cfg.Password != "" {
		if err := c.Auth(sasl.NewPlainClient("", m.cfg.From, m.cfg.Password)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}
	if err := c.SendMail(from, to, bytes.NewReader(msg)); err != nil {
		return err
	}
	return c.Quit()
}

// compose builds the MIME message
func (m *SMTPMailer) compose(msg Message) ([]byte, error) {
	body, err := RenderHTML(msg)
	if err != nil {
		return nil, err
	}

	var h mail.Header
	h.SetDate(m.now())
	h.SetAddressList("From", []*mail.Address{{Name: m.cfg.FromName, Address: m.cfg.From}})
	h.SetAddressList("To", []*mail.Address{{Name: msg.Name, Address: msg.To}})
	h.SetSubject(msg.Subject)
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create mail writer: %w", err)
	}
	if _, err := io.WriteString(w, body); err != nil {
		return nil, fmt.Errorf("write mail body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close mail writer: %w", err)
	}
	return buf.Bytes(), nil
}
