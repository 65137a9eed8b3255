package notification

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SMTPMailer sends HTML mail over SMTP with PLAIN auth, using implicit TLS (port 465)
// or STARTTLS.
type SMTPMailer struct {
	cfg config.MailConfig
	now func() time.Time
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, now: time.Now}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	messageID := m.newMessageID()
	payload := m.buildMessage(msg, messageID)

	client, err := m.dial(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err = client.Auth(auth); err != nil {
			return "", err
		}
	}

	if err = client.Mail(m.cfg.From); err != nil {
		return "", err
	}
	if err = client.Rcpt(msg.To); err != nil {
		return "", err
	}

	w, err := client.Data()
	if err != nil {
		return "", err
	}
	if _, err = w.Write(payload); err != nil {
		return "", err
	}
	if err = w.Close(); err != nil {
		return "", err
	}

	// The message is accepted once DATA is closed; a failed QUIT does not undo that.
	if err = client.Quit(); err != nil {
		logrus.WithError(err).WithField("message_id", messageID).Warn("SMTP quit failed after message was accepted")
	}
	return messageID, nil
}

func (m *SMTPMailer) dial(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	dialer := &net.Dialer{Timeout: m.cfg.DialTimeout}
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if m.cfg.ImplicitTLS {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if !m.cfg.ImplicitTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err = client.StartTLS(tlsConfig); err != nil {
				client.Close()
				return nil, err
			}
		}
	}
	return client, nil
}

func (m *SMTPMailer) newMessageID() string {
	domain := "localhost"
	if at := strings.LastIndex(m.cfg.From, "@"); at >= 0 && at < len(m.cfg.From)-1 {
		domain = m.cfg.From[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}

func (m *SMTPMailer) buildMessage(msg Message, messageID string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "Message-ID: %s\r\n", messageID)
	fmt.Fprintf(&buf, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.HTMLBody)
	return buf.Bytes()
}
