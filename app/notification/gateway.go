package notification

import (
	"bytes"
	"context"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	verificationSubject  = "Verify your Skillbase email"
	passwordResetSubject = "Reset your Skillbase password"
)

type Recipient struct {
	Email string
	Name  string
}

type templateData struct {
	Name string
	Link string
}

// Gateway renders account emails and hands them to a Mailer.
type Gateway struct {
	mailer    Mailer
	templates *template.Template
}

func NewGateway(mailer Mailer) (*Gateway, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Gateway{mailer: mailer, templates: templates}, nil
}

func (g *Gateway) SendVerificationEmail(ctx context.Context, to Recipient, link string) error {
	return g.send(ctx, to, verificationSubject, "verify_email.html", link)
}

func (g *Gateway) SendPasswordResetEmail(ctx context.Context, to Recipient, link string) error {
	return g.send(ctx, to, passwordResetSubject, "reset_password.html", link)
}

func (g *Gateway) send(ctx context.Context, to Recipient, subject, name, link string) error {
	var body bytes.Buffer
	if err := g.templates.ExecuteTemplate(&body, name, templateData{Name: to.Name, Link: link}); err != nil {
		return err
	}

	messageID, err := g.mailer.Send(ctx, Message{To: to.Email, Subject: subject, HTMLBody: body.String()})
	if err != nil {
		return err
	}
	if messageID == "" {
		return ErrNoMessageID
	}
	return nil
}
