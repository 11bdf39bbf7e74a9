package mail

import (
	"bytes"
	"embed"
	"fmt"
	"net/smtp"
	"text/template"
)

// Templates ship inside the binary so sending works regardless of the
// process working directory.
//
//go:embed templates/*.html
var templateFS embed.FS

type Mailer struct {
	FromName string
	From     string
	Password string
	Host     string
	Port     string
	auth     smtp.Auth
}

func NewMail(from, fromName, password, host, port string) *Mailer {
	auth := smtp.PlainAuth("", from, password, host)
	return &Mailer{
		FromName: fromName,
		From:     from,
		Password: password,
		Host:     host,
		Port:     port,
		auth:     auth,
	}
}

// render builds the full message (headers plus the rendered template body).
func (m *Mailer) render(to, subject, templateName string, data interface{}) ([]byte, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	body.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.FromName, m.From))
	body.WriteString(fmt.Sprintf("To: %s\r\n", to))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n\r\n", subject))

	if err := tmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return body.Bytes(), nil
}

// SendHTML renders the named embedded template and sends it to a single
// recipient.
func (m *Mailer) SendHTML(to, subject, templateName string, data interface{}) error {
	msg, err := m.render(to, subject, templateName, data)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	if err := smtp.SendMail(addr, m.auth, m.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}
