package mailer

import (
	"io"

	"bi-backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer: SMTP üzerinden rapor eki gönderir. Tek deneme; başarısız gönderim
// kuyruklanmaz, hata çağırana döner.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
}

func (m *Mailer) Send(to, subject, text, html, filename string, content []byte, mimeType string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}
	if filename != "" {
		msg.Attach(filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {mimeType}}),
		)
	}

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(msg)
}
