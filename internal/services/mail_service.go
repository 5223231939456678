package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// MailService delivers outbound mail over SMTP. Site managers, the audience
// for new-comment notifications, come from the comma-separated MANAGERS env
// variable.
type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Managers []string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	var managers []string
	for _, addr := range strings.Split(os.Getenv("MANAGERS"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			managers = append(managers, addr)
		}
	}

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("⚠️ MailService disabled: Missing SMTP environment variables.")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Managers: managers,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled || len(to) == 0 {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: coltrane <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		err := smtp.SendMail(addr, auth, s.From, to, msg)
		if err != nil {
			log.Printf("❌ Failed to send email to %v: %v", to, err)
		} else {
			log.Printf("✅ Email sent to %v: %s", to, subject)
		}
	}()
}

// NotifyManagers mails all configured site managers. It satisfies
// moderation.Notifier.
func (s *MailService) NotifyManagers(subject, body string) {
	s.sendAsync(s.Managers, subject, body)
}
