package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"
)

// EmailSender delivers a notification to the shopper's inbox
type EmailSender interface {
	SendBookingNotification(ctx context.Context, notification *BookingNotification) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

// SMTPSender sends booking emails over SMTP with STARTTLS
type SMTPSender struct {
	config    SMTPConfig
	templates map[NotificationType]*template.Template
}

// NewSMTPSender creates an SMTP-backed email sender
func NewSMTPSender(config SMTPConfig) (*SMTPSender, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	s := &SMTPSender{
		config:    config,
		templates: make(map[NotificationType]*template.Template),
	}
	if err := s.loadTemplates(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SMTPSender) SendBookingNotification(ctx context.Context, notification *BookingNotification) error {
	tmpl, ok := s.templates[notification.Type]
	if !ok {
		return fmt.Errorf("no template for notification type %s", notification.Type)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, notification); err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	subject := s.subjectFor(notification)
	message := s.buildMessage(notification.RecipientEmail, subject, body.String())

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if s.config.UseTLS {
		return s.sendWithSTARTTLS(addr, auth, notification.RecipientEmail, message)
	}
	return smtp.SendMail(addr, auth, s.config.FromEmail, []string{notification.RecipientEmail}, message)
}

func (s *SMTPSender) subjectFor(notification *BookingNotification) string {
	switch notification.Type {
	case TypeBookingConfirmed:
		return fmt.Sprintf("Your tickets are confirmed (booking %s)", shortID(notification.BookingID.String()))
	case TypeBookingCancelled:
		return fmt.Sprintf("Your booking %s was cancelled", shortID(notification.BookingID.String()))
	default:
		return "Booking update"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (s *SMTPSender) buildMessage(to, subject, htmlBody string) []byte {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return []byte(msg.String())
}

func (s *SMTPSender) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{ServerName: s.config.Host}
	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}

func (s *SMTPSender) loadTemplates() error {
	confirmed := `
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>See you at the show, {{.RecipientName}}!</h2>
  <p>Your booking is confirmed.</p>
  {{if .Seats}}
  <h3>Seats</h3>
  <p>{{range $i, $s := .Seats}}{{if $i}}, {{end}}{{$s}}{{end}}</p>
  {{end}}
  {{if .Merch}}
  <h3>Merchandise</h3>
  <ul>
  {{range .Merch}}
    <li>{{.Quantity}} x {{.Name}}{{if .Variant}} ({{.Variant}}){{end}} - RM{{printf "%.2f" .Total}}</li>
  {{end}}
  </ul>
  {{end}}
  <p><strong>Total paid: RM{{printf "%.2f" .GrandTotal}}</strong></p>
  <p>Show this email at the door. Booking reference: {{.BookingID}}</p>
</body>
</html>`

	cancelled := `
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Hi {{.RecipientName}},</h2>
  <p>Your booking {{.BookingID}} has been cancelled.</p>
  {{if .Seats}}
  <p>The seats {{range $i, $s := .Seats}}{{if $i}}, {{end}}{{$s}}{{end}} have been released.</p>
  {{end}}
  <p>If you believe this is a mistake, reply to this email.</p>
</body>
</html>`

	for t, text := range map[NotificationType]string{
		TypeBookingConfirmed: confirmed,
		TypeBookingCancelled: cancelled,
	} {
		tmpl, err := template.New(string(t)).Parse(text)
		if err != nil {
			return fmt.Errorf("failed to parse %s template: %w", t, err)
		}
		s.templates[t] = tmpl
	}
	return nil
}
