package outreach

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"taskprovision/sources/configuration"
	"taskprovision/sources/tracing"
)

// Mailer delivers plain-text mail over SMTP with STARTTLS when configured.
type Mailer struct {
	config *configuration.Config
	log    *tracing.Logger
}

func NewMailer(config *configuration.Config, log *tracing.Logger) *Mailer {
	return &Mailer{config: config, log: log}
}

func (x *Mailer) Send(log *tracing.Logger, to string, subject string, body string) error {
	defer tracing.ProfilePoint(log, "Email sent", "outreach.mailer.send")()

	smtpConfig := x.config.SMTP
	address := fmt.Sprintf("%s:%d", smtpConfig.Host, smtpConfig.Port)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s <%s>\r\n", smtpConfig.FromName, smtpConfig.From))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	if err := x.deliver(address, to, []byte(sb.String())); err != nil {
		log.E("Failed to send email", tracing.InnerError, err)
		return err
	}

	return nil
}

func (x *Mailer) deliver(address string, to string, message []byte) error {
	smtpConfig := x.config.SMTP

	client, err := smtp.Dial(address)
	if err != nil {
		return err
	}
	defer client.Close()

	if smtpConfig.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: smtpConfig.Host}); err != nil {
			return err
		}
	}

	if smtpConfig.Username != "" {
		auth := smtp.PlainAuth("", smtpConfig.Username, smtpConfig.Password, smtpConfig.Host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(smtpConfig.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(message); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return client.Quit()
}
