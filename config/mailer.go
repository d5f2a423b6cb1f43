package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
)

func smtpSettings() (host string, port int, user, pass, from string, skipTLSVerify bool) {
	host = os.Getenv("SMTP_HOST")
	port, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	user = os.Getenv("SMTP_USER")
	pass = os.Getenv("SMTP_PASS")
	from = os.Getenv("SMTP_FROM") // e.g. "CPMS Faculty Portal <no-reply@your.org>"
	skipTLSVerify = os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1"
	return
}

func newDialer() (*mail.Dialer, string, error) {
	host, port, user, pass, from, skipTLSVerify := smtpSettings()
	if host == "" || from == "" {
		return nil, "", fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	d := mail.NewDialer(host, port, user, pass)

	// Force STARTTLS on port 587 (works with Gmail/Office365).
	d.StartTLSPolicy = mail.MandatoryStartTLS

	// TLS needs either ServerName or InsecureSkipVerify; ServerName must match
	// the hostname, e.g. "smtp.gmail.com". Skip verification in dev only.
	d.TLSConfig = &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: skipTLSVerify,
	}

	return d, from, nil
}

// VerifyMailer dials the SMTP server and closes the connection. Used by the
// reminder job to confirm the transport is reachable before scanning.
func VerifyMailer() error {
	d, _, err := newDialer()
	if err != nil {
		return err
	}
	sc, err := d.Dial()
	if err != nil {
		return err
	}
	return sc.Close()
}

// SendMail sends one HTML message to the given addresses.
func SendMail(to []string, subject, html string) error {
	if len(to) == 0 {
		return nil
	}

	d, from, err := newDialer()
	if err != nil {
		return err
	}

	m := mail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	return d.DialAndSend(m)
}

// SendUrgentMail sends one high-priority HTML message to a single address.
// The priority headers make deadline reminders surface in faculty inboxes.
func SendUrgentMail(to, subject, html string) error {
	d, from, err := newDialer()
	if err != nil {
		return err
	}

	m := mail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("X-Priority", "1")
	m.SetHeader("Importance", "high")
	m.SetBody("text/html", html)

	return d.DialAndSend(m)
}
