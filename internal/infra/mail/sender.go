package mail

import (
	"bytes"
	"fmt"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendUserConfirmation thanks the lead for their submission. kind is
// "contact" or "booking" and only changes the wording.
func (s *EmailSender) SendUserConfirmation(to, name, kind string) error {
	what := "message"
	subject := "We got your message!"
	if kind == "booking" {
		what = "consultation request"
		subject = "Your consultation is booked!"
	}

	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, confirmationData{Name: name, What: what}); err != nil {
		return fmt.Errorf("confirmation template failed: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}
