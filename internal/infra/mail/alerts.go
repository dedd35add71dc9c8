package mail

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/infra/integration/brevo"
	"github.com/covercredit/cover-credit-backend/internal/infra/queue"
)

// AlertMailer sends internal new-lead and reminder-due emails through
// the Brevo transactional API.
type AlertMailer struct {
	client    *brevo.Client
	fromEmail string
	toEmails  []string
}

func NewAlertMailer(client *brevo.Client, fromEmail string, toEmails []string) *AlertMailer {
	return &AlertMailer{
		client:    client,
		fromEmail: fromEmail,
		toEmails:  toEmails,
	}
}

func (m *AlertMailer) SendContactAlert(payload queue.AlertPayload) error {
	rows := []alertRow{
		{"Name", payload.Name},
		{"Phone", payload.Phone},
		{"Email", orDash(payload.Email)},
		{"Interest", payload.Topic},
		{"Message", orDash(payload.Message)},
	}
	subject := fmt.Sprintf("📩 New Lead: %s — %s", payload.Name, payload.Topic)
	return m.send(subject, alertData{
		Heading: "New Contact Form Submission",
		Rows:    rows,
		LeadID:  payload.LeadID,
	})
}

func (m *AlertMailer) SendBookingAlert(payload queue.AlertPayload) error {
	dept := DepartmentLabel(payload.Topic)
	rows := []alertRow{
		{"Name", payload.Name},
		{"Phone", payload.Phone},
		{"Email", orDash(payload.Email)},
		{"City", orDash(payload.City)},
		{"Department", dept},
		{"Notes", orDash(payload.Message)},
	}
	rows = append(rows, detailRows(payload.Details)...)

	subject := fmt.Sprintf("📅 New Booking: %s — %s", payload.Name, dept)
	return m.send(subject, alertData{
		Heading:   "New Booking — " + dept,
		Reference: payload.Reference,
		Rows:      rows,
		LeadID:    payload.LeadID,
	})
}

// SendReminderDue is the "due" notification the scheduler fires when a
// booking's follow-up time arrives.
func (m *AlertMailer) SendReminderDue(b *entity.Booking) error {
	rows := []alertRow{
		{"Name", b.Name},
		{"Phone", b.Phone},
		{"Department", DepartmentLabel(b.Department)},
		{"Due At", b.Reminder.ScheduledAt.Format(time.RFC1123)},
		{"Reminder Note", orDash(b.Reminder.Note)},
	}
	subject := fmt.Sprintf("⏰ Reminder due: call %s (%s)", b.Name, b.Phone)
	return m.send(subject, alertData{
		Heading:   "Follow-up Reminder Due",
		Reference: b.Reference,
		Rows:      rows,
		LeadID:    b.ID,
	})
}

func (m *AlertMailer) send(subject string, data alertData) error {
	var body bytes.Buffer
	if err := alertTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("alert template failed: %w", err)
	}
	_, err := m.client.SendEmail(brevo.SendEmailInput{
		SenderName:  "Cover Credit Leads",
		SenderEmail: m.fromEmail,
		To:          m.toEmails,
		Subject:     subject,
		HTMLContent: body.String(),
	})
	return err
}

func detailRows(details map[string]string) []alertRow {
	keys := make([]string, 0, len(details))
	for k, v := range details {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	rows := make([]alertRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, alertRow{Label: k, Value: details[k]})
	}
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
