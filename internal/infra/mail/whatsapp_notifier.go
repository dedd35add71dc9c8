package mail

import (
	"log"

	"github.com/covercredit/cover-credit-backend/internal/entity"
	"github.com/covercredit/cover-credit-backend/internal/infra/integration/whatsapp"
	"github.com/covercredit/cover-credit-backend/internal/infra/queue"
)

// WhatsAppNotifier pings the advisors' WhatsApp when a lead arrives or
// a reminder falls due. Always best-effort: failures are logged and
// swallowed so WhatsApp trouble never blocks the email channel.
type WhatsAppNotifier struct {
	client  *whatsapp.Client
	adminTo string
}

func NewWhatsAppNotifier(client *whatsapp.Client, adminTo string) *WhatsAppNotifier {
	return &WhatsAppNotifier{client: client, adminTo: adminTo}
}

func (n *WhatsAppNotifier) SendLeadAlert(payload queue.AlertPayload) error {
	if n.adminTo == "" {
		return nil
	}

	template := "new_contact_alert"
	topic := payload.Topic
	if payload.Kind == queue.AlertKindBooking {
		template = "new_booking_alert"
		topic = DepartmentLabel(payload.Topic)
	}

	err := n.client.SendMessage(whatsapp.SendMessageInput{
		PhoneNumber:  n.adminTo,
		TemplateName: template,
		Parameters:   []string{payload.Name, payload.Phone, topic},
	})
	if err != nil {
		log.Printf("⚠️ WhatsApp lead alert failed for %s: %v", payload.LeadID, err)
		return nil
	}
	return nil
}

func (n *WhatsAppNotifier) SendReminderPing(b *entity.Booking) {
	if n.adminTo == "" {
		return
	}

	err := n.client.SendMessage(whatsapp.SendMessageInput{
		PhoneNumber:  n.adminTo,
		TemplateName: "reminder_due_alert",
		Parameters:   []string{b.Name, b.Phone, DepartmentLabel(b.Department)},
	})
	if err != nil {
		log.Printf("⚠️ WhatsApp reminder ping failed for %s: %v", b.ID, err)
	}
}

// ReminderNotifier bundles the two reminder channels for the scheduler.
// The email is the delivery that counts; the WhatsApp ping rides along.
type ReminderNotifier struct {
	Mailer   *AlertMailer
	WhatsApp *WhatsAppNotifier
}

func NewReminderNotifier(mailer *AlertMailer, wa *WhatsAppNotifier) *ReminderNotifier {
	return &ReminderNotifier{Mailer: mailer, WhatsApp: wa}
}

func (n *ReminderNotifier) SendReminderDue(b *entity.Booking) error {
	if n.WhatsApp != nil {
		n.WhatsApp.SendReminderPing(b)
	}
	return n.Mailer.SendReminderDue(b)
}
