package mail

// EmailSender delivers user-facing confirmation emails over SMTP.
type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type confirmationData struct {
	Name string
	What string
}

type alertRow struct {
	Label string
	Value string
}

type alertData struct {
	Heading   string
	Reference string
	Rows      []alertRow
	LeadID    string
}
