package brevo

type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendEmailRequest struct {
	Sender      Recipient   `json:"sender"`
	To          []Recipient `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

type sendEmailResponse struct {
	MessageID string `json:"messageId"`
}

type SendEmailInput struct {
	SenderName  string
	SenderEmail string
	To          []string
	Subject     string
	HTMLContent string
}
