package whatsapp

type SendMessageInput struct {
	PhoneNumber  string   // e.g. "919642834789"
	TemplateName string   // e.g. "new_lead_alert"
	Parameters   []string // body parameters in template order
}

type SendMessageResponse struct {
	Contacts []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Error *ErrorResponse `json:"error"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}
