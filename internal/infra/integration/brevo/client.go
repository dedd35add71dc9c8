package brevo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the Brevo transactional email API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: "https://api.brevo.com/v3",
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SendEmail(input SendEmailInput) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("brevo api key not configured")
	}

	to := make([]Recipient, 0, len(input.To))
	for _, addr := range input.To {
		to = append(to, Recipient{Email: addr})
	}

	payload := sendEmailRequest{
		Sender:      Recipient{Name: input.SenderName, Email: input.SenderEmail},
		To:          to,
		Subject:     input.Subject,
		HTMLContent: input.HTMLContent,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("brevo payload marshal failed: %w", err)
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/smtp/email", c.baseURL), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("brevo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("brevo api error (status %d): %s", resp.StatusCode, string(body))
	}

	var response sendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("brevo decode failed: %w", err)
	}

	return response.MessageID, nil
}
