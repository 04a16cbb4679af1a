package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// SMSSender delivers a text message to a phone number. One
// implementation is chosen at startup from configuration; callers never
// re-resolve the provider per call.
type SMSSender interface {
	Send(phone, message string) error
}

// NewSMSSender selects the SMS provider for the given credentials. With
// no API URL configured delivery is unavailable and every send fails,
// which callers degrade from gracefully.
func NewSMSSender(apiURL, apiToken, sender string) SMSSender {
	if apiURL == "" || apiToken == "" {
		return &disabledSMSSender{}
	}
	return &httpSMSSender{
		apiURL:   apiURL,
		apiToken: apiToken,
		sender:   sender,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

type disabledSMSSender struct{}

func (d *disabledSMSSender) Send(phone, message string) error {
	return fmt.Errorf("sms delivery is not configured")
}

// httpSMSSender posts messages to a JSON SMS gateway.
type httpSMSSender struct {
	apiURL   string
	apiToken string
	sender   string
	client   *http.Client
}

type smsPayload struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

func (s *httpSMSSender) Send(phone, message string) error {
	body, err := json.Marshal(smsPayload{To: phone, From: s.sender, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiToken)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[SMS] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[SMS] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	return nil
}
