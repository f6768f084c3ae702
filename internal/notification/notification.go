package notification

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/primelots/api-realty/internal/currency"
	"github.com/primelots/api-realty/internal/timeutil"
)

// Sender delivers client-facing notices. Implementations are fire-and-forget:
// a delivery failure is logged and surfaced, never rolled back into the
// payment transaction that triggered it.
type Sender interface {
	SendReceipt(r Receipt) error
	SendPaymentReminder(email, clientName string, dueDate time.Time, amount float64) error
	SendReservationForfeited(email, clientName, lotName string) error
}

// Receipt is the payload for a payment acknowledgement.
type Receipt struct {
	Email           string  `json:"email"`
	ClientName      string  `json:"clientName"`
	Reference       string  `json:"reference"`
	TransactionType string  `json:"transactionType"`
	Amount          float64 `json:"amount"`
	AmountFormatted string  `json:"amountFormatted"`
	AmountInWords   string  `json:"amountInWords"`
	PaymentDate     string  `json:"paymentDate"`
}

// WebhookSender posts notices to an external notification service.
type WebhookSender struct {
	BaseURL string
	Client  *http.Client
}

func NewWebhookSender(baseURL string) *WebhookSender {
	return &WebhookSender{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *WebhookSender) post(path string, payload any) error {
	body, _ := json.Marshal(payload)
	resp, err := s.Client.Post(s.BaseURL+path, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("notification: post %s failed: %v", path, err)
		return err
	}
	defer resp.Body.Close()
	return nil
}

func (s *WebhookSender) SendReceipt(r Receipt) error {
	r.AmountFormatted = currency.Format(r.Amount)
	r.AmountInWords = currency.InWords(r.Amount)
	return s.post("/receipts", r)
}

func (s *WebhookSender) SendPaymentReminder(email, clientName string, dueDate time.Time, amount float64) error {
	return s.post("/reminders", map[string]string{
		"email":      email,
		"clientName": clientName,
		"dueDate":    timeutil.FormatDate(dueDate),
		"amount":     currency.Format(amount),
	})
}

func (s *WebhookSender) SendReservationForfeited(email, clientName, lotName string) error {
	return s.post("/reservation-forfeited", map[string]string{
		"email":      email,
		"clientName": clientName,
		"lot":        lotName,
	})
}

// NopSender discards every notice. Used when no webhook URL is configured and
// in tests.
type NopSender struct{}

func (NopSender) SendReceipt(Receipt) error { return nil }
func (NopSender) SendPaymentReminder(string, string, time.Time, float64) error {
	return nil
}
func (NopSender) SendReservationForfeited(string, string, string) error { return nil }
