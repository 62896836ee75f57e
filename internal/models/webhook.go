package models

import (
	"bytes"
	"encoding/json"
)

// Asaas webhook event types that change a user's subscription state
const (
	EventPaymentReceived = "PAYMENT_RECEIVED"
	EventPaymentOverdue  = "PAYMENT_OVERDUE"
)

// ReasonMissingExternalReference is reported when a webhook cannot be tied to a user
const ReasonMissingExternalReference = "missing_external_reference"

// WebhookEvent is the payload Asaas posts to the webhook route
type WebhookEvent struct {
	Event   string          `json:"event"`
	Payment *WebhookPayment `json:"payment,omitempty"`
}

// WebhookPayment is the payment section of a webhook event
type WebhookPayment struct {
	ID                string  `json:"id"`
	Subscription      string  `json:"subscription,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`
	Status            string  `json:"status,omitempty"`
	Value             float64 `json:"value,omitempty"`
	PaymentDate       string  `json:"paymentDate,omitempty"`
}

// UnmarshalJSON decodes an event leniently. A non-string event name or a
// non-object payment is dropped, and mistyped payment fields are left empty,
// so a malformed delivery is answered instead of retried by Asaas.
func (e *WebhookEvent) UnmarshalJSON(data []byte) error {
	var raw struct {
		Event   json.RawMessage `json:"event"`
		Payment json.RawMessage `json:"payment"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = WebhookEvent{}
	if len(raw.Event) > 0 {
		_ = json.Unmarshal(raw.Event, &e.Event)
	}
	if payment := bytes.TrimSpace(raw.Payment); len(payment) > 0 && payment[0] == '{' {
		var p WebhookPayment
		_ = json.Unmarshal(payment, &p)
		e.Payment = &p
	}
	return nil
}

// UserID returns the external reference carried by the payment, if any
func (e *WebhookEvent) UserID() string {
	if e.Payment == nil {
		return ""
	}
	return e.Payment.ExternalReference
}

// WebhookResult is returned to Asaas after a webhook is handled
type WebhookResult struct {
	Processed bool   `json:"processed"`
	Reason    string `json:"reason,omitempty"`
}
