package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestCreateSubscriptionRequestValidate(t *testing.T) {
	t.Run("AppliesDefaults", func(t *testing.T) {
		req := &CreateSubscriptionRequest{CustomerID: "cus_1", Value: 49.9, NextDueDate: "2026-11-01"}
		if err := req.Validate(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if req.BillingType != BillingCreditCard {
			t.Errorf("Expected billing type CREDIT_CARD, got %s", req.BillingType)
		}
		if req.Cycle != CycleMonthly {
			t.Errorf("Expected cycle MONTHLY, got %s", req.Cycle)
		}
	})

	t.Run("ReportsJSONFieldNames", func(t *testing.T) {
		req := &CreateSubscriptionRequest{Value: 0, NextDueDate: "01/11/2026", Cycle: "DAILY"}
		err := req.Validate()

		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("Expected validator errors, got %v", err)
		}
		fields := map[string]string{}
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		expected := map[string]string{
			"customer_id":   "required",
			"value":         "gt",
			"next_due_date": "datetime",
			"cycle":         "oneof",
		}
		for field, tag := range expected {
			if fields[field] != tag {
				t.Errorf("Expected %s to fail %s, got %q", field, tag, fields[field])
			}
		}
	})

	t.Run("AcceptsEveryBillingType", func(t *testing.T) {
		for _, bt := range []BillingType{BillingCreditCard, BillingBoleto, BillingPix} {
			req := &CreateSubscriptionRequest{CustomerID: "cus_1", BillingType: bt, Value: 10, NextDueDate: "2026-11-01"}
			if err := req.Validate(); err != nil {
				t.Errorf("Expected %s to be valid, got %v", bt, err)
			}
		}
	})
}

func TestChatRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     ChatRequest
		wantErr bool
	}{
		{"message only", ChatRequest{Message: "hello"}, false},
		{"openai", ChatRequest{Message: "hello", Provider: "openai"}, false},
		{"empty message", ChatRequest{}, true},
		{"unknown provider", ChatRequest{Message: "hello", Provider: "gemini"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWebhookEventUserID(t *testing.T) {
	if id := (&WebhookEvent{Event: EventPaymentReceived}).UserID(); id != "" {
		t.Errorf("Expected empty user id without payment, got %q", id)
	}

	event := &WebhookEvent{Payment: &WebhookPayment{ID: "pay_1", ExternalReference: "user-1"}}
	if id := event.UserID(); id != "user-1" {
		t.Errorf("Expected user-1, got %q", id)
	}
}

func TestWebhookEventUnmarshalLenient(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantEvent   string
		wantPayment bool
		wantRef     string
	}{
		{"well formed", `{"event":"PAYMENT_RECEIVED","payment":{"id":"pay_1","externalReference":"user-1"}}`, EventPaymentReceived, true, "user-1"},
		{"string payment", `{"event":"PAYMENT_RECEIVED","payment":"x"}`, EventPaymentReceived, false, ""},
		{"null payment", `{"event":"PAYMENT_OVERDUE","payment":null}`, EventPaymentOverdue, false, ""},
		{"numeric event", `{"event":3,"payment":{"externalReference":"user-2"}}`, "", true, "user-2"},
		{"mistyped field", `{"payment":{"value":"ten","externalReference":"user-3"}}`, "", true, "user-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var event WebhookEvent
			if err := json.Unmarshal([]byte(tt.body), &event); err != nil {
				t.Fatalf("Unmarshal() failed: %v", err)
			}
			if event.Event != tt.wantEvent {
				t.Errorf("Expected event %q, got %q", tt.wantEvent, event.Event)
			}
			if (event.Payment != nil) != tt.wantPayment {
				t.Fatalf("Expected payment present=%v, got %+v", tt.wantPayment, event.Payment)
			}
			if id := event.UserID(); id != tt.wantRef {
				t.Errorf("Expected user id %q, got %q", tt.wantRef, id)
			}
		})
	}
}

func TestValidateRequired(t *testing.T) {
	if err := ValidateRequired("  ", "subscriptionId"); err == nil {
		t.Error("Expected error for blank value")
	}
	if err := ValidateRequired("sub_1", "subscriptionId"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
