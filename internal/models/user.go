package models

import "time"

// SubscriptionState is the status recorded on a user's subscription
type SubscriptionState string

const (
	SubscriptionActive  SubscriptionState = "ACTIVE"
	SubscriptionOverdue SubscriptionState = "OVERDUE"
)

// PlanPremium is the plan assigned when a subscription is created
const PlanPremium = "PREMIUM"

// UserAccount is the subscription view of a user record. Attribute names
// follow the users table so DynamoDB items round-trip unchanged.
type UserAccount struct {
	UserID             string `json:"user_id" dynamodbav:"user_id" db:"user_id"`
	SubscriptionID     string `json:"subscription_id,omitempty" dynamodbav:"subscriptionId,omitempty" db:"subscription_id"`
	SubscriptionStatus string `json:"subscription_status,omitempty" dynamodbav:"subscriptionStatus,omitempty" db:"subscription_status"`
	Plan               string `json:"plan,omitempty" dynamodbav:"plan,omitempty" db:"plan"`
	LastPaymentDate    string `json:"last_payment_date,omitempty" dynamodbav:"lastPaymentDate,omitempty" db:"last_payment_date"`
	UpdatedAt          string `json:"updated_at,omitempty" dynamodbav:"updatedAt,omitempty" db:"updated_at"`
}

// SubscriptionUpdate records a newly created subscription on a user
type SubscriptionUpdate struct {
	SubscriptionID string
	Status         string
	Plan           string
	UpdatedAt      time.Time
}

// PaymentStatusUpdate records a payment event on a user. LastPaymentDate is
// only written when non-empty.
type PaymentStatusUpdate struct {
	Status          SubscriptionState
	LastPaymentDate string
	UpdatedAt       time.Time
}

// FormatTimestamp renders t the way user records store timestamps
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
