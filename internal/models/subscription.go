package models

// BillingType is the Asaas charge method
type BillingType string

const (
	BillingCreditCard BillingType = "CREDIT_CARD"
	BillingBoleto     BillingType = "BOLETO"
	BillingPix        BillingType = "PIX"
)

// Cycle is the Asaas billing period
type Cycle string

const (
	CycleWeekly       Cycle = "WEEKLY"
	CycleBiweekly     Cycle = "BIWEEKLY"
	CycleMonthly      Cycle = "MONTHLY"
	CycleQuarterly    Cycle = "QUARTERLY"
	CycleSemiannually Cycle = "SEMIANNUALLY"
	CycleYearly       Cycle = "YEARLY"
)

// CreateSubscriptionRequest is the body accepted by the subscription route
type CreateSubscriptionRequest struct {
	CustomerID  string      `json:"customer_id" validate:"required"`
	BillingType BillingType `json:"billing_type" validate:"omitempty,oneof=CREDIT_CARD BOLETO PIX"`
	Value       float64     `json:"value" validate:"gt=0"`
	NextDueDate string      `json:"next_due_date" validate:"required,datetime=2006-01-02"`
	Cycle       Cycle       `json:"cycle" validate:"omitempty,oneof=WEEKLY BIWEEKLY MONTHLY QUARTERLY SEMIANNUALLY YEARLY"`
}

// ApplyDefaults fills the optional fields
func (r *CreateSubscriptionRequest) ApplyDefaults() {
	if r.BillingType == "" {
		r.BillingType = BillingCreditCard
	}
	if r.Cycle == "" {
		r.Cycle = CycleMonthly
	}
}

// Validate applies defaults and checks the request
func (r *CreateSubscriptionRequest) Validate() error {
	r.ApplyDefaults()
	return ValidateStruct(r)
}

// SubscriptionResult is returned after a subscription is created
type SubscriptionResult struct {
	SubscriptionID string `json:"subscription_id"`
	Status         string `json:"status"`
}

// SubscriptionStatus is returned by the status route
type SubscriptionStatus struct {
	SubscriptionID string  `json:"subscription_id"`
	Status         string  `json:"status"`
	Value          float64 `json:"value"`
}
