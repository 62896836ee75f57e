package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-api/internal/models"
	"fitness-api/internal/repositories"
	"fitness-api/internal/repositories/memory"
)

type fakeGateway struct {
	created []*AsaasSubscriptionRequest
	sub     *AsaasSubscription
	err     error
}

func (f *fakeGateway) CreateSubscription(ctx context.Context, req *AsaasSubscriptionRequest) (*AsaasSubscription, error) {
	f.created = append(f.created, req)
	return f.sub, f.err
}

func (f *fakeGateway) GetSubscription(ctx context.Context, subscriptionID string) (*AsaasSubscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

var fixedNow = time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

func newTestPaymentService(gateway SubscriptionGateway, users repositories.UserRepository) *paymentService {
	svc := NewPaymentService(gateway, users, "hook-secret", quietLogger()).(*paymentService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestPaymentService_CreateSubscription(t *testing.T) {
	ctx := context.Background()
	valid := func() *models.CreateSubscriptionRequest {
		return &models.CreateSubscriptionRequest{CustomerID: "cus_1", Value: 39.9, NextDueDate: "2026-11-01"}
	}

	t.Run("RecordsOnUser", func(t *testing.T) {
		gateway := &fakeGateway{sub: &AsaasSubscription{ID: "sub_1", Status: "ACTIVE"}}
		users := memory.NewUserRepository()
		svc := newTestPaymentService(gateway, users)

		result, err := svc.CreateSubscription(ctx, "user-1", valid())
		require.NoError(t, err)
		assert.Equal(t, &models.SubscriptionResult{SubscriptionID: "sub_1", Status: "ACTIVE"}, result)

		require.Len(t, gateway.created, 1)
		assert.Equal(t, "user-1", gateway.created[0].ExternalReference)
		assert.Equal(t, "CREDIT_CARD", gateway.created[0].BillingType)
		assert.Equal(t, "MONTHLY", gateway.created[0].Cycle)

		user, err := users.GetByID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "sub_1", user.SubscriptionID)
		assert.Equal(t, models.PlanPremium, user.Plan)
		assert.Equal(t, models.FormatTimestamp(fixedNow), user.UpdatedAt)
	})

	t.Run("WithoutIdentitySkipsStore", func(t *testing.T) {
		gateway := &fakeGateway{sub: &AsaasSubscription{ID: "sub_2", Status: "PENDING"}}
		svc := newTestPaymentService(gateway, memory.NewUserRepository())

		result, err := svc.CreateSubscription(ctx, "", valid())
		require.NoError(t, err)
		assert.Equal(t, "sub_2", result.SubscriptionID)
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		gateway := &fakeGateway{}
		svc := newTestPaymentService(gateway, memory.NewUserRepository())

		_, err := svc.CreateSubscription(ctx, "user-1", &models.CreateSubscriptionRequest{Value: -1})
		var verrs validator.ValidationErrors
		assert.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
		assert.Empty(t, gateway.created)
	})

	t.Run("GatewayFailure", func(t *testing.T) {
		gateway := &fakeGateway{err: &ProviderError{Provider: "Asaas", StatusCode: 400, Body: "invalid customer"}}
		svc := newTestPaymentService(gateway, memory.NewUserRepository())

		_, err := svc.CreateSubscription(ctx, "user-1", valid())
		require.Error(t, err)
		assert.Equal(t, "Asaas API error: invalid customer", err.Error())
	})
}

func TestPaymentService_GetSubscriptionStatus(t *testing.T) {
	gateway := &fakeGateway{sub: &AsaasSubscription{ID: "sub_1", Status: "ACTIVE", Value: 39.9}}
	svc := newTestPaymentService(gateway, memory.NewUserRepository())

	status, err := svc.GetSubscriptionStatus(context.Background(), "sub_1")
	require.NoError(t, err)
	assert.Equal(t, &models.SubscriptionStatus{SubscriptionID: "sub_1", Status: "ACTIVE", Value: 39.9}, status)

	_, err = svc.GetSubscriptionStatus(context.Background(), "")
	assert.Error(t, err)
}

func TestPaymentService_VerifyWebhookToken(t *testing.T) {
	svc := newTestPaymentService(&fakeGateway{}, memory.NewUserRepository())
	assert.True(t, svc.VerifyWebhookToken("hook-secret"))
	assert.False(t, svc.VerifyWebhookToken("wrong"))
	assert.False(t, svc.VerifyWebhookToken(""))

	open := NewPaymentService(&fakeGateway{}, memory.NewUserRepository(), "", quietLogger())
	assert.False(t, open.VerifyWebhookToken(""), "empty secret must reject everything")
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("PaymentReceived", func(t *testing.T) {
		users := memory.NewUserRepository()
		svc := newTestPaymentService(&fakeGateway{}, users)

		result, err := svc.HandleWebhook(ctx, &models.WebhookEvent{
			Event:   models.EventPaymentReceived,
			Payment: &models.WebhookPayment{ID: "pay_1", ExternalReference: "user-1", PaymentDate: "2026-10-16"},
		})
		require.NoError(t, err)
		assert.True(t, result.Processed)

		user, err := users.GetByID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", user.SubscriptionStatus)
		assert.Equal(t, "2026-10-16", user.LastPaymentDate)
	})

	t.Run("PaymentReceivedWithoutDateUsesNow", func(t *testing.T) {
		users := memory.NewUserRepository()
		svc := newTestPaymentService(&fakeGateway{}, users)

		_, err := svc.HandleWebhook(ctx, &models.WebhookEvent{
			Event:   models.EventPaymentReceived,
			Payment: &models.WebhookPayment{ExternalReference: "user-1"},
		})
		require.NoError(t, err)

		user, err := users.GetByID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, models.FormatTimestamp(fixedNow), user.LastPaymentDate)
	})

	t.Run("PaymentOverdue", func(t *testing.T) {
		users := memory.NewUserRepository()
		svc := newTestPaymentService(&fakeGateway{}, users)

		_, err := svc.HandleWebhook(ctx, &models.WebhookEvent{
			Event:   models.EventPaymentOverdue,
			Payment: &models.WebhookPayment{ExternalReference: "user-2"},
		})
		require.NoError(t, err)

		user, err := users.GetByID(ctx, "user-2")
		require.NoError(t, err)
		assert.Equal(t, "OVERDUE", user.SubscriptionStatus)
	})

	t.Run("MissingExternalReference", func(t *testing.T) {
		svc := newTestPaymentService(&fakeGateway{}, memory.NewUserRepository())

		result, err := svc.HandleWebhook(ctx, &models.WebhookEvent{Event: models.EventPaymentReceived, Payment: &models.WebhookPayment{ID: "pay_1"}})
		require.NoError(t, err)
		assert.False(t, result.Processed)
		assert.Equal(t, models.ReasonMissingExternalReference, result.Reason)

		result, err = svc.HandleWebhook(ctx, nil)
		require.NoError(t, err)
		assert.False(t, result.Processed)
	})

	t.Run("OtherEventsAcknowledged", func(t *testing.T) {
		users := memory.NewUserRepository()
		svc := newTestPaymentService(&fakeGateway{}, users)

		result, err := svc.HandleWebhook(ctx, &models.WebhookEvent{Event: "PAYMENT_CREATED", Payment: &models.WebhookPayment{ExternalReference: "user-3"}})
		require.NoError(t, err)
		assert.True(t, result.Processed)

		_, err = users.GetByID(ctx, "user-3")
		assert.True(t, repositories.IsNotFound(err))
	})
}
