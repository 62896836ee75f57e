package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamotypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"fitness-api/internal/models"
	"fitness-api/internal/repositories"
)

// userKey is the partition key of the users table
const userKey = "user_id"

// API is the subset of the DynamoDB client used by UserRepository
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// UserRepository implements repositories.UserRepository on a DynamoDB table
type UserRepository struct {
	client API
	table  string
	logger *logrus.Logger
}

// NewUserRepository creates a new DynamoDB user repository
func NewUserRepository(client API, table string, logger *logrus.Logger) *UserRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &UserRepository{
		client: client,
		table:  table,
		logger: logger,
	}
}

// GetByID retrieves a user's subscription record
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.UserAccount, error) {
	if err := repositories.CheckUserID("get_by_id", userID); err != nil {
		return nil, err
	}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       keyFor(userID),
	})
	if err != nil {
		return nil, repositories.NewRepositoryError("get_by_id", "user", userID, err)
	}
	if result.Item == nil {
		return nil, repositories.NotFoundError("user", userID)
	}

	var user models.UserAccount
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, repositories.NewRepositoryError("get_by_id", "user", userID, fmt.Errorf("failed to unmarshal user: %w", err))
	}
	return &user, nil
}

// RecordSubscription stores a newly created subscription on the user
func (r *UserRepository) RecordSubscription(ctx context.Context, userID string, update models.SubscriptionUpdate) error {
	if err := repositories.CheckUserID("record_subscription", userID); err != nil {
		return err
	}

	return r.set(ctx, "record_subscription", userID, map[string]interface{}{
		"subscriptionId":     update.SubscriptionID,
		"subscriptionStatus": update.Status,
		"plan":               update.Plan,
		"updatedAt":          models.FormatTimestamp(update.UpdatedAt),
	})
}

// UpdatePaymentStatus stores the outcome of a payment event on the user
func (r *UserRepository) UpdatePaymentStatus(ctx context.Context, userID string, update models.PaymentStatusUpdate) error {
	if err := repositories.CheckUserID("update_payment_status", userID); err != nil {
		return err
	}

	attrs := map[string]interface{}{
		"subscriptionStatus": string(update.Status),
		"updatedAt":          models.FormatTimestamp(update.UpdatedAt),
	}
	if update.LastPaymentDate != "" {
		attrs["lastPaymentDate"] = update.LastPaymentDate
	}
	return r.set(ctx, "update_payment_status", userID, attrs)
}

// HealthCheck describes the users table and requires it to be active
func (r *UserRepository) HealthCheck(ctx context.Context) error {
	out, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.table)})
	if err != nil {
		return repositories.NewRepositoryError("health_check", "user", "", err)
	}
	if out.Table == nil || out.Table.TableStatus != dynamotypes.TableStatusActive {
		status := "unknown"
		if out.Table != nil {
			status = string(out.Table.TableStatus)
		}
		return repositories.NewRepositoryError("health_check", "user", "", fmt.Errorf("table %s is %s", r.table, status))
	}
	return nil
}

// set issues an UpdateItem with one SET clause per attribute
func (r *UserRepository) set(ctx context.Context, op, userID string, attrs map[string]interface{}) error {
	expr, names, values, err := buildSetExpression(attrs)
	if err != nil {
		return repositories.NewRepositoryError(op, "user", userID, err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       keyFor(userID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"operation": op,
			"table":     r.table,
			"user_id":   userID,
			"error":     err.Error(),
		}).Error("DynamoDB update failed")
		return repositories.NewRepositoryError(op, "user", userID, err)
	}

	r.logger.WithFields(logrus.Fields{
		"operation": op,
		"table":     r.table,
		"user_id":   userID,
	}).Debug("DynamoDB update executed")
	return nil
}

func keyFor(userID string) map[string]dynamotypes.AttributeValue {
	return map[string]dynamotypes.AttributeValue{
		userKey: &dynamotypes.AttributeValueMemberS{Value: userID},
	}
}

// buildSetExpression renders attrs as "SET #a = :a, ..." with sorted,
// placeholder-safe names
func buildSetExpression(attrs map[string]interface{}) (string, map[string]string, map[string]dynamotypes.AttributeValue, error) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make(map[string]string, len(keys))
	values := make(map[string]dynamotypes.AttributeValue, len(keys))
	clauses := make([]string, 0, len(keys))
	for _, k := range keys {
		av, err := attributevalue.Marshal(attrs[k])
		if err != nil {
			return "", nil, nil, fmt.Errorf("failed to marshal %s: %w", k, err)
		}
		names["#"+k] = k
		values[":"+k] = av
		clauses = append(clauses, fmt.Sprintf("#%s = :%s", k, k))
	}
	return "SET " + strings.Join(clauses, ", "), names, values, nil
}
