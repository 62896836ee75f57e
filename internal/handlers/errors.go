package handlers

import (
	"errors"

	"fitness-api/internal/models"
	"fitness-api/internal/repositories"
	"fitness-api/pkg/lambda"
)

// translateError turns domain errors the adapter cannot classify into HTTP
// errors. Anything else is passed through and becomes a 500.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return lambda.BadRequest(validationErr.Message)
	}
	if repositories.IsInvalidID(err) {
		return lambda.NewHTTPError(400, "invalid request", err)
	}
	return err
}
