package main

import (
	"fitness-api/internal/handlers"
	"fitness-api/pkg/lambda"
)

func main() {
	lambda.Start(handlers.NamePayments, handlers.NewAdapter)
}
