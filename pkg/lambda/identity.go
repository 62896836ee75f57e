package lambda

import (
	"encoding/base64"
	"fmt"
)

// UserIDPathParam is the path parameter used when no authorizer claim is present
const UserIDPathParam = "userId"

// ResolveUserID extracts the caller identity. The authorizer "sub" claim wins,
// then the userId path parameter; an empty string means anonymous.
func ResolveUserID(authorizer map[string]interface{}, pathParams map[string]string) string {
	if sub := claimString(authorizer, "sub"); sub != "" {
		return sub
	}
	return pathParams[UserIDPathParam]
}

// claimString reads a claim from the authorizer's "claims" object. API Gateway
// delivers Cognito claims as a JSON object; local tooling often uses plain
// string maps, so both shapes are accepted.
func claimString(authorizer map[string]interface{}, key string) string {
	if authorizer == nil {
		return ""
	}
	switch claims := authorizer["claims"].(type) {
	case map[string]interface{}:
		return stringValue(claims[key])
	case map[string]string:
		return claims[key]
	}
	return ""
}

func stringValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case *string:
		if v != nil {
			return *v
		}
	}
	return ""
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
