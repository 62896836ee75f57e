package lambda

import (
	"encoding/base64"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:            "post",
		Path:                  "/payments/webhook",
		Headers:               map[string]string{"Asaas-Access-Token": "secret"},
		QueryStringParameters: map[string]string{"page": "2"},
		Body:                  base64.StdEncoding.EncodeToString([]byte(`{"event":"PAYMENT_RECEIVED"}`)),
		IsBase64Encoded:       true,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  "req-1",
			Authorizer: map[string]interface{}{"claims": map[string]interface{}{"sub": "user-1"}},
		},
	}

	req := NewRequest(event)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "secret", req.Header("asaas-access-token"))
	assert.Equal(t, "", req.Header("missing"))
	assert.Equal(t, "2", req.QueryParam("page"))
	assert.Equal(t, "req-1", req.RequestID)
	assert.Equal(t, "user-1", req.UserID)
	assert.Equal(t, `{"event":"PAYMENT_RECEIVED"}`, string(req.Body))
}

func TestRequest_Bind(t *testing.T) {
	type payload struct {
		Message string `json:"message"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"object", `{"message":"hi"}`, "hi", false},
		{"empty", "", "", false},
		{"malformed", `{"message":`, "", false},
		{"array", `["hi"]`, "", false},
		{"null", "null", "", false},
		{"wrong type", `{"message":42}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{Body: []byte(tt.body)}
			var p payload
			err := req.Bind(&p)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 400, StatusFor(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Message)
		})
	}
}

func TestResolveUserID(t *testing.T) {
	tests := []struct {
		name       string
		authorizer map[string]interface{}
		params     map[string]string
		want       string
	}{
		{"claim", map[string]interface{}{"claims": map[string]interface{}{"sub": "a"}}, map[string]string{"userId": "b"}, "a"},
		{"string claims", map[string]interface{}{"claims": map[string]string{"sub": "a"}}, nil, "a"},
		{"empty claim falls back", map[string]interface{}{"claims": map[string]interface{}{"sub": ""}}, map[string]string{"userId": "b"}, "b"},
		{"path param", nil, map[string]string{"userId": "b"}, "b"},
		{"anonymous", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveUserID(tt.authorizer, tt.params))
		})
	}
}

func TestEnvelopeBuilders(t *testing.T) {
	success := Success(0, nil)
	assert.Equal(t, 200, success.StatusCode)
	assert.JSONEq(t, `{"success":true,"data":{}}`, string(success.Body))

	failure := Failure(200, "oops")
	assert.Equal(t, 500, failure.StatusCode)
	assert.JSONEq(t, `{"success":false,"error":"oops"}`, string(failure.Body))

	assert.Equal(t, "application/json", failure.Headers["Content-Type"])
	assert.Contains(t, failure.Headers["Access-Control-Allow-Headers"], "asaas-access-token")
}
