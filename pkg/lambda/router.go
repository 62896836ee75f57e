package lambda

import (
	"context"
	"strings"
)

// AnyMethod matches every HTTP method
const AnyMethod = "*"

// RouteFunc handles a matched request
type RouteFunc func(ctx context.Context, req *Request) (*Result, error)

// Route binds a method and path pattern to a route function.
//
// Patterns are matched segment by segment against the end of the request
// path, so "/status/{subscriptionId}" matches "/prod/payments/status/sub_1"
// but "/subscription" does not match "/subscriptions". An empty pattern
// matches every path.
type Route struct {
	Method          string
	Pattern         string
	Handler         RouteFunc
	RequireIdentity bool
}

// match reports whether the route accepts the request and returns any
// captured path parameters.
func (rt Route) match(method, path string) (map[string]string, bool) {
	if rt.Method != "" && rt.Method != AnyMethod && !strings.EqualFold(rt.Method, method) {
		return nil, false
	}

	pattern := splitPath(rt.Pattern)
	if len(pattern) == 0 {
		return nil, true
	}

	segments := splitPath(path)
	if len(pattern) > len(segments) {
		return nil, false
	}

	tail := segments[len(segments)-len(pattern):]
	var captured map[string]string
	for i, part := range pattern {
		if name, ok := paramName(part); ok {
			if captured == nil {
				captured = make(map[string]string)
			}
			captured[name] = tail[i]
			continue
		}
		if part != tail[i] {
			return nil, false
		}
	}
	return captured, true
}

func paramName(segment string) (string, bool) {
	if len(segment) > 2 && strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
		return segment[1 : len(segment)-1], true
	}
	return "", false
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
