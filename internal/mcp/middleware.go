package mcp

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrUnauthorized is returned when a request lacks a valid bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// authMiddleware implements bearer token authentication as MCP middleware.
func authMiddleware(token string) sdkmcp.Middleware {
	want := []byte(token)
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			// Skip auth for protocol methods
			if method == "initialize" || method == "ping" || strings.HasPrefix(method, "notifications/") {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, ErrUnauthorized
			}

			if !validBearer(extra.Header.Get("Authorization"), want) {
				return nil, ErrUnauthorized
			}

			return next(ctx, method, req)
		}
	}
}

// validBearer reports whether header is "Bearer <token>" for the wanted
// token. The scheme is matched case-insensitively.
func validBearer(header string, want []byte) bool {
	scheme, got, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return false
	}
	got = strings.TrimSpace(got)
	return got != "" && subtle.ConstantTimeCompare([]byte(got), want) == 1
}
