package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/vecindapp/auth-service/api/transport"
	"github.com/vecindapp/auth-service/domain"
	"github.com/vecindapp/auth-service/pkg/token"
)

const identityKey = "auth_identity"

// Authenticate extracts the bearer token, verifies it and stores the claims
// on the request. The three verification outcomes stay distinguishable for
// clients: missing and expired tokens get 401, forged or incomplete ones 403.
func Authenticate(issuer *token.Issuer, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			raw := extractBearer(ctx)
			if raw == "" {
				writeError(ctx, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := issuer.Verify(raw)
			if err != nil {
				logger.Warn("token rejected",
					zap.String("path", string(ctx.Path())),
					zap.Error(err))
				switch {
				case errors.Is(err, token.ErrExpired):
					writeError(ctx, http.StatusUnauthorized, "token has expired")
				case errors.Is(err, token.ErrIncomplete):
					writeError(ctx, http.StatusForbidden, "token claims are incomplete")
				default:
					writeError(ctx, http.StatusForbidden, "invalid token")
				}
				return
			}

			ctx.SetUserValue(identityKey, claims)
			next(ctx)
		}
	}
}

// RequireRole guards a handler behind an allowed-role set. It must run after
// Authenticate; an unauthenticated request short-circuits before any role
// check happens.
func RequireRole(roles ...domain.Role) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			claims, ok := Identity(ctx)
			if !ok {
				writeError(ctx, http.StatusUnauthorized, "authentication required")
				return
			}
			if _, ok := allowed[claims.Role]; !ok {
				writeError(ctx, http.StatusForbidden, "insufficient role for this action")
				return
			}
			next(ctx)
		}
	}
}

// Identity returns the verified claims attached by Authenticate.
func Identity(ctx *fasthttp.RequestCtx) (*token.Claims, bool) {
	claims, ok := ctx.UserValue(identityKey).(*token.Claims)
	return claims, ok
}

func extractBearer(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(transport.NewError(status, message, ""))
	ctx.SetBody(body)
}
