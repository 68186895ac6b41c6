package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/vecindapp/auth-service/api/transport"
	"github.com/vecindapp/auth-service/domain"
	"github.com/vecindapp/auth-service/pkg/httpcontext"
)

type baseHandler struct {
	adapter    *httpcontext.Adapter
	logger     *zap.Logger
	production bool
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger, production bool) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger, production: production}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

// respondError maps a workflow failure onto exactly one response write.
// Internal failures are logged with request context and surfaced as a generic
// message; diagnostic detail leaves the process only outside production.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	code := domain.CodeOf(err)
	status := statusFor(code)

	// The client sees the classified message only; the wrapped cause chain
	// stays in logs and the non-production stack field.
	message := err.Error()
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		message = dErr.Message
	}
	if code == domain.ErrCodeInternal {
		h.logger.Error("request failed",
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Int64("user_id", userIDFor(ctx)),
			zap.Error(err))
		message = "internal server error"
	}

	stack := ""
	if !h.production {
		stack = err.Error()
	}
	h.respondJSON(ctx, status, transport.NewError(status, message, stack))
}

func (h baseHandler) respondValidation(ctx *fasthttp.RequestCtx, err error) {
	stack := ""
	if !h.production {
		stack = err.Error()
	}
	h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(http.StatusBadRequest, err.Error(), stack))
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeValidation, domain.ErrCodeDuplicateRequest:
		return http.StatusBadRequest
	case domain.ErrCodeInvalidCredentials, domain.ErrCodeUnauthenticated, domain.ErrCodeTokenExpired:
		return http.StatusUnauthorized
	case domain.ErrCodeAccountDisabled, domain.ErrCodeForbidden, domain.ErrCodeTokenInvalid, domain.ErrCodeTokenIncomplete:
		return http.StatusForbidden
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeConflict:
		return http.StatusConflict
	case domain.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domain.ErrCodeStoreBusy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
