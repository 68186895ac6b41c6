package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/vecindapp/auth-service/api/transport"
	"github.com/vecindapp/auth-service/internal/middleware"
	"github.com/vecindapp/auth-service/pkg/httpcontext"
	membershipUC "github.com/vecindapp/auth-service/usecase/membership"
)

type MembershipHandler struct {
	baseHandler
	uc *membershipUC.UseCase
}

func NewMembershipHandler(uc *membershipUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, production bool) *MembershipHandler {
	return &MembershipHandler{
		baseHandler: newBaseHandler(adapter, logger, production),
		uc:          uc,
	}
}

// userIDFor reads the authenticated user id attached by the auth middleware.
func userIDFor(ctx *fasthttp.RequestCtx) int64 {
	if claims, ok := middleware.Identity(ctx); ok {
		return claims.UserID
	}
	return 0
}

// @Summary Submit a membership upgrade request
// @Tags membership
// @Router /api/auth/request-socio [post]
func (h *MembershipHandler) RequestSocio(ctx *fasthttp.RequestCtx) {
	claims, ok := middleware.Identity(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(http.StatusUnauthorized, "authentication required", ""))
		return
	}

	var req transport.SocioRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(http.StatusBadRequest, "invalid payload", ""))
		return
	}
	if err := req.Validate(); err != nil {
		h.respondValidation(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	request, err := h.uc.Request(stdCtx, claims.UserID, req.IdentityDocument, req.ResidencyDocument)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondJSON(ctx, http.StatusCreated, transport.SocioRequestResponse{
		Message: "membership request submitted successfully",
		Data: transport.SocioRequestData{
			UserID:    claims.UserID,
			RequestID: request.ID,
			Timestamp: request.RequestedAt,
		},
	})
}

// @Summary Decide a membership request (board only)
// @Tags membership
// @Router /api/auth/validate-socio-request [post]
func (h *MembershipHandler) ValidateSocioRequest(ctx *fasthttp.RequestCtx) {
	claims, ok := middleware.Identity(ctx)
	if !ok {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(http.StatusUnauthorized, "authentication required", ""))
		return
	}

	var req transport.DecisionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(http.StatusBadRequest, "invalid payload", ""))
		return
	}
	if err := req.Validate(); err != nil {
		h.respondValidation(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	outcome, err := h.uc.Decide(stdCtx, claims.UserID, membershipUC.DecideInput{
		RequestID: req.RequestID,
		Decision:  req.Decision,
		Reason:    req.Reason,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.DecisionResponse{
		Message: "membership request " + outcome.Decision,
		Data: transport.DecisionData{
			RequestID: outcome.RequestID,
			Decision:  outcome.Decision,
			Timestamp: outcome.DecidedAt,
		},
	})
}
