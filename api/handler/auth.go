package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/vecindapp/auth-service/api/transport"
	"github.com/vecindapp/auth-service/pkg/httpcontext"
	authUC "github.com/vecindapp/auth-service/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger, production bool) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger, production),
		uc:          uc,
	}
}

// @Summary Register a new resident
// @Tags auth
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
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

	session, err := h.uc.Register(stdCtx, authUC.RegisterInput{
		RUT:       req.RUT,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Password:  req.Password,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondJSON(ctx, http.StatusCreated, transport.SessionResponse{
		Message: "user registered successfully",
		Token:   session.Token,
		Profile: session.Profile,
	})
}

// @Summary Authenticate a resident
// @Tags auth
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
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

	session, err := h.uc.Login(stdCtx, req.RUT, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.SessionResponse{
		Message: "login successful",
		Token:   session.Token,
		Profile: session.Profile,
	})
}
