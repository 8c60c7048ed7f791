package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	ucauth "github.com/Cristiand11/portfolio-sub001/internal/usecase/auth"
)

type LoginExecutor interface {
	Execute(ctx context.Context, in ucauth.LoginInput) (*ucauth.LoginOutput, error)
}

type AuthHandler struct {
	logger zerolog.Logger
	login  LoginExecutor
}

func NewAuthHandler(logger zerolog.Logger, login LoginExecutor) *AuthHandler {
	return &AuthHandler{logger: logger, login: login}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	out, err := h.login.Execute(c.Request.Context(), ucauth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    out.User.ID,
			"name":  out.User.Name,
			"email": out.User.Email,
			"role":  out.User.Role,
		},
		"token":      out.Token,
		"expires_at": out.ExpiresAt,
	})
}
