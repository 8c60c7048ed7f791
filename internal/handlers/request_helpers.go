package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/middleware"
)

type ActorResolver interface {
	Execute(ctx context.Context, userID uint, role string) (identity.Actor, error)
}

// resolveActor builds the Actor from the token claims set by AuthMiddleware.
func resolveActor(c *gin.Context, resolver ActorResolver) (identity.Actor, error) {
	userID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return identity.Actor{}, httperr.ErrUnauthorized("user_not_in_context")
	}
	id, ok := userID.(uint)
	if !ok {
		return identity.Actor{}, httperr.ErrUnauthorized("invalid_user_id_type")
	}
	return resolver.Execute(c.Request.Context(), id, c.GetString(middleware.ContextUserRole))
}

func uintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, httperr.ErrValidation("invalid_" + name)
	}
	return uint(v), nil
}

// uintQuery returns 0 when the parameter is absent.
func uintQuery(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, httperr.ErrValidation("invalid_" + name)
	}
	return uint(v), nil
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, httperr.ErrValidation("invalid_" + name)
	}
	return v, nil
}
