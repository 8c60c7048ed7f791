package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type UserReader interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

type MeHandler struct {
	logger zerolog.Logger
	actors ActorResolver
	users  UserReader
}

func NewMeHandler(logger zerolog.Logger, actors ActorResolver, users UserReader) *MeHandler {
	return &MeHandler{logger: logger, actors: actors, users: users}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor, err := resolveActor(c, h.actors)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), actor.UserID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	body := gin.H{
		"id":     user.ID,
		"name":   user.Name,
		"email":  user.Email,
		"phone":  user.Phone,
		"role":   user.Role,
		"active": user.Active,
	}
	if actor.AuxiliaryOf != 0 {
		body["doctor_id"] = actor.AuxiliaryOf
	}
	c.JSON(http.StatusOK, gin.H{"user": body})
}
