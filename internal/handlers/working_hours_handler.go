package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/dto"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/httpresp"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	"github.com/Cristiand11/portfolio-sub001/internal/usecase/schedule"
)

type (
	ScheduleReplacer interface {
		Execute(ctx context.Context, in schedule.ReplaceWeeklyScheduleInput) ([]models.WorkingHoursRule, error)
	}
	ScheduleReader interface {
		Execute(ctx context.Context, doctorID uint) ([]models.WorkingHoursRule, error)
	}
	AvailabilityReader interface {
		Execute(ctx context.Context, doctorID uint, date string, durationMinutes int) ([]domain.TimeSlot, error)
	}
)

type WorkingHoursHandler struct {
	logger       zerolog.Logger
	actors       ActorResolver
	replace      ScheduleReplacer
	get          ScheduleReader
	availability AvailabilityReader
}

func NewWorkingHoursHandler(
	logger zerolog.Logger,
	actors ActorResolver,
	replace ScheduleReplacer,
	get ScheduleReader,
	availability AvailabilityReader,
) *WorkingHoursHandler {
	return &WorkingHoursHandler{
		logger:       logger,
		actors:       actors,
		replace:      replace,
		get:          get,
		availability: availability,
	}
}

type WorkingHoursUpdateRequest struct {
	Rules []domain.WeeklyRule `json:"rules" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	doctorID, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	rules, err := h.get.Execute(c.Request.Context(), doctorID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	httpresp.List(c, dto.NewWorkingHoursViews(rules))
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	actor, err := resolveActor(c, h.actors)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	doctorID, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rules, err := h.replace.Execute(c.Request.Context(), schedule.ReplaceWeeklyScheduleInput{
		Actor:    actor,
		DoctorID: doctorID,
		Rules:    req.Rules,
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	httpresp.List(c, dto.NewWorkingHoursViews(rules))
}

func (h *WorkingHoursHandler) Availability(c *gin.Context) {
	doctorID, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}
	duration, err := intQuery(c, "duration", 0)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), doctorID, date, duration)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	httpresp.List(c, slots)
}
