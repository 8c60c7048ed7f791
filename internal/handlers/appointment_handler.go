package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/dto"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/httpresp"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	ucappointment "github.com/Cristiand11/portfolio-sub001/internal/usecase/appointment"
)

// ======================================================
// DEPENDENCIES
// ======================================================

type (
	CreateExecutor interface {
		Execute(ctx context.Context, in ucappointment.CreateAppointmentInput) (*models.Appointment, error)
	}
	TransitionExecutor interface {
		Execute(ctx context.Context, actor identity.Actor, appointmentID uint) (*models.Appointment, error)
	}
	RescheduleExecutor interface {
		Execute(ctx context.Context, in ucappointment.RequestRescheduleInput) (*models.Appointment, error)
	}
	DateLister interface {
		Execute(ctx context.Context, scope ucappointment.ListScope, date string) ([]dto.AppointmentView, error)
	}
	MonthLister interface {
		Execute(ctx context.Context, scope ucappointment.ListScope, year, month int) ([]dto.AppointmentView, error)
	}
)

type AppointmentUseCases struct {
	Create      CreateExecutor
	Confirm     TransitionExecutor
	Reject      TransitionExecutor
	Cancel      TransitionExecutor
	Complete    TransitionExecutor
	Reschedule  RescheduleExecutor
	ListByDate  DateLister
	ListByMonth MonthLister
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	logger zerolog.Logger
	actors ActorResolver
	uc     AppointmentUseCases
}

func NewAppointmentHandler(
	logger zerolog.Logger,
	actors ActorResolver,
	uc AppointmentUseCases,
) *AppointmentHandler {
	return &AppointmentHandler{
		logger: logger,
		actors: actors,
		uc:     uc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	DoctorID        uint   `json:"doctor_id"`
	PatientID       uint   `json:"patient_id"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes" binding:"max=255"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor, err := resolveActor(c, h.actors)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// The caller's own side may be omitted.
	switch actor.Role {
	case identity.RolePatient:
		if req.PatientID == 0 {
			req.PatientID = actor.UserID
		}
	case identity.RoleDoctor:
		if req.DoctorID == 0 {
			req.DoctorID = actor.UserID
		}
	case identity.RoleAuxiliary:
		if req.DoctorID == 0 {
			req.DoctorID = actor.AuxiliaryOf
		}
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		Actor:           actor,
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentView(ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) scope(c *gin.Context) (ucappointment.ListScope, error) {
	actor, err := resolveActor(c, h.actors)
	if err != nil {
		return ucappointment.ListScope{}, err
	}
	doctorID, err := uintQuery(c, "doctor_id")
	if err != nil {
		return ucappointment.ListScope{}, err
	}
	patientID, err := uintQuery(c, "patient_id")
	if err != nil {
		return ucappointment.ListScope{}, err
	}
	return ucappointment.ListScope{Actor: actor, DoctorID: doctorID, PatientID: patientID}, nil
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	scope, err := h.scope(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	views, err := h.uc.ListByDate.Execute(c.Request.Context(), scope, date)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	httpresp.List(c, views)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	scope, err := h.scope(c)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	year, err := intQuery(c, "year", 0)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	month, err := intQuery(c, "month", 0)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	views, err := h.uc.ListByMonth.Execute(c.Request.Context(), scope, year, month)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	httpresp.List(c, views)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) transition(exec TransitionExecutor) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := resolveActor(c, h.actors)
		if err != nil {
			httperr.Respond(c, h.logger, err)
			return
		}
		id, err := uintParam(c, "id")
		if err != nil {
			httperr.Respond(c, h.logger, err)
			return
		}

		ap, err := exec.Execute(c.Request.Context(), actor, id)
		if err != nil {
			httperr.Respond(c, h.logger, err)
			return
		}
		httpresp.OK(c, dto.NewAppointmentView(ap))
	}
}

func (h *AppointmentHandler) Confirm(c *gin.Context)  { h.transition(h.uc.Confirm)(c) }
func (h *AppointmentHandler) Reject(c *gin.Context)   { h.transition(h.uc.Reject)(c) }
func (h *AppointmentHandler) Cancel(c *gin.Context)   { h.transition(h.uc.Cancel)(c) }
func (h *AppointmentHandler) Complete(c *gin.Context) { h.transition(h.uc.Complete)(c) }

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actor, err := resolveActor(c, h.actors)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	id, err := uintParam(c, "id")
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.uc.Reschedule.Execute(c.Request.Context(), ucappointment.RequestRescheduleInput{
		Actor:         actor,
		AppointmentID: id,
		NewDate:       req.Date,
		NewTime:       req.Time,
	})
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	httpresp.OK(c, dto.NewAppointmentView(ap))
}
