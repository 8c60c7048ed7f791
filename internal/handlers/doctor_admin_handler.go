package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Cristiand11/portfolio-sub001/internal/domain/identity"
	"github.com/Cristiand11/portfolio-sub001/internal/httperr"
	"github.com/Cristiand11/portfolio-sub001/internal/httpresp"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
	ucdoctor "github.com/Cristiand11/portfolio-sub001/internal/usecase/doctor"
)

type (
	InactivationExecutor interface {
		Execute(ctx context.Context, actor identity.Actor, doctorID uint) (*models.DoctorProfile, error)
	}
	InactivationMetricReader interface {
		Execute(ctx context.Context, actor identity.Actor, days int) (*ucdoctor.InactivationMetric, error)
	}
)

type DoctorAdminHandler struct {
	logger  zerolog.Logger
	actors  ActorResolver
	request InactivationExecutor
	revert  InactivationExecutor
	metric  InactivationMetricReader
}

func NewDoctorAdminHandler(
	logger zerolog.Logger,
	actors ActorResolver,
	request InactivationExecutor,
	revert InactivationExecutor,
	metric InactivationMetricReader,
) *DoctorAdminHandler {
	return &DoctorAdminHandler{
		logger:  logger,
		actors:  actors,
		request: request,
		revert:  revert,
		metric:  metric,
	}
}

func (h *DoctorAdminHandler) run(c *gin.Context, exec InactivationExecutor) {
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

	profile, err := exec.Execute(c.Request.Context(), actor, doctorID)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	httpresp.OK(c, profile)
}

func (h *DoctorAdminHandler) RequestInactivation(c *gin.Context) { h.run(c, h.request) }
func (h *DoctorAdminHandler) RevertInactivation(c *gin.Context)  { h.run(c, h.revert) }

func (h *DoctorAdminHandler) Dashboard(c *gin.Context) {
	actor, err := resolveActor(c, h.actors)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	days, err := intQuery(c, "days", 5)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}

	m, err := h.metric.Execute(c.Request.Context(), actor, days)
	if err != nil {
		httperr.Respond(c, h.logger, err)
		return
	}
	httpresp.OK(c, m)
}
