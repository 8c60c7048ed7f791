package schedule

import (
	"context"

	domain "github.com/Cristiand11/portfolio-sub001/internal/domain/appointment"
	"github.com/Cristiand11/portfolio-sub001/internal/models"
)

type GetWeeklySchedule struct {
	repo domain.ScheduleRepository
}

func NewGetWeeklySchedule(repo domain.ScheduleRepository) *GetWeeklySchedule {
	return &GetWeeklySchedule{repo: repo}
}

func (uc *GetWeeklySchedule) Execute(ctx context.Context, doctorID uint) ([]models.WorkingHoursRule, error) {
	if _, err := uc.repo.GetUser(ctx, doctorID); err != nil {
		return nil, err
	}
	return uc.repo.ListAllWorkingHours(ctx, doctorID)
}
