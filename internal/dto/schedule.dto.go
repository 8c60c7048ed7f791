package dto

import "github.com/Cristiand11/portfolio-sub001/internal/models"

type WorkingHoursView struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func NewWorkingHoursViews(rules []models.WorkingHoursRule) []WorkingHoursView {
	out := make([]WorkingHoursView, 0, len(rules))
	for _, r := range rules {
		out = append(out, WorkingHoursView{
			Weekday:   r.Weekday,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}
	return out
}
