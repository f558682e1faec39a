package service

import (
	"time"

	"love-days-go/internal/model"
)

// AnniversaryService 计算从纪念日起始日期到今天的天数。
type AnniversaryService interface {
	Since(now time.Time) model.AnniversaryResponse
}

type anniversaryService struct {
	start time.Time
	loc   *time.Location
}

// NewAnniversaryService 创建一个新的 AnniversaryService。start 只取日期部分。
func NewAnniversaryService(start time.Time, loc *time.Location) AnniversaryService {
	return &anniversaryService{start: start, loc: loc}
}

func (s *anniversaryService) Since(now time.Time) model.AnniversaryResponse {
	today := now.In(s.loc)
	return model.AnniversaryResponse{
		StartDate:  model.LocalDate(s.start),
		Today:      model.LocalDate(today),
		Days:       DaysBetween(s.start, today),
		TodayLabel: today.Format("Monday, January 2, 2006"),
	}
}

// DaysBetween 按日历日计算 from 到 to 的天数，两者各自取所在时区的日期，to 早于 from 时为负数。
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
