package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"discovery-space/internal/config"
	"discovery-space/internal/db"
)

// Report summarises member attendance between Start and End. MaxDate is
// Start when no day had any visits.
type Report struct {
	Start        time.Time
	End          time.Time
	TotalVisits  int
	VisitsPerDay float64
	MaxDate      time.Time
	MaxVisits    int
}

// ReportRange turns the MM/DD/YYYY form inputs into a report window. A blank
// start means the deployment date and a blank end means now; a given end
// date is inclusive, so one day is added to it.
func ReportRange(startRaw, endRaw string, deployDate, now time.Time) (time.Time, time.Time, error) {
	start := deployDate
	if raw := strings.TrimSpace(startRaw); raw != "" {
		parsed, err := config.ParseDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, invalid("Invalid date format. Use MM/DD/YYYY.")
		}
		start = parsed
	}
	if start.After(now) {
		return time.Time{}, time.Time{}, invalid("Invalid start date. Start date must be earlier than today.")
	}
	end := now
	if raw := strings.TrimSpace(endRaw); raw != "" {
		parsed, err := config.ParseDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, invalid("Invalid date format. Use MM/DD/YYYY.")
		}
		end = parsed.AddDate(0, 0, 1)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, invalid("Invalid end date. End date must be later than start date.")
	}
	return start, end, nil
}

// AttendanceReport counts visits strictly between start and end and finds the
// calendar day, stepping from start in start's location, with the most visits.
// Ties keep the earliest day.
func (s *MemberService) AttendanceReport(ctx context.Context, start, end time.Time) (Report, error) {
	report := Report{Start: start, End: end, MaxDate: start}
	var dates []time.Time
	err := s.db.WithContext(ctx).Model(&db.MemberVisit{}).
		Where("date > ? AND date < ?", start, end).
		Order("date asc").
		Pluck("date", &dates).Error
	if err != nil {
		return Report{}, err
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	report.TotalVisits = len(dates)
	if days := calendarDays(start, end); days > 0 {
		report.VisitsPerDay = float64(report.TotalVisits) / float64(days)
	}

	for date := start; date.Before(end); date = date.AddDate(0, 0, 1) {
		next := date.AddDate(0, 0, 1)
		from := sort.Search(len(dates), func(i int) bool { return dates[i].After(date) })
		to := sort.Search(len(dates), func(i int) bool { return !dates[i].Before(next) })
		if count := to - from; count > report.MaxVisits {
			report.MaxVisits = count
			report.MaxDate = date
		}
	}
	return report, nil
}

// calendarDays counts whole calendar days from start to end in start's
// location.
func calendarDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	for !start.AddDate(0, 0, days+1).After(end) {
		days++
	}
	for days > 0 && start.AddDate(0, 0, days).After(end) {
		days--
	}
	return days
}
