package report

import (
	"github.com/nikitaxru/rapor/model"
)

// Distribution counts letter grades. Grades without a letter are not counted.
type Distribution struct {
	A, B, C, D, E int
}

func GradeDistribution(grades []model.Grade) Distribution {
	var d Distribution
	for _, g := range grades {
		if g.Grade == nil {
			continue
		}
		switch *g.Grade {
		case model.GradeA:
			d.A++
		case model.GradeB:
			d.B++
		case model.GradeC:
			d.C++
		case model.GradeD:
			d.D++
		case model.GradeE:
			d.E++
		}
	}
	return d
}

// AverageTotal is the mean of TotalScore, 0 for no grades.
func AverageTotal(grades []model.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += g.TotalScore
	}
	return sum / float64(len(grades))
}

type AttendanceSummary struct {
	Present    int
	Absent     int
	Sick       int
	Permission int
	Total      int
	// Percentage is Present/Total*100, 0 when Total is 0.
	Percentage float64
}

func SummarizeAttendance(records []model.Attendance) AttendanceSummary {
	s := AttendanceSummary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case model.StatusPresent:
			s.Present++
		case model.StatusAbsent:
			s.Absent++
		case model.StatusSick:
			s.Sick++
		case model.StatusPermission:
			s.Permission++
		}
	}
	if s.Total > 0 {
		s.Percentage = float64(s.Present) / float64(s.Total) * 100
	}
	return s
}

// GroupByDay buckets schedules by day of week; index 0 is Monday. Rows with a day
// outside 1..7 are dropped. Order within a bucket is preserved.
func GroupByDay(schedules []model.Schedule) [7][]model.Schedule {
	var days [7][]model.Schedule
	for _, s := range schedules {
		if s.DayOfWeek < 1 || s.DayOfWeek > 7 {
			continue
		}
		days[s.DayOfWeek-1] = append(days[s.DayOfWeek-1], s)
	}
	return days
}
