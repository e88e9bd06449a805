package roadmap

import "github.com/abhisek/pathwise/internal/profile"

// DaysPerWeek is the length of a weekly structure.
const DaysPerWeek = 7

// WeeklyStructure splits a week into study and rest days.
type WeeklyStructure struct {
	StudyDays int `json:"studyDays"`
	RestDays  int `json:"restDays"`
}

// Schedule is a daily/weekly study rhythm derived from a profile. The
// weekly split serializes as a nested "weeklyStructure" object.
type Schedule struct {
	DailyHours      float64 `json:"dailyHours"`
	SessionsPerDay  int     `json:"sessionsPerDay"`
	BreakInterval   int     `json:"breakIntervals"` // minutes
	WeeklyStructure `json:"weeklyStructure"`
}

// BuildSchedule derives a study schedule from the profile only; the chosen
// path and timeframe do not affect it.
func BuildSchedule(p profile.Profile) Schedule {
	s := Schedule{
		DailyHours:     max(1, min(8, p.TimeCommitment)),
		SessionsPerDay: 1,
		BreakInterval:  45,
	}
	if p.FocusCapability >= 4 {
		s.SessionsPerDay = 2
		s.BreakInterval = 60
	}

	switch {
	case p.TimeCommitment >= 4:
		s.StudyDays = 6
	case p.TimeCommitment >= 2:
		s.StudyDays = 5
	default:
		s.StudyDays = 4
	}
	s.RestDays = DaysPerWeek - s.StudyDays
	return s
}
