package solver

import (
	"github.com/samber/lo"

	"timetable/internal/school"
)

const minutesPerDay = int64(school.MinutesPerDay)

// weekOffset maps a (day, minute-of-day) pair onto the single
// week-minute axis all decision variables live on.
func weekOffset(day, minutes int) int64 {
	return int64(day)*minutesPerDay + int64(minutes)
}

func dayOf(weekMinutes int64) int {
	return int(weekMinutes / minutesPerDay)
}

func minuteOfDay(weekMinutes int64) int {
	return int(weekMinutes % minutesPerDay)
}

// allowedStarts lists the week-minute offsets of schedulable periods
// long enough to host a lesson of the given duration.
func allowedStarts(input *school.Input, durationMinutes int) []int64 {
	periods := lo.Filter(input.SchedulablePeriods(), func(p school.Period, _ int) bool {
		return p.Duration() >= durationMinutes && p.Day < input.Config.NumDays
	})
	return lo.Map(periods, func(p school.Period, _ int) int64 {
		return weekOffset(p.Day, p.StartMinutes)
	})
}

// dayBounds reports the earliest schedulable start and latest end on a
// day, in minutes of day. ok is false when the day has no periods.
func dayBounds(input *school.Input, day int) (start, end int, ok bool) {
	periods := lo.Filter(input.PeriodsOn(day), func(p school.Period, _ int) bool {
		return p.Schedulable()
	})
	if len(periods) == 0 {
		return 0, 0, false
	}
	start = lo.MinBy(periods, func(a, b school.Period) bool {
		return a.StartMinutes < b.StartMinutes
	}).StartMinutes
	end = lo.MaxBy(periods, func(a, b school.Period) bool {
		return a.EndMinutes > b.EndMinutes
	}).EndMinutes
	return start, end, true
}
