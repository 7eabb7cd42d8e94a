package solver

// Weights configures the soft-constraint costs and the thresholds the
// encoders gate on. A zero weight disables the matching penalty.
type Weights struct {
	TeacherDailyOverflow  int64
	ClassDailyOverflow    int64
	TeacherWeeklyOverflow int64
	TeacherGap            int64
	ClassGap              int64
	LateFinish            int64
	SameDaySubject        int64
	DayGapShortfall       int64
	UnevenDistribution    int64
	ConsecutiveDays       int64
	WorkloadImbalance     int64
	Fragmentation         int64
	NonPreferredRoom      int64
	RoomInconsistency     int64

	// ClassDailyMax caps lessons per class per day; 0 disables the cap.
	ClassDailyMax int
	// MinLessonsPerDay is the fragmentation floor for a non-empty day.
	MinLessonsPerDay int
	// GapLessonThreshold is the minimum lesson count on a day before
	// idle time between lessons is counted.
	GapLessonThreshold int
	// MinGapDays is the desired minimum spacing between two instances
	// of the same lesson.
	MinGapDays int
	// LateFinishAfter is the minute of day past which a teacher's last
	// lesson end is penalized.
	LateFinishAfter int
}

func DefaultWeights() Weights {
	return Weights{
		TeacherDailyOverflow:  100,
		ClassDailyOverflow:    100,
		TeacherWeeklyOverflow: 150,
		TeacherGap:            1,
		ClassGap:              1,
		LateFinish:            1,
		SameDaySubject:        20,
		DayGapShortfall:       10,
		UnevenDistribution:    5,
		ConsecutiveDays:       20,
		WorkloadImbalance:     5,
		Fragmentation:         10,
		NonPreferredRoom:      10,
		RoomInconsistency:     5,

		MinLessonsPerDay:   2,
		GapLessonThreshold: 2,
		MinGapDays:         1,
		LateFinishAfter:    15 * 60,
	}
}
