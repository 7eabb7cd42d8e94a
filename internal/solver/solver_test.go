package solver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"timetable/internal/school"
)

func testOptions() Options {
	return Options{TimeLimit: 10 * time.Second, Workers: 4}
}

func period(id string, day, startHour int) school.Period {
	return school.Period{
		Id:           id,
		Day:          day,
		StartMinutes: startHour * 60,
		EndMinutes:   startHour*60 + 60,
	}
}

func singleLessonInput(lessonsPerWeek int, periods []school.Period) *school.Input {
	return &school.Input{
		Config:   school.Config{NumDays: 5},
		Teachers: []school.Teacher{{Id: "t1", Name: "Teacher 1"}},
		Classes:  []school.StudentClass{{Id: "c1", Name: "Class 1", StudentCount: 25}},
		Subjects: []school.Subject{{Id: "s1", Name: "Mathematics"}},
		Rooms:    []school.Room{{Id: "r1", Name: "Room 1", Type: school.Classroom, Capacity: 30}},
		Lessons: []school.Lesson{{
			Id: "l1", TeacherId: "t1", ClassId: "c1", SubjectId: "s1",
			DurationMinutes: 60, LessonsPerWeek: lessonsPerWeek,
		}},
		Periods: periods,
	}
}

func solve(t *testing.T, input *school.Input) *Solution {
	t.Helper()
	builder := NewBuilder(input, DefaultWeights())
	err := builder.Build()
	assert.NoError(t, err)
	solution, err := builder.Solve(testOptions())
	assert.NoError(t, err)
	return solution
}

func TestTwoInstancesAcrossTwoDays(t *testing.T) {
	// Arrange: one teacher, class and room, a twice-weekly lesson, and
	// exactly two disjoint periods on different days.
	input := singleLessonInput(2, []school.Period{
		period("p1", 0, 9),
		period("p2", 1, 9),
	})

	// Act
	solution := solve(t, input)

	// Assert: both instances scheduled, one per period, no overlap.
	assert.True(t, solution.Status.Usable())
	assert.Len(t, solution.Assignments, 2)
	assert.NotEqual(t, solution.Assignments[0].Day, solution.Assignments[1].Day)
	for _, a := range solution.Assignments {
		assert.Equal(t, 9*60, a.StartMinutes)
		assert.Equal(t, 10*60, a.EndMinutes)
		assert.Equal(t, "r1", a.RoomId)
	}
}

func TestUnavailableTeacherPushedToFreeDay(t *testing.T) {
	// Arrange: the only Monday period is blocked for the teacher.
	input := singleLessonInput(1, []school.Period{
		period("p1", 0, 9),
		period("p2", 1, 9),
	})
	input.Teachers[0].Availability = []school.Availability{
		{Day: 0, StartMinutes: 9 * 60, EndMinutes: 10 * 60, Available: false, Reason: "staff meeting"},
	}

	// Act
	solution := solve(t, input)

	// Assert
	assert.True(t, solution.Status.Usable())
	assert.Len(t, solution.Assignments, 1)
	assert.Equal(t, 1, solution.Assignments[0].Day)
}

func TestDailyLimitSpreadsLessons(t *testing.T) {
	// Arrange: four weekly instances, two days with two periods each,
	// and a hard-weighted cap of two lessons per teacher per day.
	input := singleLessonInput(4, []school.Period{
		period("p1", 0, 9), period("p2", 0, 10),
		period("p3", 1, 9), period("p4", 1, 10),
	})
	input.Teachers[0].MaxPeriodsPerDay = 2

	// Act
	solution := solve(t, input)

	// Assert: exactly two instances per day.
	assert.True(t, solution.Status.Usable())
	assert.Len(t, solution.Assignments, 4)
	perDay := map[int]int{}
	for _, a := range solution.Assignments {
		perDay[a.Day]++
	}
	assert.Equal(t, map[int]int{0: 2, 1: 2}, perDay)
}

func TestMissingSpecialistRoomIsInfeasible(t *testing.T) {
	// Arrange: the subject demands a science lab but only classrooms
	// exist.
	input := singleLessonInput(1, []school.Period{period("p1", 0, 9)})
	input.Subjects[0].RequiresSpecialistRoom = true
	input.Subjects[0].RequiredRoomType = school.ScienceLab

	builder := NewBuilder(input, DefaultWeights())

	// Act
	err := builder.Build()
	assert.NoError(t, err)
	solution, err := builder.Solve(testOptions())
	assert.NoError(t, err)

	// Assert: diagnostics name the lesson, and the engine proves
	// infeasibility instead of assigning a wrong-type room.
	rejections := builder.UnroomableLessons()
	assert.Len(t, rejections, 1)
	assert.Equal(t, "l1", rejections[0].LessonId)
	assert.NotEmpty(t, rejections[0].Reasons)
	assert.Equal(t, StatusInfeasible, solution.Status)
	assert.Empty(t, solution.Assignments)
}

func TestMoreInstancesThanSlotsIsInfeasible(t *testing.T) {
	// Arrange: three instances, two schedulable slots.
	input := singleLessonInput(3, []school.Period{
		period("p1", 0, 9),
		period("p2", 1, 9),
	})

	// Act
	solution := solve(t, input)

	// Assert
	assert.Equal(t, StatusInfeasible, solution.Status)
	assert.Empty(t, solution.Assignments)
}

func TestNoSlotLongEnoughIsInfeasible(t *testing.T) {
	// Arrange: a double-length lesson against sixty-minute periods.
	input := singleLessonInput(1, []school.Period{
		period("p1", 0, 9),
		period("p2", 1, 9),
	})
	input.Lessons[0].DurationMinutes = 120

	// Act
	solution := solve(t, input)

	// Assert
	assert.Equal(t, StatusInfeasible, solution.Status)
	assert.Empty(t, solution.Assignments)
}

func TestInstanceInvariants(t *testing.T) {
	// Arrange
	input := singleLessonInput(2, []school.Period{
		period("p1", 0, 9), period("p2", 0, 10),
		period("p3", 2, 9), period("p4", 3, 11),
	})

	// Act
	solution := solve(t, input)

	// Assert: duration and day derivation hold for every assignment.
	assert.True(t, solution.Status.Usable())
	for _, a := range solution.Assignments {
		assert.Equal(t, input.Lessons[0].DurationMinutes, a.EndMinutes-a.StartMinutes)
		assert.GreaterOrEqual(t, a.Day, 0)
		assert.Less(t, a.Day, input.Config.NumDays)
	}
}

func TestSharedRoomNeverDoubleBooked(t *testing.T) {
	// Arrange: two teacher/class pairs compete for a single room.
	input := &school.Input{
		Config: school.Config{NumDays: 5},
		Teachers: []school.Teacher{
			{Id: "t1", Name: "Teacher 1"},
			{Id: "t2", Name: "Teacher 2"},
		},
		Classes: []school.StudentClass{
			{Id: "c1", Name: "Class 1", StudentCount: 20},
			{Id: "c2", Name: "Class 2", StudentCount: 20},
		},
		Subjects: []school.Subject{{Id: "s1", Name: "English"}},
		Rooms:    []school.Room{{Id: "r1", Name: "Room 1", Type: school.Classroom, Capacity: 30}},
		Lessons: []school.Lesson{
			{Id: "l1", TeacherId: "t1", ClassId: "c1", SubjectId: "s1", DurationMinutes: 60, LessonsPerWeek: 1},
			{Id: "l2", TeacherId: "t2", ClassId: "c2", SubjectId: "s1", DurationMinutes: 60, LessonsPerWeek: 1},
		},
		Periods: []school.Period{period("p1", 0, 9), period("p2", 0, 10)},
	}

	// Act
	solution := solve(t, input)

	// Assert: both land in r1 at distinct times.
	assert.True(t, solution.Status.Usable())
	assert.Len(t, solution.Assignments, 2)
	assert.NotEqual(t, solution.Assignments[0].StartMinutes, solution.Assignments[1].StartMinutes)
	for _, a := range solution.Assignments {
		assert.Equal(t, "r1", a.RoomId)
	}
}

func TestSpecialistLessonGetsMatchingRoom(t *testing.T) {
	// Arrange: classroom and lab available, subject requires the lab.
	input := singleLessonInput(1, []school.Period{period("p1", 0, 9)})
	input.Rooms = append(input.Rooms, school.Room{
		Id: "r2", Name: "Lab", Type: school.ScienceLab, Capacity: 30,
	})
	input.Subjects[0].RequiresSpecialistRoom = true
	input.Subjects[0].RequiredRoomType = school.ScienceLab

	// Act
	solution := solve(t, input)

	// Assert
	assert.True(t, solution.Status.Usable())
	assert.Len(t, solution.Assignments, 1)
	assert.Equal(t, "r2", solution.Assignments[0].RoomId)
}

func TestPreferredRoomChosenWhenFree(t *testing.T) {
	// Arrange: two equivalent rooms, the teacher prefers the second.
	input := singleLessonInput(1, []school.Period{period("p1", 0, 9)})
	input.Rooms = append(input.Rooms, school.Room{
		Id: "r2", Name: "Room 2", Type: school.Classroom, Capacity: 30,
	})
	input.Teachers[0].PreferredRooms = []string{"r2"}

	// Act
	solution := solve(t, input)

	// Assert: the preference penalty steers the optimum into r2.
	assert.Equal(t, StatusOptimal, solution.Status)
	assert.Equal(t, "r2", solution.Assignments[0].RoomId)
	assert.NotContains(t, solution.Penalties, "non_preferred_room[l1#0]")
}

func TestLessonInstancesShareRoom(t *testing.T) {
	// Arrange: twice-weekly lesson, two interchangeable rooms; the
	// consistency penalty should keep both instances together.
	input := singleLessonInput(2, []school.Period{
		period("p1", 0, 9),
		period("p2", 2, 9),
	})
	input.Rooms = append(input.Rooms, school.Room{
		Id: "r2", Name: "Room 2", Type: school.Classroom, Capacity: 30,
	})

	// Act
	solution := solve(t, input)

	// Assert
	assert.Equal(t, StatusOptimal, solution.Status)
	assert.Len(t, solution.Assignments, 2)
	assert.Equal(t, solution.Assignments[0].RoomId, solution.Assignments[1].RoomId)
}

func TestBreakPeriodNeverUsed(t *testing.T) {
	// Arrange: one schedulable period and one lunch slot.
	input := singleLessonInput(1, []school.Period{
		period("p1", 0, 9),
		{Id: "lunch", Day: 0, StartMinutes: 12 * 60, EndMinutes: 13 * 60, IsLunch: true},
	})

	// Act
	solution := solve(t, input)

	// Assert
	assert.True(t, solution.Status.Usable())
	assert.Len(t, solution.Assignments, 1)
	assert.Equal(t, 9*60, solution.Assignments[0].StartMinutes)
}

func TestBuilderIsSingleUse(t *testing.T) {
	// Arrange
	input := singleLessonInput(1, []school.Period{period("p1", 0, 9)})
	builder := NewBuilder(input, DefaultWeights())

	// Act
	first := builder.Build()
	second := builder.Build()

	// Assert
	assert.NoError(t, first)
	assert.Error(t, second)
}

func TestSolveBeforeBuildFails(t *testing.T) {
	// Arrange
	builder := NewBuilder(singleLessonInput(1, nil), DefaultWeights())

	// Act
	solution, err := builder.Solve(testOptions())

	// Assert
	assert.Error(t, err)
	assert.Nil(t, solution)
}

func TestStatsCountInstances(t *testing.T) {
	// Arrange
	input := singleLessonInput(3, []school.Period{
		period("p1", 0, 9), period("p2", 1, 9), period("p3", 2, 9),
	})
	builder := NewBuilder(input, DefaultWeights())

	// Act
	err := builder.Build()

	// Assert
	assert.NoError(t, err)
	stats := builder.Stats()
	assert.Equal(t, 3, stats.LessonInstances)
	assert.Equal(t, 3, stats.AdmissibleRooms)
	assert.Greater(t, stats.PenaltyTerms, 0)
}
