package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"timetable/internal/school"
)

func roomFilterInput() *school.Input {
	return &school.Input{
		Config:   school.Config{NumDays: 5},
		Teachers: []school.Teacher{{Id: "t1"}},
		Classes:  []school.StudentClass{{Id: "c1", StudentCount: 28}},
		Subjects: []school.Subject{{Id: "s1", Name: "Science"}},
		Rooms: []school.Room{
			{Id: "r0", Type: school.Classroom, Capacity: 30},
			{Id: "r1", Type: school.Classroom, Capacity: 20},
			{Id: "r2", Type: school.ScienceLab, Capacity: 30, Equipment: []string{"fume_hood"}},
			{Id: "r3", Type: school.ScienceLab, Capacity: 30},
		},
	}
}

func TestAdmissibleRooms(t *testing.T) {
	input := roomFilterInput()
	builder := NewBuilder(input, DefaultWeights())

	t.Run("capacity falls back to class size", func(t *testing.T) {
		// Arrange
		lesson := school.Lesson{Id: "l1", TeacherId: "t1", ClassId: "c1", SubjectId: "s1"}

		// Act
		valid, _ := builder.admissibleRooms(lesson)

		// Assert: r1 holds 20 but the class has 28 students.
		assert.Equal(t, []int64{0, 2, 3}, valid)
	})

	t.Run("explicit minimum capacity overrides class size", func(t *testing.T) {
		// Arrange
		lesson := school.Lesson{
			Id: "l1", TeacherId: "t1", ClassId: "c1", SubjectId: "s1",
			RoomRequirement: &school.RoomRequirement{MinCapacity: 10},
		}

		// Act
		valid, _ := builder.admissibleRooms(lesson)

		// Assert
		assert.Equal(t, []int64{0, 1, 2, 3}, valid)
	})

	t.Run("required type filters by subject", func(t *testing.T) {
		// Arrange
		input := roomFilterInput()
		input.Subjects[0].RequiresSpecialistRoom = true
		input.Subjects[0].RequiredRoomType = school.ScienceLab
		builder := NewBuilder(input, DefaultWeights())
		lesson := school.Lesson{Id: "l1", TeacherId: "t1", ClassId: "c1", SubjectId: "s1"}

		// Act
		valid, _ := builder.admissibleRooms(lesson)

		// Assert
		assert.Equal(t, []int64{2, 3}, valid)
	})

	t.Run("lesson requirement overrides subject type", func(t *testing.T) {
		// Arrange
		input := roomFilterInput()
		input.Subjects[0].RequiresSpecialistRoom = true
		input.Subjects[0].RequiredRoomType = school.ScienceLab
		builder := NewBuilder(input, DefaultWeights())
		lesson := school.Lesson{
			Id: "l1", TeacherId: "t1", ClassId: "c1", SubjectId: "s1",
			RoomRequirement: &school.RoomRequirement{RoomType: school.Classroom},
		}

		// Act
		valid, _ := builder.admissibleRooms(lesson)

		// Assert
		assert.Equal(t, []int64{0}, valid)
	})

	t.Run("exclusion beats the required list", func(t *testing.T) {
		// Arrange
		lesson := school.Lesson{
			Id: "l1", TeacherId: "t1", ClassId: "c1", SubjectId: "s1",
			RoomRequirement: &school.RoomRequirement{
				PreferredRooms: []string{"r0", "r3"},
				ExcludedRooms:  []string{"r0"},
			},
		}

		// Act
		valid, reasons := builder.admissibleRooms(lesson)

		// Assert
		assert.Equal(t, []int64{3}, valid)
		assert.Contains(t, reasons, "r0: excluded")
	})

	t.Run("equipment must be a subset", func(t *testing.T) {
		// Arrange
		lesson := school.Lesson{
			Id: "l1", TeacherId: "t1", ClassId: "c1", SubjectId: "s1",
			RoomRequirement: &school.RoomRequirement{
				RoomType:          school.ScienceLab,
				RequiresEquipment: []string{"fume_hood"},
			},
		}

		// Act
		valid, _ := builder.admissibleRooms(lesson)

		// Assert: only r2 carries the fume hood.
		assert.Equal(t, []int64{2}, valid)
	})

	t.Run("empty set is reported with reasons", func(t *testing.T) {
		// Arrange
		input := roomFilterInput()
		input.Lessons = []school.Lesson{{
			Id: "l1", TeacherId: "t1", ClassId: "c1", SubjectId: "s1",
			LessonsPerWeek: 1, DurationMinutes: 60,
			RoomRequirement: &school.RoomRequirement{RoomType: school.Gym},
		}}
		builder := NewBuilder(input, DefaultWeights())

		// Act
		err := builder.Build()

		// Assert
		assert.NoError(t, err)
		rejections := builder.UnroomableLessons()
		assert.Len(t, rejections, 1)
		assert.Equal(t, "l1", rejections[0].LessonId)
		assert.Len(t, rejections[0].Reasons, len(input.Rooms))
	})
}
