package school

import "fmt"

// GenerateSample builds a small deterministic school: numTeachers
// teachers, numClasses classes, four subjects, enough rooms, and a
// five-day period grid with a lunch break. Useful for demos and tests.
func GenerateSample(numTeachers, numClasses int) *Input {
	input := &Input{
		Config: Config{
			SchoolName:      "Sample School",
			AcademicYear:    "2026/27",
			NumDays:         DefaultNumDays,
			DefaultDuration: DefaultLessonDuration,
		},
	}

	subjects := []Subject{
		{Id: "sub-math", Name: "Mathematics", Code: "MAT", Department: "STEM"},
		{Id: "sub-eng", Name: "English", Code: "ENG", Department: "Humanities"},
		{Id: "sub-sci", Name: "Science", Code: "SCI", Department: "STEM",
			RequiresSpecialistRoom: true, RequiredRoomType: ScienceLab},
		{Id: "sub-pe", Name: "Physical Education", Code: "PE", Department: "Sports",
			RequiresSpecialistRoom: true, RequiredRoomType: Gym},
	}
	input.Subjects = subjects

	for i := 0; i < numTeachers; i++ {
		input.Teachers = append(input.Teachers, Teacher{
			Id:               fmt.Sprintf("tea-%03d", i),
			Name:             fmt.Sprintf("Teacher %d", i),
			Code:             fmt.Sprintf("T%02d", i),
			Subjects:         []string{subjects[i%len(subjects)].Id},
			MaxPeriodsPerDay: 6,
		})
	}

	for i := 0; i < numClasses; i++ {
		input.Classes = append(input.Classes, StudentClass{
			Id:           fmt.Sprintf("cls-%03d", i),
			Name:         fmt.Sprintf("Class %d", i),
			YearGroup:    7 + i%5,
			StudentCount: 25 + i%6,
			HomeRoom:     fmt.Sprintf("room-%03d", i),
		})
	}

	numRooms := numClasses + 2
	for i := 0; i < numRooms; i++ {
		room := Room{
			Id:       fmt.Sprintf("room-%03d", i),
			Name:     fmt.Sprintf("Room %d", i),
			Type:     Classroom,
			Capacity: 32,
		}
		if i == numRooms-2 {
			room.Type = ScienceLab
			room.Equipment = []string{"fume_hood", "gas_taps"}
		}
		if i == numRooms-1 {
			room.Type = Gym
			room.Capacity = 60
		}
		input.Rooms = append(input.Rooms, room)
	}

	// Six one-hour periods per day with a midday lunch break.
	for day := 0; day < input.Config.NumDays; day++ {
		starts := []int{TimeToMinutes(9, 0), TimeToMinutes(10, 0), TimeToMinutes(11, 0),
			TimeToMinutes(13, 0), TimeToMinutes(14, 0), TimeToMinutes(15, 0)}
		for p, start := range starts {
			input.Periods = append(input.Periods, Period{
				Id:           fmt.Sprintf("per-%d-%d", day, p),
				Name:         fmt.Sprintf("P%d", p+1),
				Day:          day,
				StartMinutes: start,
				EndMinutes:   start + 60,
			})
		}
		input.Periods = append(input.Periods, Period{
			Id:           fmt.Sprintf("per-%d-lunch", day),
			Name:         "Lunch",
			Day:          day,
			StartMinutes: TimeToMinutes(12, 0),
			EndMinutes:   TimeToMinutes(13, 0),
			IsLunch:      true,
		})
	}

	lessonId := 0
	for c, class := range input.Classes {
		for s, subject := range subjects {
			teacher := input.Teachers[(c+s)%numTeachers]
			input.Lessons = append(input.Lessons, Lesson{
				Id:              fmt.Sprintf("les-%03d", lessonId),
				TeacherId:       teacher.Id,
				ClassId:         class.Id,
				SubjectId:       subject.Id,
				DurationMinutes: input.Config.DefaultDuration,
				LessonsPerWeek:  2,
			})
			lessonId++
		}
	}

	return input
}
