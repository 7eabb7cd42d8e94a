package solver

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// createVariables expands every lesson into lessonsPerWeek instances
// and builds their start/end/interval/day/room variables.
//
// Starts are restricted with an allowed-values table to the week
// offsets of schedulable periods long enough for the lesson. An empty
// slot set forces start == -1, outside the start domain, so the engine
// proves infeasibility instead of accepting an invalid start.
func (b *Builder) createVariables() {
	numRooms := int64(len(b.input.Rooms))

	for _, lesson := range b.input.Lessons {
		duration := int64(lesson.DurationMinutes)
		starts := allowedStarts(b.input, lesson.DurationMinutes)

		startUb := b.horizon - duration
		if startUb < 0 {
			startUb = 0
		}

		b.order = append(b.order, lesson.Id)
		for i := 0; i < lesson.LessonsPerWeek; i++ {
			inst := &LessonInstance{Lesson: lesson, Index: i}

			inst.Start = b.model.NewIntVar(0, startUb)
			inst.End = b.model.NewIntVar(0, b.horizon)
			b.model.AddEquality(inst.End, cpmodel.NewLinearExpr().Add(inst.Start).AddConstant(duration))

			inst.Interval = b.model.NewIntervalVar(inst.Start, cpmodel.NewConstant(duration), inst.End)

			inst.Day = b.model.NewIntVar(0, int64(b.numDays-1))
			b.model.AddDivisionEquality(inst.Day, inst.Start, cpmodel.NewConstant(minutesPerDay))

			if numRooms > 0 {
				inst.Room = b.model.NewIntVar(0, numRooms-1)
			} else {
				// Zero rooms leaves every admissible set empty; the
				// suitability stage posts -1 against this domain and
				// the engine proves infeasibility.
				inst.Room = b.model.NewIntVar(0, 0)
			}

			if len(starts) == 0 {
				b.model.AddEquality(inst.Start, cpmodel.NewConstant(-1))
			} else {
				table := b.model.AddAllowedAssignments(inst.Start)
				for _, s := range starts {
					table.AddTuple(s)
				}
			}

			b.instances[lesson.Id] = append(b.instances[lesson.Id], inst)
			b.all = append(b.all, inst)
		}
	}
}
