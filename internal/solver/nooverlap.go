package solver

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/samber/lo"
)

// addNoOverlap forbids double-booking of teachers, classes and rooms.
//
// Teacher and class intervals are fixed, so one global no-overlap per
// entity suffices. Room occupancy depends on the room decision
// variable, so each (instance, admissible room) pair gets an optional
// interval that only exists when the instance lands in that room, and
// every room gets its own no-overlap over those.
func (b *Builder) addNoOverlap() {
	teacherIds, byTeacher := groupInstances(b.all, func(i *LessonInstance) string { return i.Lesson.TeacherId })
	for _, id := range teacherIds {
		b.addEntityNoOverlap(byTeacher[id])
	}

	classIds, byClass := groupInstances(b.all, func(i *LessonInstance) string { return i.Lesson.ClassId })
	for _, id := range classIds {
		b.addEntityNoOverlap(byClass[id])
	}

	for roomIdx := range b.input.Rooms {
		idx := int64(roomIdx)
		var optionals []cpmodel.IntervalVar
		for _, inst := range b.all {
			if !lo.Contains(b.validRooms[inst.Lesson.Id], idx) {
				continue
			}
			ind := b.roomIndicator(inst, idx)
			duration := cpmodel.NewConstant(int64(inst.Lesson.DurationMinutes))
			optionals = append(optionals, b.model.NewOptionalIntervalVar(inst.Start, duration, inst.End, ind))
			b.optionalIntervals++
		}
		if len(optionals) >= 2 {
			b.model.AddNoOverlap(optionals...)
		}
	}
}

func (b *Builder) addEntityNoOverlap(insts []*LessonInstance) {
	if len(insts) < 2 {
		return
	}
	intervals := lo.Map(insts, func(i *LessonInstance, _ int) cpmodel.IntervalVar { return i.Interval })
	b.model.AddNoOverlap(intervals...)
}
