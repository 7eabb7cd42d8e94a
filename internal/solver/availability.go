package solver

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/samber/lo"

	"timetable/internal/school"
)

// addAvailability keeps every instance out of unavailability windows,
// inside school-day bounds, and clear of breaks and lunches.
func (b *Builder) addAvailability() {
	b.addTeacherClassWindows()
	b.addRoomWindows()
	b.addSchoolDayBounds()
	b.addBreakWindows()
}

func (b *Builder) addTeacherClassWindows() {
	for _, teacher := range b.input.Teachers {
		insts := lo.Filter(b.all, func(i *LessonInstance, _ int) bool {
			return i.Lesson.TeacherId == teacher.Id
		})
		b.forbidWindows(insts, teacher.Availability)
	}
	for _, class := range b.input.Classes {
		insts := lo.Filter(b.all, func(i *LessonInstance, _ int) bool {
			return i.Lesson.ClassId == class.Id
		})
		b.forbidWindows(insts, class.Availability)
	}
}

func (b *Builder) forbidWindows(insts []*LessonInstance, windows []school.Availability) {
	for _, win := range windows {
		if win.Available || win.Day >= b.numDays {
			continue
		}
		winStart := weekOffset(win.Day, win.StartMinutes)
		winEnd := weekOffset(win.Day, win.EndMinutes)
		for _, inst := range insts {
			b.forbidWindow(inst, winStart, winEnd)
		}
	}
}

// addRoomWindows posts room unavailability gated behind the room
// indicator: the window only binds when the instance actually lands in
// that room.
func (b *Builder) addRoomWindows() {
	for roomIdx, room := range b.input.Rooms {
		idx := int64(roomIdx)
		for _, win := range room.Availability {
			if win.Available || win.Day >= b.numDays {
				continue
			}
			winStart := weekOffset(win.Day, win.StartMinutes)
			winEnd := weekOffset(win.Day, win.EndMinutes)
			for _, inst := range b.all {
				if !lo.Contains(b.validRooms[inst.Lesson.Id], idx) {
					continue
				}
				b.forbidWindow(inst, winStart, winEnd, b.roomIndicator(inst, idx))
			}
		}
	}
}

// forbidWindow posts "ends at or before the window start, or starts at
// or after the window end". Gates widen the disjunction with their
// negation, so a gated window only binds while every gate holds.
func (b *Builder) forbidWindow(inst *LessonInstance, winStart, winEnd int64, gates ...cpmodel.BoolVar) {
	endsBefore := b.model.NewBoolVar()
	b.model.AddLessOrEqual(inst.End, cpmodel.NewConstant(winStart)).OnlyEnforceIf(endsBefore)
	b.model.AddGreaterThan(inst.End, cpmodel.NewConstant(winStart)).OnlyEnforceIf(endsBefore.Not())

	startsAfter := b.model.NewBoolVar()
	b.model.AddGreaterOrEqual(inst.Start, cpmodel.NewConstant(winEnd)).OnlyEnforceIf(startsAfter)
	b.model.AddLessThan(inst.Start, cpmodel.NewConstant(winEnd)).OnlyEnforceIf(startsAfter.Not())

	literals := lo.Map(gates, func(g cpmodel.BoolVar, _ int) cpmodel.BoolVar { return g.Not() })
	literals = append(literals, endsBefore, startsAfter)
	b.model.AddBoolOr(literals...)
}

// addSchoolDayBounds gates each instance's start and end inside the
// earliest and latest schedulable period of whatever day it lands on.
func (b *Builder) addSchoolDayBounds() {
	for day := 0; day < b.numDays; day++ {
		dayStart, dayEnd, ok := dayBounds(b.input, day)
		if !ok {
			continue
		}
		lb := cpmodel.NewConstant(weekOffset(day, dayStart))
		ub := cpmodel.NewConstant(weekOffset(day, dayEnd))
		for _, inst := range b.all {
			onDay := b.dayIndicator(inst, day)
			b.model.AddGreaterOrEqual(inst.Start, lb).OnlyEnforceIf(onDay)
			b.model.AddLessOrEqual(inst.End, ub).OnlyEnforceIf(onDay)
		}
	}
}

// addBreakWindows treats breaks and lunches as unavailability windows
// binding every instance.
func (b *Builder) addBreakWindows() {
	for _, period := range b.input.Periods {
		if period.Schedulable() || period.Day >= b.numDays {
			continue
		}
		winStart := weekOffset(period.Day, period.StartMinutes)
		winEnd := weekOffset(period.Day, period.EndMinutes)
		for _, inst := range b.all {
			b.forbidWindow(inst, winStart, winEnd)
		}
	}
}
