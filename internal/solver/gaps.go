package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/samber/lo"
)

// addGaps penalizes idle time inside a day for teachers and classes,
// and late finishes for teachers.
func (b *Builder) addGaps() {
	teacherIds, byTeacher := groupInstances(b.all, func(i *LessonInstance) string { return i.Lesson.TeacherId })
	for _, id := range teacherIds {
		for day := 0; day < b.numDays; day++ {
			b.addDayGap("teacher_gap", id, byTeacher[id], day, b.weights.TeacherGap)
		}
		b.addEarlyFinish(id, byTeacher[id])
	}

	classIds, byClass := groupInstances(b.all, func(i *LessonInstance) string { return i.Lesson.ClassId })
	for _, id := range classIds {
		for day := 0; day < b.numDays; day++ {
			b.addDayGap("class_gap", id, byClass[id], day, b.weights.ClassGap)
		}
	}
}

// conditionalStart is the instance's minute of day when it sits on the
// given day and the end-of-day sentinel otherwise, so day minima skip
// absent instances.
func (b *Builder) conditionalStart(inst *LessonInstance, day int) cpmodel.IntVar {
	onDay := b.dayIndicator(inst, day)
	v := b.model.NewIntVar(0, minutesPerDay)
	b.model.AddEquality(v, cpmodel.NewLinearExpr().Add(inst.Start).AddConstant(-weekOffset(day, 0))).OnlyEnforceIf(onDay)
	b.model.AddEquality(v, cpmodel.NewConstant(minutesPerDay)).OnlyEnforceIf(onDay.Not())
	return v
}

// conditionalEnd mirrors conditionalStart with a zero sentinel for day
// maxima.
func (b *Builder) conditionalEnd(inst *LessonInstance, day int) cpmodel.IntVar {
	onDay := b.dayIndicator(inst, day)
	v := b.model.NewIntVar(0, minutesPerDay)
	b.model.AddEquality(v, cpmodel.NewLinearExpr().Add(inst.End).AddConstant(-weekOffset(day, 0))).OnlyEnforceIf(onDay)
	b.model.AddEquality(v, cpmodel.NewConstant(0)).OnlyEnforceIf(onDay.Not())
	return v
}

// addDayGap derives span minus teaching time on one day and counts it
// only when the day carries at least the configured lesson threshold.
func (b *Builder) addDayGap(name, entityId string, insts []*LessonInstance, day int, weight int64) {
	threshold := int64(b.weights.GapLessonThreshold)
	if threshold < 2 {
		threshold = 2
	}
	if weight <= 0 || int64(len(insts)) < threshold {
		return
	}

	starts := lo.Map(insts, func(i *LessonInstance, _ int) cpmodel.LinearArgument {
		return b.conditionalStart(i, day)
	})
	ends := lo.Map(insts, func(i *LessonInstance, _ int) cpmodel.LinearArgument {
		return b.conditionalEnd(i, day)
	})

	minStart := b.model.NewIntVar(0, minutesPerDay)
	b.model.AddMinEquality(minStart, starts...)
	maxEnd := b.model.NewIntVar(0, minutesPerDay)
	b.model.AddMaxEquality(maxEnd, ends...)

	// span - teaching, with per-instance teaching contributions that
	// vanish on other days.
	raw := cpmodel.NewLinearExpr().Add(maxEnd).AddTerm(minStart, -1)
	presence := cpmodel.NewLinearExpr()
	for _, inst := range insts {
		onDay := b.dayIndicator(inst, day)
		raw.AddTerm(onDay, -int64(inst.Lesson.DurationMinutes))
		presence.Add(onDay)
	}

	gap := b.model.NewIntVar(0, minutesPerDay)
	b.model.AddMaxEquality(gap, cpmodel.NewConstant(0), raw)

	hasEnough := b.model.NewBoolVar()
	b.model.AddGreaterOrEqual(presence, cpmodel.NewConstant(threshold)).OnlyEnforceIf(hasEnough)
	b.model.AddLessThan(presence, cpmodel.NewConstant(threshold)).OnlyEnforceIf(hasEnough.Not())

	counted := b.model.NewIntVar(0, minutesPerDay)
	b.model.AddEquality(counted, gap).OnlyEnforceIf(hasEnough)
	b.model.AddEquality(counted, cpmodel.NewConstant(0)).OnlyEnforceIf(hasEnough.Not())

	b.addPenalty(
		fmt.Sprintf("%s[%s,day%d]", name, entityId, day),
		counted,
		weight,
		fmt.Sprintf("%s idle minutes between lessons on day %d", entityId, day),
	)
}

// addEarlyFinish charges each minute a teacher's last lesson of a day
// runs past the configured cutoff. Absent days contribute zero through
// the conditional-end sentinel.
func (b *Builder) addEarlyFinish(teacherId string, insts []*LessonInstance) {
	cutoff := int64(b.weights.LateFinishAfter)
	if b.weights.LateFinish <= 0 || cutoff <= 0 || cutoff >= minutesPerDay || len(insts) == 0 {
		return
	}
	for day := 0; day < b.numDays; day++ {
		ends := lo.Map(insts, func(i *LessonInstance, _ int) cpmodel.LinearArgument {
			return b.conditionalEnd(i, day)
		})
		latest := b.model.NewIntVar(0, minutesPerDay)
		b.model.AddMaxEquality(latest, ends...)

		late := b.model.NewIntVar(0, minutesPerDay-cutoff)
		b.model.AddMaxEquality(late,
			cpmodel.NewConstant(0),
			cpmodel.NewLinearExpr().Add(latest).AddConstant(-cutoff))

		b.addPenalty(
			fmt.Sprintf("late_finish[%s,day%d]", teacherId, day),
			late,
			b.weights.LateFinish,
			fmt.Sprintf("%s finishes after %02d:%02d on day %d", teacherId, cutoff/60, cutoff%60, day),
		)
	}
}
