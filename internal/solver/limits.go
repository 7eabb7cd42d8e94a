package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"timetable/internal/school"
)

// addDailyWeeklyLimits penalizes daily and weekly load overflows,
// uneven workload across days, and fragmented days with too few
// lessons.
func (b *Builder) addDailyWeeklyLimits() {
	teacherIds, byTeacher := groupInstances(b.all, func(i *LessonInstance) string { return i.Lesson.TeacherId })
	for _, id := range teacherIds {
		insts := byTeacher[id]
		teacher, _ := b.input.Teacher(id)
		counts := b.dayCounts(insts)

		b.addDailyOverflow("teacher_daily_overflow", id, insts, counts,
			teacher.MaxPeriodsPerDay, b.weights.TeacherDailyOverflow)
		b.addWeeklyOverflow(teacher, insts)
		b.addWorkloadBalance(id, insts, counts)
		b.addFragmentation(id, insts, counts)
	}

	classIds, byClass := groupInstances(b.all, func(i *LessonInstance) string { return i.Lesson.ClassId })
	for _, id := range classIds {
		insts := byClass[id]
		b.addDailyOverflow("class_daily_overflow", id, insts, b.dayCounts(insts),
			b.weights.ClassDailyMax, b.weights.ClassDailyOverflow)
	}
}

// dayCounts builds one per-day lesson-count variable for an entity's
// instances, shared by every limit encoding below.
func (b *Builder) dayCounts(insts []*LessonInstance) []cpmodel.IntVar {
	counts := make([]cpmodel.IntVar, b.numDays)
	for day := 0; day < b.numDays; day++ {
		sum := cpmodel.NewLinearExpr()
		for _, inst := range insts {
			sum.Add(b.dayIndicator(inst, day))
		}
		count := b.model.NewIntVar(0, int64(len(insts)))
		b.model.AddEquality(count, sum)
		counts[day] = count
	}
	return counts
}

// overflowVar derives max(0, count - limit).
func (b *Builder) overflowVar(count cpmodel.IntVar, limit, maxCount int64) cpmodel.IntVar {
	overflow := b.model.NewIntVar(0, maxCount-limit)
	b.model.AddMaxEquality(overflow,
		cpmodel.NewConstant(0),
		cpmodel.NewLinearExpr().Add(count).AddConstant(-limit))
	return overflow
}

// addDailyOverflow registers overflow penalties only when the entity
// can structurally exceed the limit at all.
func (b *Builder) addDailyOverflow(name, entityId string, insts []*LessonInstance, counts []cpmodel.IntVar, limit int, weight int64) {
	if limit <= 0 || len(insts) <= limit || weight <= 0 {
		return
	}
	for day := 0; day < b.numDays; day++ {
		overflow := b.overflowVar(counts[day], int64(limit), int64(len(insts)))
		b.addPenalty(
			fmt.Sprintf("%s[%s,day%d]", name, entityId, day),
			overflow,
			weight,
			fmt.Sprintf("%s exceeds %d lessons on day %d", entityId, limit, day),
		)
	}
}

// addWeeklyOverflow handles the fixed weekly excess. The instance
// total is known at build time, so the excess is a constant term, not
// a derived variable.
func (b *Builder) addWeeklyOverflow(teacher school.Teacher, insts []*LessonInstance) {
	if teacher.MaxPeriodsPerWeek <= 0 || len(insts) <= teacher.MaxPeriodsPerWeek {
		return
	}
	excess := int64(len(insts) - teacher.MaxPeriodsPerWeek)
	b.addPenalty(
		fmt.Sprintf("teacher_weekly_overflow[%s]", teacher.Id),
		b.model.NewConstant(excess),
		b.weights.TeacherWeeklyOverflow,
		fmt.Sprintf("%s has %d lessons over the weekly cap of %d", teacher.Id, excess, teacher.MaxPeriodsPerWeek),
	)
}

func (b *Builder) addWorkloadBalance(teacherId string, insts []*LessonInstance, counts []cpmodel.IntVar) {
	if b.weights.WorkloadImbalance <= 0 {
		return
	}
	target := int64(len(insts) / b.numDays)
	if target == 0 {
		return
	}
	total := int64(len(insts))
	for day := 0; day < b.numDays; day++ {
		above := b.model.NewIntVar(0, total)
		b.model.AddMaxEquality(above,
			cpmodel.NewConstant(0),
			cpmodel.NewLinearExpr().Add(counts[day]).AddConstant(-target))
		below := b.model.NewIntVar(0, target)
		b.model.AddMaxEquality(below,
			cpmodel.NewConstant(0),
			cpmodel.NewLinearExpr().AddTerm(counts[day], -1).AddConstant(target))

		deviation := b.model.NewIntVar(0, total)
		b.model.AddEquality(deviation, cpmodel.NewLinearExpr().Add(above).Add(below))

		b.addPenalty(
			fmt.Sprintf("workload_imbalance[%s,day%d]", teacherId, day),
			deviation,
			b.weights.WorkloadImbalance,
			fmt.Sprintf("%s deviates from %d lessons on day %d", teacherId, target, day),
		)
	}
}

// addFragmentation penalizes days that are used at all but carry fewer
// than the configured minimum of lessons.
func (b *Builder) addFragmentation(teacherId string, insts []*LessonInstance, counts []cpmodel.IntVar) {
	minLessons := int64(b.weights.MinLessonsPerDay)
	if b.weights.Fragmentation <= 0 || minLessons <= 1 || len(insts) == 0 {
		return
	}
	for day := 0; day < b.numDays; day++ {
		hasLessons := b.model.NewBoolVar()
		b.model.AddGreaterOrEqual(counts[day], cpmodel.NewConstant(1)).OnlyEnforceIf(hasLessons)
		b.model.AddEquality(counts[day], cpmodel.NewConstant(0)).OnlyEnforceIf(hasLessons.Not())

		rawShortfall := b.model.NewIntVar(0, minLessons)
		b.model.AddMaxEquality(rawShortfall,
			cpmodel.NewConstant(0),
			cpmodel.NewLinearExpr().AddTerm(counts[day], -1).AddConstant(minLessons))

		shortfall := b.model.NewIntVar(0, minLessons)
		b.model.AddEquality(shortfall, rawShortfall).OnlyEnforceIf(hasLessons)
		b.model.AddEquality(shortfall, cpmodel.NewConstant(0)).OnlyEnforceIf(hasLessons.Not())

		b.addPenalty(
			fmt.Sprintf("fragmentation[%s,day%d]", teacherId, day),
			shortfall,
			b.weights.Fragmentation,
			fmt.Sprintf("%s has a short day %d below %d lessons", teacherId, day, minLessons),
		)
	}
}
