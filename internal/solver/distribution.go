package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// addDistribution spreads a lesson's weekly instances across the week:
// same-day pairs, too-small day gaps, deviation from the ideal
// spacing, and back-to-back days are all penalized pairwise.
func (b *Builder) addDistribution() {
	for _, lessonId := range b.order {
		insts := b.instances[lessonId]
		if len(insts) < 2 {
			continue
		}
		perWeek := int64(insts[0].Lesson.LessonsPerWeek)

		// More instances make same-day pairs harder to avoid, so the
		// pair weight shrinks with the weekly count.
		sameDayWeight := b.weights.SameDaySubject * 2 / perWeek
		if sameDayWeight < 1 && b.weights.SameDaySubject > 0 {
			sameDayWeight = 1
		}

		for i := 0; i < len(insts); i++ {
			for j := i + 1; j < len(insts); j++ {
				b.addSameDayPenalty(lessonId, insts[i], insts[j], i, j, sameDayWeight)
				b.addDaySpacingPenalties(lessonId, insts[i], insts[j], i, j, perWeek)
				if insts[0].Lesson.NoConsecutiveDays {
					b.addConsecutiveDaysPenalty(lessonId, insts[i], insts[j], i, j)
				}
			}
		}
	}
}

func (b *Builder) addSameDayPenalty(lessonId string, a, c *LessonInstance, i, j int, weight int64) {
	if weight <= 0 {
		return
	}
	sameDay := b.model.NewBoolVar()
	b.model.AddEquality(a.Day, c.Day).OnlyEnforceIf(sameDay)
	b.model.AddNotEqual(a.Day, c.Day).OnlyEnforceIf(sameDay.Not())

	b.addPenalty(
		fmt.Sprintf("same_day_subject[%s#%d#%d]", lessonId, i, j),
		sameDay,
		weight,
		fmt.Sprintf("lesson %s instances %d and %d share a day", lessonId, i, j),
	)
}

func (b *Builder) addDaySpacingPenalties(lessonId string, a, c *LessonInstance, i, j int, perWeek int64) {
	minGap := int64(b.weights.MinGapDays)
	ideal := int64(b.numDays) / perWeek
	if (b.weights.DayGapShortfall <= 0 || minGap <= 0) && (b.weights.UnevenDistribution <= 0 || ideal < 1) {
		return
	}

	// |dayA - dayC| via max of both signed differences.
	span := int64(b.numDays - 1)
	dayDistance := b.model.NewIntVar(0, span)
	b.model.AddMaxEquality(dayDistance,
		cpmodel.NewLinearExpr().Add(a.Day).AddTerm(c.Day, -1),
		cpmodel.NewLinearExpr().Add(c.Day).AddTerm(a.Day, -1))

	if b.weights.DayGapShortfall > 0 && minGap > 0 {
		shortfall := b.model.NewIntVar(0, minGap)
		b.model.AddMaxEquality(shortfall,
			cpmodel.NewConstant(0),
			cpmodel.NewLinearExpr().AddTerm(dayDistance, -1).AddConstant(minGap))

		b.addPenalty(
			fmt.Sprintf("day_gap_shortfall[%s#%d#%d]", lessonId, i, j),
			shortfall,
			b.weights.DayGapShortfall,
			fmt.Sprintf("lesson %s instances %d and %d closer than %d days", lessonId, i, j, minGap),
		)
	}

	if b.weights.UnevenDistribution > 0 && ideal >= 1 {
		deviation := b.model.NewIntVar(0, span)
		b.model.AddMaxEquality(deviation,
			cpmodel.NewLinearExpr().Add(dayDistance).AddConstant(-ideal),
			cpmodel.NewLinearExpr().AddTerm(dayDistance, -1).AddConstant(ideal))

		b.addPenalty(
			fmt.Sprintf("uneven_distribution[%s#%d#%d]", lessonId, i, j),
			deviation,
			b.weights.UnevenDistribution,
			fmt.Sprintf("lesson %s instances %d and %d off the ideal %d-day spacing", lessonId, i, j, ideal),
		)
	}
}

func (b *Builder) addConsecutiveDaysPenalty(lessonId string, a, c *LessonInstance, i, j int) {
	if b.weights.ConsecutiveDays <= 0 {
		return
	}
	dayAfter := b.model.NewBoolVar()
	b.model.AddEquality(c.Day, cpmodel.NewLinearExpr().Add(a.Day).AddConstant(1)).OnlyEnforceIf(dayAfter)
	b.model.AddNotEqual(c.Day, cpmodel.NewLinearExpr().Add(a.Day).AddConstant(1)).OnlyEnforceIf(dayAfter.Not())

	dayBefore := b.model.NewBoolVar()
	b.model.AddEquality(a.Day, cpmodel.NewLinearExpr().Add(c.Day).AddConstant(1)).OnlyEnforceIf(dayBefore)
	b.model.AddNotEqual(a.Day, cpmodel.NewLinearExpr().Add(c.Day).AddConstant(1)).OnlyEnforceIf(dayBefore.Not())

	consecutive := b.model.NewBoolVar()
	b.model.AddBoolOr(dayAfter, dayBefore).OnlyEnforceIf(consecutive)
	b.model.AddBoolAnd(dayAfter.Not(), dayBefore.Not()).OnlyEnforceIf(consecutive.Not())

	b.addPenalty(
		fmt.Sprintf("consecutive_days[%s#%d#%d]", lessonId, i, j),
		consecutive,
		b.weights.ConsecutiveDays,
		fmt.Sprintf("lesson %s instances %d and %d on back-to-back days", lessonId, i, j),
	)
}
