package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	"github.com/samber/lo"

	"timetable/internal/school"
)

// computeRoomSets runs the pure suitability filter for every lesson
// before any room decision variable is touched. Keeping the admissible
// sets small is what keeps the optional-interval count tractable.
func (b *Builder) computeRoomSets() {
	for _, lesson := range b.input.Lessons {
		valid, reasons := b.admissibleRooms(lesson)
		b.validRooms[lesson.Id] = valid
		if len(valid) == 0 {
			b.roomRejections = append(b.roomRejections, RoomRejection{
				LessonId: lesson.Id,
				Reasons:  reasons,
			})
		}
	}
}

// admissibleRooms filters the room list for one lesson. Checks run in
// a fixed order: exclusion list, explicit room list, required type,
// minimum capacity, required equipment. The first failing check names
// the rejection reason.
func (b *Builder) admissibleRooms(lesson school.Lesson) (valid []int64, reasons []string) {
	req := lesson.RoomRequirement
	subject, _ := b.input.Subject(lesson.SubjectId)
	class, _ := b.input.Class(lesson.ClassId)

	requiredType := school.RoomType("")
	if req != nil && req.RoomType != "" {
		requiredType = req.RoomType
	} else if subject.RequiresSpecialistRoom && subject.RequiredRoomType != "" {
		requiredType = subject.RequiredRoomType
	}

	minCapacity := class.StudentCount
	if req != nil && req.MinCapacity > 0 {
		minCapacity = req.MinCapacity
	}

	for idx, room := range b.input.Rooms {
		if req != nil && lo.Contains(req.ExcludedRooms, room.Id) {
			reasons = append(reasons, fmt.Sprintf("%s: excluded", room.Id))
			continue
		}
		if req != nil && len(req.PreferredRooms) > 0 && !lo.Contains(req.PreferredRooms, room.Id) {
			reasons = append(reasons, fmt.Sprintf("%s: not in required room list", room.Id))
			continue
		}
		if requiredType != "" && room.Type != requiredType {
			reasons = append(reasons, fmt.Sprintf("%s: type %s, need %s", room.Id, room.Type, requiredType))
			continue
		}
		if room.Capacity > 0 && room.Capacity < minCapacity {
			reasons = append(reasons, fmt.Sprintf("%s: capacity %d below %d", room.Id, room.Capacity, minCapacity))
			continue
		}
		if req != nil && len(req.RequiresEquipment) > 0 && !lo.Every(room.Equipment, req.RequiresEquipment) {
			missing := lo.Without(req.RequiresEquipment, room.Equipment...)
			reasons = append(reasons, fmt.Sprintf("%s: missing equipment %v", room.Id, missing))
			continue
		}
		valid = append(valid, int64(idx))
	}
	if len(b.input.Rooms) == 0 {
		reasons = append(reasons, "no rooms defined")
	}
	return valid, reasons
}

// addRoomConstraints restricts each instance's room variable to the
// admissible set and layers the soft room preferences on top.
func (b *Builder) addRoomConstraints() {
	numRooms := len(b.input.Rooms)

	for _, lessonId := range b.order {
		valid := b.validRooms[lessonId]
		insts := b.instances[lessonId]

		switch {
		case len(valid) == 0:
			// Impossible value inside a non-negative domain; the
			// engine proves infeasibility instead of picking an
			// arbitrary room.
			for _, inst := range insts {
				b.model.AddEquality(inst.Room, cpmodel.NewConstant(-1))
			}
			continue
		case len(valid) < numRooms:
			for _, inst := range insts {
				table := b.model.AddAllowedAssignments(inst.Room)
				for _, idx := range valid {
					table.AddTuple(idx)
				}
			}
		}

		b.addPreferredRoomPenalty(insts, valid)
		b.addRoomConsistencyPenalty(lessonId, insts)
	}
}

// addPreferredRoomPenalty charges an instance for landing outside the
// teacher's preferred rooms.
func (b *Builder) addPreferredRoomPenalty(insts []*LessonInstance, valid []int64) {
	if len(insts) == 0 || b.weights.NonPreferredRoom <= 0 {
		return
	}
	teacher, ok := b.input.Teacher(insts[0].Lesson.TeacherId)
	if !ok || len(teacher.PreferredRooms) == 0 {
		return
	}
	preferred := lo.Filter(valid, func(idx int64, _ int) bool {
		return lo.Contains(teacher.PreferredRooms, b.input.Rooms[idx].Id)
	})
	if len(preferred) == 0 || len(preferred) == len(valid) {
		return
	}

	for _, inst := range insts {
		indicators := lo.Map(preferred, func(idx int64, _ int) cpmodel.BoolVar {
			return b.roomIndicator(inst, idx)
		})
		inPreferred := b.model.NewBoolVar()
		b.model.AddBoolOr(indicators...).OnlyEnforceIf(inPreferred)
		negated := lo.Map(indicators, func(v cpmodel.BoolVar, _ int) cpmodel.BoolVar { return v.Not() })
		b.model.AddBoolAnd(negated...).OnlyEnforceIf(inPreferred.Not())

		b.addPenalty(
			fmt.Sprintf("non_preferred_room[%s#%d]", inst.Lesson.Id, inst.Index),
			inPreferred.Not(),
			b.weights.NonPreferredRoom,
			fmt.Sprintf("lesson %s instance %d outside preferred rooms of %s", inst.Lesson.Id, inst.Index, teacher.Id),
		)
	}
}

// addRoomConsistencyPenalty charges each pair of a lesson's instances
// that end up in different rooms.
func (b *Builder) addRoomConsistencyPenalty(lessonId string, insts []*LessonInstance) {
	if len(insts) < 2 || b.weights.RoomInconsistency <= 0 {
		return
	}
	for i := 0; i < len(insts); i++ {
		for j := i + 1; j < len(insts); j++ {
			different := b.model.NewBoolVar()
			b.model.AddNotEqual(insts[i].Room, insts[j].Room).OnlyEnforceIf(different)
			b.model.AddEquality(insts[i].Room, insts[j].Room).OnlyEnforceIf(different.Not())

			b.addPenalty(
				fmt.Sprintf("room_inconsistency[%s#%d#%d]", lessonId, i, j),
				different,
				b.weights.RoomInconsistency,
				fmt.Sprintf("lesson %s instances %d and %d use different rooms", lessonId, i, j),
			)
		}
	}
}
