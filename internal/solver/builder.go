package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"timetable/internal/school"
)

// LessonInstance holds the decision variables of one weekly occurrence
// of a lesson. Start and End are week minutes, Day is derived from
// Start by integer division, Room indexes the input room list.
type LessonInstance struct {
	Lesson   school.Lesson
	Index    int
	Start    cpmodel.IntVar
	End      cpmodel.IntVar
	Day      cpmodel.IntVar
	Room     cpmodel.IntVar
	Interval cpmodel.IntervalVar
}

// PenaltyTerm is one weighted soft-constraint violation variable. The
// objective minimizes the sum of Var*Weight over all terms.
type PenaltyTerm struct {
	Name        string
	Var         cpmodel.LinearArgument
	Weight      int64
	Description string
}

// RoomRejection explains why a lesson ended up with no admissible room.
type RoomRejection struct {
	LessonId string
	Reasons  []string
}

type BuildStats struct {
	LessonInstances   int
	PenaltyTerms      int
	OptionalIntervals int
	AdmissibleRooms   int
}

type dayKey struct {
	inst *LessonInstance
	day  int
}

// Builder is the build context shared by every encoder: it owns the
// engine model, the instance variables and the penalty list. One
// Builder corresponds to exactly one build-solve attempt.
type Builder struct {
	model   *cpmodel.Builder
	input   *school.Input
	weights Weights
	numDays int
	horizon int64

	instances map[string][]*LessonInstance
	order     []string
	all       []*LessonInstance

	penalties []PenaltyTerm

	validRooms     map[string][]int64
	roomRejections []RoomRejection

	dayInd  map[dayKey]cpmodel.BoolVar
	roomInd map[*LessonInstance]map[int64]cpmodel.BoolVar

	optionalIntervals int
	built             bool
}

func NewBuilder(input *school.Input, weights Weights) *Builder {
	numDays := input.Config.NumDays
	if numDays == 0 {
		numDays = school.DefaultNumDays
	}
	return &Builder{
		model:      cpmodel.NewCpModelBuilder(),
		input:      input,
		weights:    weights,
		numDays:    numDays,
		horizon:    int64(numDays) * minutesPerDay,
		instances:  make(map[string][]*LessonInstance),
		validRooms: make(map[string][]int64),
		dayInd:     make(map[dayKey]cpmodel.BoolVar),
		roomInd:    make(map[*LessonInstance]map[int64]cpmodel.BoolVar),
	}
}

// Build translates the input into variables, hard constraints and
// penalty terms. It can only run once per Builder.
func (b *Builder) Build() error {
	if b.built {
		return fmt.Errorf("builder is single use; create a new one per attempt")
	}
	b.built = true

	b.computeRoomSets()
	b.createVariables()
	b.addNoOverlap()
	b.addAvailability()
	b.addRoomConstraints()
	b.addDailyWeeklyLimits()
	b.addGaps()
	b.addDistribution()
	b.setObjective()
	return nil
}

// UnroomableLessons lists lessons whose admissible-room set came up
// empty, with the per-room rejection reasons. The model still carries
// the impossible domain, so solving proves infeasibility either way.
func (b *Builder) UnroomableLessons() []RoomRejection {
	return b.roomRejections
}

func (b *Builder) Penalties() []PenaltyTerm {
	return b.penalties
}

func (b *Builder) Stats() BuildStats {
	admissible := 0
	for _, rooms := range b.validRooms {
		admissible += len(rooms)
	}
	return BuildStats{
		LessonInstances:   len(b.all),
		PenaltyTerms:      len(b.penalties),
		OptionalIntervals: b.optionalIntervals,
		AdmissibleRooms:   admissible,
	}
}

func (b *Builder) addPenalty(name string, v cpmodel.LinearArgument, weight int64, description string) {
	if weight <= 0 {
		return
	}
	b.penalties = append(b.penalties, PenaltyTerm{
		Name:        name,
		Var:         v,
		Weight:      weight,
		Description: description,
	})
}

// dayIndicator returns a cached boolean reified to "instance is
// scheduled on day".
func (b *Builder) dayIndicator(inst *LessonInstance, day int) cpmodel.BoolVar {
	key := dayKey{inst, day}
	if ind, ok := b.dayInd[key]; ok {
		return ind
	}
	ind := b.model.NewBoolVar()
	d := cpmodel.NewConstant(int64(day))
	b.model.AddEquality(inst.Day, d).OnlyEnforceIf(ind)
	b.model.AddNotEqual(inst.Day, d).OnlyEnforceIf(ind.Not())
	b.dayInd[key] = ind
	return ind
}

// roomIndicator returns a cached boolean reified to "instance is
// placed in the room at roomIdx".
func (b *Builder) roomIndicator(inst *LessonInstance, roomIdx int64) cpmodel.BoolVar {
	if _, ok := b.roomInd[inst]; !ok {
		b.roomInd[inst] = make(map[int64]cpmodel.BoolVar)
	}
	if ind, ok := b.roomInd[inst][roomIdx]; ok {
		return ind
	}
	ind := b.model.NewBoolVar()
	idx := cpmodel.NewConstant(roomIdx)
	b.model.AddEquality(inst.Room, idx).OnlyEnforceIf(ind)
	b.model.AddNotEqual(inst.Room, idx).OnlyEnforceIf(ind.Not())
	b.roomInd[inst][roomIdx] = ind
	return ind
}

// groupInstances partitions instances by key, preserving first-seen
// order so constraint emission stays deterministic.
func groupInstances(insts []*LessonInstance, key func(*LessonInstance) string) ([]string, map[string][]*LessonInstance) {
	var order []string
	groups := make(map[string][]*LessonInstance)
	for _, inst := range insts {
		k := key(inst)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], inst)
	}
	return order, groups
}
