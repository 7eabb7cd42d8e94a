package solver

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

type Status string

const (
	StatusOptimal      Status = "OPTIMAL"
	StatusFeasible     Status = "FEASIBLE"
	StatusInfeasible   Status = "INFEASIBLE"
	StatusModelInvalid Status = "MODEL_INVALID"
	StatusUnknown      Status = "UNKNOWN"
)

// Usable reports whether the engine produced a schedule worth reading.
func (s Status) Usable() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Assignment is one scheduled lesson instance, decoded back into
// day-of-week plus minutes of day.
type Assignment struct {
	LessonId     string `json:"lessonId"`
	Instance     int    `json:"instance"`
	Day          int    `json:"day"`
	StartMinutes int    `json:"startMinutes"`
	EndMinutes   int    `json:"endMinutes"`
	RoomId       string `json:"roomId"`
}

// Solution carries the engine verdict plus, for usable statuses, the
// assignment list and the realized weighted penalty per term.
type Solution struct {
	Status      Status           `json:"status"`
	Assignments []Assignment     `json:"assignments"`
	Penalties   map[string]int64 `json:"penalties"`
	Objective   float64          `json:"objective"`
	WallTime    float64          `json:"wallTimeSeconds"`
}

type Options struct {
	TimeLimit time.Duration
	Workers   int32
}

func DefaultOptions() Options {
	return Options{
		TimeLimit: 30 * time.Second,
		Workers:   8,
	}
}

// Solve hands the built model to CP-SAT and decodes the response. The
// call blocks until the engine stops; the time limit is the only
// termination control besides an optimality proof.
func (b *Builder) Solve(opts Options) (*Solution, error) {
	if !b.built {
		return nil, fmt.Errorf("model not built; call Build first")
	}

	model, err := b.model.Model()
	if err != nil {
		return nil, fmt.Errorf("cannot serialize model: %w", err)
	}
	params := &sppb.SatParameters{
		MaxTimeInSeconds:   proto.Float64(opts.TimeLimit.Seconds()),
		NumWorkers:         proto.Int32(opts.Workers),
		LinearizationLevel: proto.Int32(2),
	}

	response, err := cpmodel.SolveCpModelWithParameters(model, params)
	if err != nil {
		return nil, fmt.Errorf("solve failed: %w", err)
	}

	solution := &Solution{
		Status:    mapStatus(response.GetStatus()),
		Penalties: make(map[string]int64),
		WallTime:  response.GetWallTime(),
	}
	if !solution.Status.Usable() {
		return solution, nil
	}
	solution.Objective = response.GetObjectiveValue()

	for _, lessonId := range b.order {
		for _, inst := range b.instances[lessonId] {
			start := cpmodel.SolutionIntegerValue(response, inst.Start)
			end := cpmodel.SolutionIntegerValue(response, inst.End)
			assignment := Assignment{
				LessonId:     lessonId,
				Instance:     inst.Index,
				Day:          dayOf(start),
				StartMinutes: minuteOfDay(start),
				EndMinutes:   minuteOfDay(end),
			}
			roomIdx := cpmodel.SolutionIntegerValue(response, inst.Room)
			if roomIdx >= 0 && roomIdx < int64(len(b.input.Rooms)) {
				assignment.RoomId = b.input.Rooms[roomIdx].Id
			}
			solution.Assignments = append(solution.Assignments, assignment)
		}
	}
	sort.Slice(solution.Assignments, func(i, j int) bool {
		a, c := solution.Assignments[i], solution.Assignments[j]
		if a.Day != c.Day {
			return a.Day < c.Day
		}
		if a.StartMinutes != c.StartMinutes {
			return a.StartMinutes < c.StartMinutes
		}
		return a.LessonId < c.LessonId
	})

	for _, p := range b.penalties {
		if value := cpmodel.SolutionIntegerValue(response, p.Var); value > 0 {
			solution.Penalties[p.Name] += value * p.Weight
		}
	}
	return solution, nil
}

func mapStatus(s cmpb.CpSolverStatus) Status {
	switch s {
	case cmpb.CpSolverStatus_OPTIMAL:
		return StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return StatusInfeasible
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return StatusModelInvalid
	default:
		return StatusUnknown
	}
}
