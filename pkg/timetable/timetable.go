// Package timetable is the public entry point: load a school input,
// translate it into a constraint model and hand it to CP-SAT in one
// call. Callers needing build diagnostics or statistics can drop down
// to solver.NewBuilder directly.
package timetable

import (
	"timetable/internal/school"
	"timetable/internal/solver"
)

type (
	Input      = school.Input
	Weights    = solver.Weights
	Options    = solver.Options
	Solution   = solver.Solution
	Assignment = solver.Assignment
	Status     = solver.Status
)

func LoadInput(path string) (*Input, error) {
	return school.InputFromJson(path)
}

func DefaultWeights() Weights {
	return solver.DefaultWeights()
}

func DefaultOptions() Options {
	return solver.DefaultOptions()
}

// Schedule builds the model for one optimization attempt and solves
// it. A fresh builder is created per call, so Schedule is safe to run
// concurrently for independent inputs.
func Schedule(input *Input, weights Weights, opts Options) (*Solution, error) {
	builder := solver.NewBuilder(input, weights)
	if err := builder.Build(); err != nil {
		return nil, err
	}
	return builder.Solve(opts)
}
