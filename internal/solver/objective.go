package solver

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// setObjective folds every registered penalty into one weighted sum.
// With no penalties the model stays a pure feasibility problem.
func (b *Builder) setObjective() {
	if len(b.penalties) == 0 {
		return
	}
	objective := cpmodel.NewLinearExpr()
	for _, p := range b.penalties {
		objective.AddTerm(p.Var, p.Weight)
	}
	b.model.Minimize(objective)
}
