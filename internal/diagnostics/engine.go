package diagnostics

import (
	"transformer-load/internal/model"
)

// Result is everything the engine derives for one transformer.
type Result struct {
	Name       string               `json:"name"`
	Assessment model.LoadAssessment `json:"assessment"`
	Report     Report               `json:"findings"`
}

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run assesses and diagnoses a single transformer. Engine holds no state, so a
// single value may be shared by concurrent callers.
func (e *Engine) Run(t model.Transformer) *Result {
	return &Result{
		Name:       t.Name,
		Assessment: ComputeAssessment(t.Rating, t.Legs),
		Report:     Diagnose(t.Rating, t.Legs),
	}
}
