package pathopt

import "math"

// Best is the running-best accumulator of one search. It is not safe for
// concurrent use; one search owns one Best.
type Best struct {
	Params         []float64
	Value          float64
	Evaluations    int
	Threshold      float64
	BelowThreshold bool
}

// NewBest returns an empty accumulator with Value = +Inf.
func NewBest(threshold float64) *Best {
	return &Best{Value: math.Inf(1), Threshold: threshold}
}

// Observe records one evaluation. NaN counts as +Inf. The parameter slice
// is copied when it improves the best value.
func (b *Best) Observe(params []float64, value float64) {
	b.Evaluations++
	if math.IsNaN(value) {
		value = math.Inf(1)
	}
	if value < b.Value || b.Params == nil {
		b.Value = value
		b.Params = append(b.Params[:0], params...)
	}
	if b.Value <= b.Threshold {
		b.BelowThreshold = true
	}
}
