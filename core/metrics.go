package core

// Metrics records store activity.
type Metrics interface {
	// Mutation counts a store mutation; matched is false when it was a no-op.
	Mutation(entity, op string, matched bool)
	// Demoted counts proposals demoted to Superseded.
	Demoted(n int)
}

type nopMetrics struct{}

func NopMetrics() Metrics { return nopMetrics{} }

func (nopMetrics) Mutation(string, string, bool) {}
func (nopMetrics) Demoted(int)                   {}
