// Package progress records completed tasks and derives learning analytics.
package progress

// Efficiency bounds, in percent.
const (
	MinEfficiency     = 10.0
	MaxEfficiency     = 200.0
	NeutralEfficiency = 100.0
)

// Efficiency compares estimated and actual hours as a percentage, where
// values above 100 mean faster than estimated. Non-positive actual time
// yields NeutralEfficiency.
func Efficiency(estimated, actual float64) float64 {
	if actual <= 0 {
		return NeutralEfficiency
	}
	return max(MinEfficiency, min(MaxEfficiency, estimated/actual*100))
}
