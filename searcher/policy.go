package searcher

import "math"

// uct scores the children of one parent. The exploration term
// sqrt(c^2 * ln(N) / n) shares its numerator across siblings, so it is
// computed once per selection.
type uct struct {
	numerator float64
}

func newUCT(cSquared float64, parentVisits float64) uct {
	if parentVisits < 1 {
		parentVisits = 1 // ln(1) = 0: pure exploitation until the parent is backed up
	}
	return uct{numerator: cSquared * math.Log(parentVisits)}
}

// score returns q/n plus the exploration bonus. Unvisited children score +Inf
// so every move is tried once before any is revisited.
func (u uct) score(q, n float64) float64 {
	if n <= 0 {
		return math.Inf(1)
	}
	return q/n + math.Sqrt(u.numerator/n)
}
