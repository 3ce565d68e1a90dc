package agent

// LearningRate maps the number of updates a state-action pair has received,
// counting the current one, to the step size of that update.
type LearningRate func(visits uint32) float64

// VisitDecay steps by 1/(1+visits): the first update moves a value halfway to
// its target and later ones average ever more slowly.
func VisitDecay(visits uint32) float64 {
	return 1 / (1 + float64(visits))
}

// Fixed steps by eta regardless of how often the pair was visited.
func Fixed(eta float64) LearningRate {
	return func(uint32) float64 { return eta }
}
