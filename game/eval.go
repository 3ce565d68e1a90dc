package game

// EvaluateDiskShare values a position by the fraction of all disks p holds.
func EvaluateDiskShare(s State, p Player) float64 {
	scores := s.Score()
	total := scores.Total()
	if total == 0 {
		return 0
	}
	return float64(scores[p]) / float64(total)
}

// EvaluateLead maps p's margin over the best opponent from [-total, total]
// onto [0, 1], so 0.5 means level with the strongest rival.
func EvaluateLead(s State, p Player) float64 {
	scores := s.Score()
	total := scores.Total()
	if total == 0 {
		return 0.5
	}
	lead := float64(scores[p] - scores.BestOpponent(p))
	return (lead/float64(total) + 1) / 2
}

// EvaluateMobility blends disk share with how many moves p could make next,
// relative to all players' moves.
func EvaluateMobility(s State, p Player) float64 {
	g, ok := s.(*Game)
	if !ok {
		return EvaluateDiskShare(s, p)
	}
	mobility := [NumPlayers]int{}
	total := 0
	for _, q := range Players {
		mobility[q] = len(g.LegalMoves(q))
		total += mobility[q]
	}
	if total == 0 {
		return EvaluateDiskShare(s, p)
	}
	return (EvaluateDiskShare(s, p) + float64(mobility[p])/float64(total)) / 2
}
