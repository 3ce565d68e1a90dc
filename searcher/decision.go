package searcher

import (
	"sync"

	"othello3/game"
)

// decision is a tree node for the position reached by a move. Its rewards are
// counted for the player who made that move, so a parent choosing among its
// children maximises its own player's share of wins.
type decision struct {
	sync.RWMutex
	parent   *decision
	mover    game.Player // made the move into this node; invalid at the root
	player   game.Player // to move at this node
	hash     game.StateHash
	moves    []game.Move
	children []*decision
	rewards  float64
	visits   float64
}

func newDecision(parent *decision, mover game.Player, state game.State) *decision {
	moves := state.Moves()
	return &decision{
		parent:   parent,
		mover:    mover,
		player:   state.Player(),
		hash:     state.Hash(),
		moves:    moves,
		children: make([]*decision, 0, len(moves)),
	}
}

func newRoot(state game.State) *decision {
	return newDecision(nil, -1, state)
}

// SelectOrExpand descends one level. A terminal node returns itself. A node
// with untried moves expands the next one and returns the new child, which ends
// the descent. A fully expanded node selects the child with the highest UCT
// score and reports selected so the descent continues. Children handed out
// carry a virtual loss until they are backed up.
func (d *decision) SelectOrExpand(state game.State, cSquared float64) (child *decision, childState game.State, selected bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.moves) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.moves) > len(d.children) { // Expandable node
		move := d.moves[len(d.children)]
		childState = state.Apply(move)
		child = newDecision(d, move.Player, childState)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, childState, false
	}

	// Fully expanded node
	ith := d.pickChild(cSquared)
	child = d.children[ith]
	child.applyLoss()
	return child, state.Apply(d.moves[ith]), true
}

func (d *decision) pickChild(cSquared float64) int {
	policy := newUCT(cSquared, d.visits)

	maxIndex := 0
	maxScore := -1.0
	for i, child := range d.children {
		score := child.score(policy)
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) score(policy uct) float64 {
	d.RLock()
	defer d.RUnlock()

	return policy.score(d.rewards, d.visits)
}

// applyLoss records a visit that has not paid off yet, steering concurrent
// simulations away from the same path.
func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += LOSS
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= LOSS
	d.visits--
}

// Backup adds the simulation result for this node's mover and returns the
// parent to continue with.
func (d *decision) Backup(reward func(game.Player) float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += reward(d.mover)
	d.visits++

	return d.parent
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Policy maps each expanded move to its child's visit count.
func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Move]float64, len(d.children))
	for i, child := range d.children {
		policy[d.moves[i]] = child.Visits()
	}
	return policy
}

// findBestMove returns the most visited move, the earliest on ties.
func (d *decision) findBestMove() (game.Move, bool) {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		return game.Move{}, false
	}
	bestIndex := 0
	maxVisits := d.children[0].Visits()
	for i, child := range d.children[1:] {
		if v := child.Visits(); v > maxVisits {
			maxVisits = v
			bestIndex = i + 1
		}
	}
	return d.moves[bestIndex], true
}

// find looks for the node of the given position among the descendants of d
// down to depth levels, so a search can resume from the subtree of the moves
// played since the last one.
func (d *decision) find(hash game.StateHash, depth int) *decision {
	if d.hash == hash {
		return d
	}
	if depth == 0 {
		return nil
	}
	for _, child := range d.children {
		if found := child.find(hash, depth-1); found != nil {
			return found
		}
	}
	return nil
}
