package tictactoe

import "fmt"

// SubsetState summarises one subset on a given board.
type SubsetState struct {
	Subset *Subset
	Empty  int    // empty cells of the subset
	Owner  Player // the only player with marks in the subset, or NoPlayer

	// Contested is set once two different players have marks in the
	// subset; nobody can win it any more.
	Contested bool
}

// Live reports whether someone can still complete the subset.
func (s *SubsetState) Live() bool { return !s.Contested }

func (s *SubsetState) add(p Player) {
	switch {
	case p == NoPlayer:
		s.Empty++
	case s.Owner == NoPlayer:
		s.Owner = p
	case s.Owner != p:
		s.Contested = true
	}
}

// States classifies every cell of b into every subset containing it. A live
// subset with no empty cell means b already has a winner, which callers
// never evaluate, so it is reported as ErrInconsistentState.
func (c *Catalog) States(b Board) ([]SubsetState, error) {
	states := make([]SubsetState, len(c.subsets))
	for i := range c.subsets {
		states[i].Subset = &c.subsets[i]
	}
	for cell := Cell(0); cell < BoardSize; cell++ {
		p := b.PlayerAt(cell)
		for i := range states {
			if states[i].Contested || !states[i].Subset.Contains(cell) {
				continue
			}
			states[i].add(p)
		}
	}
	for i := range states {
		if states[i].Live() && states[i].Empty == 0 {
			return nil, fmt.Errorf("%w: subset %d is complete for player %d\n%s", ErrInconsistentState, i, states[i].Owner, states[i].Subset)
		}
	}
	return states, nil
}
