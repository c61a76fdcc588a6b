// Package tictactoe implements the rules of generalized tic-tac-toe on a
// 16-cell board where the winning lines are randomly generated subsets of
// cells rather than rows, columns and diagonals.
package tictactoe

import (
	"errors"
	"fmt"
)

const (
	// BoardSize is the number of cells on the board.
	BoardSize = 16
	// RowWidth is the number of cells per rendered row.
	RowWidth = 4
	// MaxPlayers is the largest player id a cell can hold.
	MaxPlayers = 3
)

var (
	ErrInvalidMove       = errors.New("invalid move")
	ErrInconsistentState = errors.New("inconsistent subset state")
)

// Cell identifies a board cell in [0, BoardSize).
type Cell int

// Valid reports whether the cell is on the board.
func (c Cell) Valid() bool { return c >= 0 && c < BoardSize }

// Player identifies a player. NoPlayer marks an empty cell.
type Player uint8

const (
	NoPlayer    Player = 0
	FirstPlayer Player = 1
)

// Valid reports whether p may place a mark.
func (p Player) Valid() bool { return p >= FirstPlayer && p <= MaxPlayers }

// Board packs the whole position into 32 bits: two bits per cell holding the
// occupying player id. The zero value is an empty board. Board is a value
// type; assigning it takes an independent copy.
type Board struct {
	bits uint32
}

func cellShift(c Cell) uint { return uint(c) << 1 }

// cellMask returns the two-bit mask of a cell.
func cellMask(c Cell) uint32 { return 0b11 << cellShift(c) }

// PlayerAt returns the player occupying c, or NoPlayer.
func (b Board) PlayerAt(c Cell) Player {
	return Player((b.bits & cellMask(c)) >> cellShift(c))
}

// IsOccupied reports whether any player holds c.
func (b Board) IsOccupied(c Cell) bool {
	return b.bits&cellMask(c) != 0
}

// CountEmpty returns the number of empty cells.
func (b Board) CountEmpty() int {
	n := 0
	for c := Cell(0); c < BoardSize; c++ {
		if !b.IsOccupied(c) {
			n++
		}
	}
	return n
}

// CountOccupied returns the number of occupied cells.
func (b Board) CountOccupied() int {
	return BoardSize - b.CountEmpty()
}

// Full reports whether no empty cell remains.
func (b Board) Full() bool {
	return b.CountEmpty() == 0
}

// EmptyCells returns the empty cells in ascending order.
func (b Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, BoardSize)
	for c := Cell(0); c < BoardSize; c++ {
		if !b.IsOccupied(c) {
			cells = append(cells, c)
		}
	}
	return cells
}

// Play places p's mark on c. Occupied cells never change, so playing on one
// fails and leaves the board untouched.
func (b *Board) Play(p Player, c Cell) error {
	if !p.Valid() {
		return fmt.Errorf("%w: player %d out of range [%d, %d]", ErrInvalidMove, p, FirstPlayer, MaxPlayers)
	}
	if !c.Valid() {
		return fmt.Errorf("%w: cell %d out of range", ErrInvalidMove, c)
	}
	if b.IsOccupied(c) {
		return fmt.Errorf("%w: cell %d is occupied by player %d", ErrInvalidMove, c, b.PlayerAt(c))
	}
	b.bits |= uint32(p) << cellShift(c)
	return nil
}

// Snapshot returns a copy for speculative play.
func (b Board) Snapshot() Board {
	return b
}
