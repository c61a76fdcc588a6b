package tictactoe

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
)

const (
	DefaultSubsetCount   = 15
	DefaultMinSubsetSize = 3
	DefaultMaxSubsetSize = 5
)

var ErrInvalidCatalog = errors.New("invalid catalog parameters")

// Subset is a group of cells that wins the game for whoever fills all of it.
type Subset struct {
	cells []Cell
	mask  uint32
	wins  [MaxPlayers]uint32 // board bits restricted to mask when player i+1 owns every cell
}

func newSubset(cells []Cell) Subset {
	s := Subset{cells: slices.Clone(cells)}
	for _, c := range cells {
		s.mask |= cellMask(c)
		for p := FirstPlayer; p <= MaxPlayers; p++ {
			s.wins[p-1] |= uint32(p) << cellShift(c)
		}
	}
	return s
}

// Cells returns the subset's cells in generation order.
func (s Subset) Cells() []Cell { return slices.Clone(s.cells) }

// Size returns the number of cells in the subset.
func (s Subset) Size() int { return len(s.cells) }

// Mask returns the two-bits-per-cell mask covering the subset.
func (s Subset) Mask() uint32 { return s.mask }

// Contains reports whether c belongs to the subset.
func (s Subset) Contains(c Cell) bool {
	return s.mask&cellMask(c) != 0
}

// Winner returns the player holding every cell of the subset, or NoPlayer.
func (s Subset) Winner(b Board) Player {
	bits := b.bits & s.mask
	for p := FirstPlayer; p <= MaxPlayers; p++ {
		if bits == s.wins[p-1] {
			return p
		}
	}
	return NoPlayer
}

// String draws the subset's cells as '#' on an otherwise empty grid.
func (s Subset) String() string {
	return renderBits(s.mask, false)
}

// CatalogConfig describes how to generate a Catalog.
type CatalogConfig struct {
	Seed    int64
	Count   int
	MinSize int
	MaxSize int
}

// DefaultCatalogConfig returns the standard 15 subsets of 3 to 5 cells.
func DefaultCatalogConfig(seed int64) CatalogConfig {
	return CatalogConfig{
		Seed:    seed,
		Count:   DefaultSubsetCount,
		MinSize: DefaultMinSubsetSize,
		MaxSize: DefaultMaxSubsetSize,
	}
}

// Validate checks the generation parameters.
func (cfg CatalogConfig) Validate() error {
	switch {
	case cfg.Count < 0:
		return fmt.Errorf("%w: count %d is negative", ErrInvalidCatalog, cfg.Count)
	case cfg.MinSize < 1 || cfg.MaxSize > BoardSize:
		return fmt.Errorf("%w: size range [%d, %d] outside [1, %d]", ErrInvalidCatalog, cfg.MinSize, cfg.MaxSize, BoardSize)
	case cfg.MinSize > cfg.MaxSize:
		return fmt.Errorf("%w: min size %d exceeds max size %d", ErrInvalidCatalog, cfg.MinSize, cfg.MaxSize)
	}
	return nil
}

// Catalog is the read-only set of winning subsets for one game.
type Catalog struct {
	subsets []Subset
}

// NewCatalog generates cfg.Count subsets. Each subset draws its size
// uniformly from [MinSize, MaxSize] and then that many distinct cells,
// redrawing duplicates. The same config always yields the same subsets.
func NewCatalog(cfg CatalogConfig) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	c := &Catalog{subsets: make([]Subset, 0, cfg.Count)}
	for i := 0; i < cfg.Count; i++ {
		size := cfg.MinSize + rng.Intn(cfg.MaxSize-cfg.MinSize+1)
		cells := make([]Cell, 0, size)
		for len(cells) < size {
			next := Cell(rng.Intn(BoardSize))
			if slices.Contains(cells, next) {
				continue
			}
			cells = append(cells, next)
		}
		c.subsets = append(c.subsets, newSubset(cells))
	}
	return c, nil
}

// NewCatalogFromSubsets builds a catalog from explicit cell lists, keeping
// their order.
func NewCatalogFromSubsets(subsets ...[]Cell) (*Catalog, error) {
	c := &Catalog{subsets: make([]Subset, 0, len(subsets))}
	for i, cells := range subsets {
		if len(cells) == 0 {
			return nil, fmt.Errorf("%w: subset %d is empty", ErrInvalidCatalog, i)
		}
		for j, cell := range cells {
			if !cell.Valid() {
				return nil, fmt.Errorf("%w: subset %d has cell %d off the board", ErrInvalidCatalog, i, cell)
			}
			if slices.Contains(cells[:j], cell) {
				return nil, fmt.Errorf("%w: subset %d repeats cell %d", ErrInvalidCatalog, i, cell)
			}
		}
		c.subsets = append(c.subsets, newSubset(cells))
	}
	return c, nil
}

// Len returns the number of subsets.
func (c *Catalog) Len() int { return len(c.subsets) }

// Subsets returns the subsets in generation order.
func (c *Catalog) Subsets() []Subset { return slices.Clone(c.subsets) }

// Masks returns each subset's cell mask in generation order.
func (c *Catalog) Masks() []uint32 {
	masks := make([]uint32, len(c.subsets))
	for i := range c.subsets {
		masks[i] = c.subsets[i].mask
	}
	return masks
}

// Winner returns the owner of the first fully owned subset, or NoPlayer.
func (c *Catalog) Winner(b Board) Player {
	for i := range c.subsets {
		if w := c.subsets[i].Winner(b); w != NoPlayer {
			return w
		}
	}
	return NoPlayer
}

// IsWinningMove reports whether p playing on cell would win. The board is
// not modified; an illegal move never wins.
func (c *Catalog) IsWinningMove(b Board, p Player, cell Cell) bool {
	next := b.Snapshot()
	if err := next.Play(p, cell); err != nil {
		return false
	}
	return c.Winner(next) == p
}

// String draws every subset, one grid per subset, in generation order.
func (c *Catalog) String() string {
	parts := make([]string, len(c.subsets))
	for i := range c.subsets {
		parts[i] = c.subsets[i].String()
	}
	return strings.Join(parts, "\n")
}
