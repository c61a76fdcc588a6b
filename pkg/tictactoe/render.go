package tictactoe

import (
	"strconv"
	"strings"
)

var playerSymbols = [MaxPlayers + 1]byte{'.', 'X', 'O', '#'}

// Symbol returns the single character used to draw p.
func (p Player) Symbol() byte {
	if int(p) >= len(playerSymbols) {
		return '?'
	}
	return playerSymbols[p]
}

// Render draws the board as a 4-per-row grid. When digits is set, empty
// cells show their index in hex instead of '.'.
func (b Board) Render(digits bool) string {
	return renderBits(b.bits, digits)
}

// String renders the board without cell indices.
func (b Board) String() string {
	return b.Render(false)
}

func renderBits(bits uint32, digits bool) string {
	var sb strings.Builder
	for c := Cell(0); c < BoardSize; c++ {
		p := Player((bits & cellMask(c)) >> cellShift(c))
		if p == NoPlayer && digits {
			sb.WriteString(strconv.FormatInt(int64(c), 16))
		} else {
			sb.WriteByte(p.Symbol())
		}
		if int(c)%RowWidth < RowWidth-1 {
			sb.WriteByte(' ')
		} else {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
