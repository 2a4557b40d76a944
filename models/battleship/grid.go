package battleship

import (
	"fmt"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
)

const (
	GridSize = 10

	MinColumn = 0
	MaxColumn = GridSize - 1
	MinRow    = 1
	MaxRow    = GridSize
)

// Cell is one address on the board. Column is the ordinal of
// the letter (A=0 .. J=9) and Row is 1-based as the player sees it.
type Cell struct {
	Column int
	Row    int
}

func NewCell(column, row int) Cell {
	return Cell{Column: column, Row: row}
}

func (c Cell) String() string {
	return fmt.Sprintf("%s%d", ColumnLetter(c.Column), c.Row)
}

func InBounds(c Cell) bool {
	return c.Column >= MinColumn && c.Column <= MaxColumn && c.Row >= MinRow && c.Row <= MaxRow
}

// ColumnIndex converts a column letter (case-insensitive) to its ordinal.
func ColumnIndex(letter string) (int, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if len(letter) != 1 {
		return 0, cerr.ErrColumnOutOfRange(letter)
	}

	col := int(letter[0]) - 'A'
	if col < MinColumn || col > MaxColumn {
		return 0, cerr.ErrColumnOutOfRange(letter)
	}
	return col, nil
}

// ColumnLetter is the inverse of ColumnIndex. Ordinals past J keep
// counting up the alphabet so out-of-board cells still print sensibly (K1).
func ColumnLetter(col int) string {
	if col < 0 || col > 25 {
		return "?"
	}
	return string(rune('A' + col))
}

// ParseCell normalizes raw column and row text into a Cell on the board.
func ParseCell(column, row string) (Cell, error) {
	col, err := ColumnIndex(column)
	if err != nil {
		return Cell{}, err
	}

	rowText := strings.TrimSpace(row)
	r, err := strconv.Atoi(rowText)
	if err != nil || r < MinRow || r > MaxRow {
		return Cell{}, cerr.ErrRowOutOfRange(rowText)
	}

	return NewCell(col, r), nil
}
