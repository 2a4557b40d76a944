package battleship

import (
	"strings"

	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
)

type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

const (
	DirectionHorizontal = "HORIZONTAL"
	DirectionVertical   = "VERTICAL"
)

func (o Orientation) String() string {
	if o == Vertical {
		return DirectionVertical
	}
	return DirectionHorizontal
}

func (o Orientation) Toggle() Orientation {
	if o == Vertical {
		return Horizontal
	}
	return Vertical
}

func ParseOrientation(direction string) (Orientation, error) {
	switch strings.ToUpper(strings.TrimSpace(direction)) {
	case DirectionHorizontal:
		return Horizontal, nil
	case DirectionVertical:
		return Vertical, nil
	default:
		return Horizontal, cerr.ErrInvalidOrientation(direction)
	}
}

const (
	ShipSizeDestroyer  = 2
	ShipSizeCruiser    = 3
	ShipSizeBattleship = 4
	ShipSizeCarrier    = 6
)

func IsValidShipSize(size int) bool {
	switch size {
	case ShipSizeDestroyer, ShipSizeCruiser, ShipSizeBattleship, ShipSizeCarrier:
		return true
	}
	return false
}

// Ship is a placed ship descriptor. It is a value and never changes
// after it has been built.
type Ship struct {
	Anchor      Cell
	Size        int
	Orientation Orientation
}

func NewShip(anchor Cell, size int, orientation Orientation) Ship {
	return Ship{Anchor: anchor, Size: size, Orientation: orientation}
}

// OccupiedCells extends from the anchor along columns for horizontal
// ships and along rows for vertical ones. Cells may fall off the board;
// bounds are the validator's concern.
func (sh Ship) OccupiedCells() []Cell {
	cells := make([]Cell, 0, sh.Size)
	for i := 0; i < sh.Size; i++ {
		if sh.Orientation == Vertical {
			cells = append(cells, NewCell(sh.Anchor.Column, sh.Anchor.Row+i))
		} else {
			cells = append(cells, NewCell(sh.Anchor.Column+i, sh.Anchor.Row))
		}
	}
	return cells
}
