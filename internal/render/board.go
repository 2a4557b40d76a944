// Package render draws the placement board and fleet counters as text.
// It only reads engine state.
package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
)

const (
	symbolWater = "~"
)

type BoardRenderer struct {
	out         io.Writer
	lastMessage string
}

var _ mb.Observer = (*BoardRenderer)(nil)

func NewBoardRenderer(out io.Writer) *BoardRenderer {
	return &BoardRenderer{out: out}
}

func (br *BoardRenderer) OnTransition(engine *mb.PlacementEngine, t mb.Transition) {
	switch t.To {
	case mb.StateValidating, mb.StateAccepted:
		return

	case mb.StateRejected:
		br.lastMessage = rejectionMessage(t)
		return

	case mb.StateFleetComplete:
		if t.Err != nil {
			br.lastMessage = "submission failed, try again: " + t.Err.Error()
		} else {
			br.lastMessage = "fleet complete, ready to submit"
		}

	case mb.StateSubmitted:
		br.lastMessage = "fleet submitted, waiting for opponent"

	case mb.StateAwaitingPlacementInput:
		// keep a rejection visible on the retry prompt
		if t.From != mb.StateRejected {
			br.lastMessage = ""
		}

	default:
		br.lastMessage = ""
	}

	fmt.Fprint(br.out, Render(engine))
	if br.lastMessage != "" {
		fmt.Fprintln(br.out, br.lastMessage)
	}
}

func rejectionMessage(t mb.Transition) string {
	switch t.Verdict.Reason {
	case mb.RejectInvalidInput:
		if t.Err != nil {
			return "invalid input: " + t.Err.Error()
		}
		return "invalid input"
	case mb.RejectOutOfBounds:
		return fmt.Sprintf("ship at %s leaves the board", t.Ship.Anchor)
	case mb.RejectCollision:
		return fmt.Sprintf("ship at %s collides with another ship", t.Ship.Anchor)
	default:
		return "placement rejected"
	}
}

// Render returns the board, the remaining counters and the current
// selection of engine.
func Render(engine *mb.PlacementEngine) string {
	occupied := make(map[mb.Cell]int, mb.GridSize*mb.GridSize)
	for _, ship := range engine.Fleet() {
		for _, cell := range ship.OccupiedCells() {
			occupied[cell] = ship.Size
		}
	}

	var buffer bytes.Buffer
	tabWriter := tabwriter.NewWriter(&buffer, 2, 0, 1, ' ', 0)

	fmt.Fprint(tabWriter, "\t")
	for col := mb.MinColumn; col <= mb.MaxColumn; col++ {
		fmt.Fprint(tabWriter, mb.ColumnLetter(col)+"\t")
	}
	fmt.Fprint(tabWriter, "\n")

	for row := mb.MinRow; row <= mb.MaxRow; row++ {
		fmt.Fprint(tabWriter, strconv.Itoa(row)+"\t")
		for col := mb.MinColumn; col <= mb.MaxColumn; col++ {
			if size, prs := occupied[mb.NewCell(col, row)]; prs {
				fmt.Fprint(tabWriter, strconv.Itoa(size)+"\t")
			} else {
				fmt.Fprint(tabWriter, symbolWater+"\t")
			}
		}
		fmt.Fprint(tabWriter, "\n")
	}
	tabWriter.Flush()

	inventory := engine.Inventory()
	fmt.Fprint(&buffer, "remaining:")
	for _, size := range mb.NewFleetInventory().Sizes() {
		fmt.Fprintf(&buffer, " [%d]x%d", size, inventory[size])
	}
	fmt.Fprint(&buffer, "\n")

	if size, orientation, ok := engine.Selection(); ok {
		fmt.Fprintf(&buffer, "placing size %d %s\n", size, orientation)
	}
	fmt.Fprintf(&buffer, "state: %s\n", engine.State())

	return buffer.String()
}
