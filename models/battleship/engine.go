package battleship

import (
	"fmt"

	"github.com/rs/zerolog/log"

	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
)

type PlacementState uint8

const (
	StateSelectingSize PlacementState = iota
	StateAwaitingPlacementInput
	StateValidating
	StateAccepted
	StateRejected
	StateFleetComplete

	// Entered only after the submission collaborator confirmed the fleet
	StateSubmitted
)

func (s PlacementState) String() string {
	switch s {
	case StateSelectingSize:
		return "SELECTING_SIZE"
	case StateAwaitingPlacementInput:
		return "AWAITING_PLACEMENT_INPUT"
	case StateValidating:
		return "VALIDATING"
	case StateAccepted:
		return "ACCEPTED"
	case StateRejected:
		return "REJECTED"
	case StateFleetComplete:
		return "FLEET_COMPLETE"
	case StateSubmitted:
		return "SUBMITTED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
	}
}

// Transition is handed to observers after every state change. Ship is
// set while a candidate is being judged; Err carries the detail of an
// invalid input or a failed submission.
type Transition struct {
	From    PlacementState
	To      PlacementState
	Ship    *Ship
	Verdict Verdict
	Err     error
}

type Observer interface {
	OnTransition(engine *PlacementEngine, t Transition)
}

type ObserverFunc func(engine *PlacementEngine, t Transition)

func (f ObserverFunc) OnTransition(engine *PlacementEngine, t Transition) {
	f(engine, t)
}

// Exists only while awaiting placement input, so a chosen size
// can never outlive the placement it was chosen for.
type placementInput struct {
	size        int
	orientation Orientation
}

type FleetPlacer interface {
	SelectSize(size int) error
	ToggleOrientation() error
	CancelSelection() error
	PlaceShip(column, row string) (Verdict, error)
	ReadyToSubmit() bool
	Fleet() []Ship
}

type PlacementEngine struct {
	state     PlacementState
	inventory *FleetInventory
	fleet     []Ship
	input     *placementInput
	observers []Observer
}

var _ FleetPlacer = (*PlacementEngine)(nil)

func NewPlacementEngine(observers ...Observer) *PlacementEngine {
	inventory := NewFleetInventory()
	return &PlacementEngine{
		state:     StateSelectingSize,
		inventory: inventory,
		fleet:     make([]Ship, 0, inventory.Total()),
		observers: observers,
	}
}

func (pe *PlacementEngine) Subscribe(observer Observer) {
	pe.observers = append(pe.observers, observer)
}

func (pe *PlacementEngine) State() PlacementState {
	return pe.state
}

// Selection reports the size and orientation being placed. ok is false
// outside AWAITING_PLACEMENT_INPUT.
func (pe *PlacementEngine) Selection() (size int, orientation Orientation, ok bool) {
	if pe.input == nil {
		return 0, Horizontal, false
	}
	return pe.input.size, pe.input.orientation, true
}

// Fleet returns a copy of the accepted ships in placement order.
func (pe *PlacementEngine) Fleet() []Ship {
	fleet := make([]Ship, len(pe.fleet))
	copy(fleet, pe.fleet)
	return fleet
}

func (pe *PlacementEngine) Remaining(size int) int {
	return pe.inventory.Remaining(size)
}

func (pe *PlacementEngine) Inventory() map[int]int {
	return pe.inventory.Snapshot()
}

// SelectableSizes lists, in ascending order, the sizes that still have
// ships left. It is empty once the fleet is complete.
func (pe *PlacementEngine) SelectableSizes() []int {
	if !pe.canSelect() {
		return []int{}
	}

	sizes := make([]int, 0, len(defaultFleetComposition))
	for _, size := range pe.inventory.Sizes() {
		if pe.inventory.Remaining(size) > 0 {
			sizes = append(sizes, size)
		}
	}
	return sizes
}

func (pe *PlacementEngine) ReadyToSubmit() bool {
	return pe.state == StateFleetComplete
}

func (pe *PlacementEngine) canSelect() bool {
	return pe.state == StateSelectingSize || pe.state == StateAwaitingPlacementInput
}

// SelectSize picks the next ship to place. Picking again while awaiting
// input swaps the size and resets the orientation.
func (pe *PlacementEngine) SelectSize(size int) error {
	if !pe.canSelect() {
		return cerr.ErrInvalidState("select size", pe.state.String())
	}
	if !IsValidShipSize(size) {
		return cerr.ErrInvalidShipSize(size)
	}
	if pe.inventory.Remaining(size) == 0 {
		return cerr.ErrSizeNotSelectable(size)
	}

	pe.input = &placementInput{size: size, orientation: Horizontal}
	pe.transition(Transition{To: StateAwaitingPlacementInput})
	return nil
}

func (pe *PlacementEngine) ToggleOrientation() error {
	if pe.state != StateAwaitingPlacementInput {
		return cerr.ErrInvalidState("toggle orientation", pe.state.String())
	}

	pe.input.orientation = pe.input.orientation.Toggle()
	pe.transition(Transition{To: StateAwaitingPlacementInput})
	return nil
}

func (pe *PlacementEngine) CancelSelection() error {
	if pe.state != StateAwaitingPlacementInput {
		return cerr.ErrInvalidState("cancel selection", pe.state.String())
	}

	pe.input = nil
	pe.transition(Transition{To: StateSelectingSize})
	return nil
}

// PlaceShip runs one full placement attempt for the selected size.
// Rejections are not errors: they come back in the Verdict and the
// engine keeps awaiting input for the same size. An error is returned
// when the engine is not awaiting input or the selected size ran out
// before the commit.
func (pe *PlacementEngine) PlaceShip(column, row string) (Verdict, error) {
	if pe.state != StateAwaitingPlacementInput {
		return Verdict{}, cerr.ErrInvalidState("place ship", pe.state.String())
	}

	anchor, err := ParseCell(column, row)
	if err != nil {
		verdict := rejected(RejectInvalidInput)
		pe.transition(Transition{To: StateRejected, Verdict: verdict, Err: err})
		pe.transition(Transition{To: StateAwaitingPlacementInput, Verdict: verdict})
		return verdict, nil
	}

	candidate := NewShip(anchor, pe.input.size, pe.input.orientation)
	pe.transition(Transition{To: StateValidating, Ship: &candidate})

	verdict := Validate(candidate, pe.fleet)
	if !verdict.Accepted {
		log.Debug().Str("ship", candidate.Anchor.String()).Int("size", candidate.Size).Str("reason", verdict.Reason.String()).Msg("placement rejected")
		pe.transition(Transition{To: StateRejected, Ship: &candidate, Verdict: verdict})
		pe.transition(Transition{To: StateAwaitingPlacementInput, Verdict: verdict})
		return verdict, nil
	}

	// The size may have run out since it was picked; check again at commit
	if pe.inventory.Remaining(candidate.Size) == 0 {
		pe.input = nil
		pe.transition(Transition{To: StateSelectingSize, Ship: &candidate})
		return Verdict{}, cerr.ErrSizeNotSelectable(candidate.Size)
	}

	pe.commit(candidate)
	pe.transition(Transition{To: StateAccepted, Ship: &candidate, Verdict: verdict})

	next := StateSelectingSize
	if pe.inventory.IsComplete() {
		next = StateFleetComplete
	}
	pe.transition(Transition{To: next, Ship: &candidate, Verdict: verdict})
	return verdict, nil
}

func (pe *PlacementEngine) commit(ship Ship) {
	if err := pe.inventory.Decrement(ship.Size); err != nil {
		panic(fmt.Sprintf("inventory invariant violated: %v", err))
	}
	pe.fleet = append(pe.fleet, ship)
	pe.input = nil

	log.Debug().Str("anchor", ship.Anchor.String()).Int("size", ship.Size).Str("direction", ship.Orientation.String()).Int("remaining", pe.inventory.Total()).Msg("ship placed")
}

// MarkSubmitted ends the session once the fleet has been accepted remotely.
func (pe *PlacementEngine) MarkSubmitted() error {
	if pe.state != StateFleetComplete {
		return cerr.ErrInvalidState("mark submitted", pe.state.String())
	}

	pe.transition(Transition{To: StateSubmitted})
	return nil
}

// ReportSubmissionFailure keeps the engine in FLEET_COMPLETE with the
// fleet intact and lets observers show the failure.
func (pe *PlacementEngine) ReportSubmissionFailure(err error) error {
	if pe.state != StateFleetComplete {
		return cerr.ErrInvalidState("report submission failure", pe.state.String())
	}

	pe.transition(Transition{To: StateFleetComplete, Err: err})
	return nil
}

func (pe *PlacementEngine) transition(t Transition) {
	t.From = pe.state
	pe.state = t.To

	for _, observer := range pe.observers {
		observer.OnTransition(pe, t)
	}
}
