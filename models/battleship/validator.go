package battleship

type RejectReason uint8

const (
	RejectNone RejectReason = iota
	RejectInvalidInput
	RejectOutOfBounds
	RejectCollision
)

func (r RejectReason) String() string {
	switch r {
	case RejectInvalidInput:
		return "INVALID_INPUT"
	case RejectOutOfBounds:
		return "OUT_OF_BOUNDS"
	case RejectCollision:
		return "COLLISION"
	default:
		return "NONE"
	}
}

type Verdict struct {
	Accepted bool
	Reason   RejectReason
}

func accepted() Verdict {
	return Verdict{Accepted: true}
}

func rejected(reason RejectReason) Verdict {
	return Verdict{Reason: reason}
}

// Validate decides whether candidate may join fleet. Bounds are checked
// before collisions and only the first failing reason is reported.
func Validate(candidate Ship, fleet []Ship) Verdict {
	cells := candidate.OccupiedCells()

	for _, cell := range cells {
		if !InBounds(cell) {
			return rejected(RejectOutOfBounds)
		}
	}

	taken := make(map[Cell]struct{}, len(cells))
	for _, cell := range cells {
		taken[cell] = struct{}{}
	}

	for _, existing := range fleet {
		for _, cell := range existing.OccupiedCells() {
			if _, prs := taken[cell]; prs {
				return rejected(RejectCollision)
			}
		}
	}

	return accepted()
}
