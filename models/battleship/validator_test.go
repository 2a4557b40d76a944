package battleship

import (
	"testing"
)

func TestValidate(t *testing.T) {
	a1Destroyer := NewShip(NewCell(0, 1), 2, Horizontal)

	tests := []struct {
		name            string
		candidate       Ship
		fleet           []Ship
		expectedVerdict Verdict
	}{
		{
			name:            "empty fleet accepts A1 destroyer",
			candidate:       a1Destroyer,
			expectedVerdict: Verdict{Accepted: true},
		},
		{
			name:            "vertical cruiser sharing A1 collides",
			candidate:       NewShip(NewCell(0, 1), 3, Vertical),
			fleet:           []Ship{a1Destroyer},
			expectedVerdict: Verdict{Reason: RejectCollision},
		},
		{
			name:            "horizontal cruiser at I1 leaves the board",
			candidate:       NewShip(NewCell(8, 1), 3, Horizontal),
			expectedVerdict: Verdict{Reason: RejectOutOfBounds},
		},
		{
			name:            "vertical carrier at A6 leaves the board",
			candidate:       NewShip(NewCell(0, 6), 6, Vertical),
			expectedVerdict: Verdict{Reason: RejectOutOfBounds},
		},
		{
			name:            "vertical carrier at A5 fits exactly",
			candidate:       NewShip(NewCell(0, 5), 6, Vertical),
			expectedVerdict: Verdict{Accepted: true},
		},
		{
			name:            "bounds take precedence over collision",
			candidate:       NewShip(NewCell(9, 1), 2, Horizontal),
			fleet:           []Ship{NewShip(NewCell(9, 1), 2, Vertical)},
			expectedVerdict: Verdict{Reason: RejectOutOfBounds},
		},
		{
			name:            "adjacent ships do not collide",
			candidate:       NewShip(NewCell(0, 2), 2, Horizontal),
			fleet:           []Ship{a1Destroyer},
			expectedVerdict: Verdict{Accepted: true},
		},
		{
			name:            "crossing in the middle collides",
			candidate:       NewShip(NewCell(3, 1), 4, Vertical),
			fleet:           []Ship{NewShip(NewCell(1, 3), 4, Horizontal)},
			expectedVerdict: Verdict{Reason: RejectCollision},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			verdict := Validate(test.candidate, test.fleet)
			if verdict != test.expectedVerdict {
				t.Fatalf("expected verdict: %+v\tgot: %+v", test.expectedVerdict, verdict)
			}

			// no hidden state: a second call gives the same answer
			if again := Validate(test.candidate, test.fleet); again != verdict {
				t.Fatalf("expected repeatable verdict: %+v\tgot: %+v", verdict, again)
			}
		})
	}
}

func TestValidateCollisionIsSymmetric(t *testing.T) {
	pairs := [][2]Ship{
		{NewShip(NewCell(0, 1), 2, Horizontal), NewShip(NewCell(0, 1), 3, Vertical)},
		{NewShip(NewCell(2, 2), 6, Horizontal), NewShip(NewCell(5, 1), 4, Vertical)},
		{NewShip(NewCell(0, 1), 2, Horizontal), NewShip(NewCell(2, 1), 2, Horizontal)},
	}

	for _, pair := range pairs {
		first := Validate(pair[0], []Ship{pair[1]})
		second := Validate(pair[1], []Ship{pair[0]})
		if first != second {
			t.Fatalf("expected symmetric verdicts for %+v and %+v\tgot: %+v and %+v", pair[0], pair[1], first, second)
		}
	}
}

func TestValidateDoesNotMutateFleet(t *testing.T) {
	fleet := []Ship{NewShip(NewCell(0, 1), 2, Horizontal)}
	before := fleet[0]

	_ = Validate(NewShip(NewCell(0, 1), 3, Vertical), fleet)

	if len(fleet) != 1 || fleet[0] != before {
		t.Fatalf("fleet was mutated: %+v", fleet)
	}
}
