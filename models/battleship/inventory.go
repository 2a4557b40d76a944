package battleship

import (
	"sort"

	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
)

// Required fleet composition: ship size -> count.
var defaultFleetComposition = map[int]int{
	ShipSizeDestroyer:  4,
	ShipSizeCruiser:    3,
	ShipSizeBattleship: 2,
	ShipSizeCarrier:    1,
}

type FleetInventory struct {
	remaining map[int]int
}

func NewFleetInventory() *FleetInventory {
	remaining := make(map[int]int, len(defaultFleetComposition))
	for size, count := range defaultFleetComposition {
		remaining[size] = count
	}
	return &FleetInventory{remaining: remaining}
}

// Remaining returns 0 for sizes that are not part of the fleet.
func (fi *FleetInventory) Remaining(size int) int {
	return fi.remaining[size]
}

func (fi *FleetInventory) Decrement(size int) error {
	if fi.remaining[size] == 0 {
		return cerr.ErrDepleted(size)
	}
	fi.remaining[size]--
	return nil
}

func (fi *FleetInventory) IsComplete() bool {
	return fi.Total() == 0
}

func (fi *FleetInventory) Total() int {
	total := 0
	for _, count := range fi.remaining {
		total += count
	}
	return total
}

// Sizes returns every tracked size in ascending order.
func (fi *FleetInventory) Sizes() []int {
	sizes := make([]int, 0, len(fi.remaining))
	for size := range fi.remaining {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

func (fi *FleetInventory) Snapshot() map[int]int {
	snapshot := make(map[int]int, len(fi.remaining))
	for size, count := range fi.remaining {
		snapshot[size] = count
	}
	return snapshot
}
