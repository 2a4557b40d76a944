package connection

import mb "github.com/saeidalz13/battleship-fleet/models/battleship"

// ShipRecord is the wire shape the game API expects for one ship.
type ShipRecord struct {
	X         string `json:"x"`
	Y         int    `json:"y"`
	Size      int    `json:"size"`
	Direction string `json:"direction"`
}

func NewShipRecord(ship mb.Ship) ShipRecord {
	return ShipRecord{
		X:         mb.ColumnLetter(ship.Anchor.Column),
		Y:         ship.Anchor.Row,
		Size:      ship.Size,
		Direction: ship.Orientation.String(),
	}
}

func NewShipRecords(ships []mb.Ship) []ShipRecord {
	records := make([]ShipRecord, 0, len(ships))
	for _, ship := range ships {
		records = append(records, NewShipRecord(ship))
	}
	return records
}

// Body of PATCH /game/{gameId} and payload of CodeReady.
type ReqSubmitFleet struct {
	GameId string       `json:"game_id,omitempty"`
	Ships  []ShipRecord `json:"ships"`
}

func NewReqSubmitFleet(ships []mb.Ship) ReqSubmitFleet {
	return ReqSubmitFleet{Ships: NewShipRecords(ships)}
}
