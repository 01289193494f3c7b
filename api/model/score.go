package model

import (
	"time"

	"github.com/a-bouts/glider-scoring/flight"
	"github.com/a-bouts/glider-scoring/live"
	"github.com/a-bouts/glider-scoring/race"
)

type Replay struct {
	Race    race.Race     `json:"race"`
	Flights []live.Flight `json:"flights"`
	Roster  race.Roster   `json:"roster"`
	// Until ignores the fixes recorded later, when set.
	Until       time.Time `json:"until"`
	MinDistance float64   `json:"minDistance"`
}

type Session struct {
	Race   race.Race   `json:"race"`
	Roster race.Roster `json:"roster"`
}

type Opened struct {
	ID        string         `json:"id"`
	Standings live.Standings `json:"standings"`
}

type Fixes struct {
	Fixes []flight.Fix `json:"fixes"`
}

type Events struct {
	Events []Event `json:"events"`
}

type Event struct {
	Type string     `json:"type"`
	Num  int        `json:"num"`
	Fix  flight.Fix `json:"fix"`
}
