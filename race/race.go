package race

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/a-bouts/glider-scoring/latlon"
	"github.com/a-bouts/glider-scoring/task"
)

type RaceType string

const (
	Racing RaceType = "Racing"
	AAT    RaceType = "AAT"
)

// LonLat is a [longitude, latitude] pair in degrees.
type LonLat [2]float64

func (p LonLat) LatLon() latlon.LatLon {
	return latlon.LatLon{Lat: p[1], Lon: p[0]}
}

type RaceWaypoint struct {
	Name   string        `json:"name,omitempty"`
	Type   task.ZoneType `json:"type"`
	LonLat LonLat        `json:"lonlat"`
	Radius float64       `json:"radius,omitempty"`
	Length float64       `json:"length,omitempty"`
}

// Race is the task as it is described in JSON.
type Race struct {
	Name string   `json:"name,omitempty"`
	Type RaceType `json:"type"`
	// MinTime is the minimum time of an AAT, in seconds.
	MinTime float64        `json:"minTime,omitempty"`
	Points  []RaceWaypoint `json:"points"`
}

func Load(path string) (*Race, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Race
	if err := json.Unmarshal(content, &r); err != nil {
		return nil, fmt.Errorf("race: decoding %s: %w", path, err)
	}
	return &r, nil
}

func (r Race) IsAAT() bool {
	return r.Type == AAT
}

// Task resolves the waypoints into a task.
func (r Race) Task() (*task.Task, error) {
	specs := make([]task.ZoneSpec, len(r.Points))
	for i, p := range r.Points {
		specs[i] = task.ZoneSpec{
			Name:     p.Name,
			Type:     p.Type,
			Location: p.LonLat.LatLon(),
			Radius:   p.Radius,
			Length:   p.Length,
		}
	}

	options := task.Options{IsAAT: r.IsAAT()}
	if options.IsAAT {
		options.MinTime = r.MinTime
	}

	return task.Build(specs, options)
}
