package race

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/a-bouts/glider-scoring/task"
)

type xcsoarTask struct {
	XMLName    xml.Name      `xml:"Task"`
	Type       string        `xml:"type,attr"`
	AATMinTime float64       `xml:"aat_min_time,attr"`
	Points     []xcsoarPoint `xml:"Point"`
}

type xcsoarPoint struct {
	Type     string `xml:"type,attr"`
	Waypoint struct {
		Name     string `xml:"name,attr"`
		Location struct {
			Longitude float64 `xml:"longitude,attr"`
			Latitude  float64 `xml:"latitude,attr"`
		} `xml:"Location"`
	} `xml:"Waypoint"`
	ObservationZone struct {
		Type   string  `xml:"type,attr"`
		Radius float64 `xml:"radius,attr"`
		Length float64 `xml:"length,attr"`
	} `xml:"ObservationZone"`
}

// ParseXCSoar reads an XCSoar .tsk task.
func ParseXCSoar(r io.Reader) (*Race, error) {
	var t xcsoarTask
	if err := xml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("race: decoding xcsoar task: %w", err)
	}

	race := &Race{Type: Racing}
	if t.Type == "AAT" {
		race.Type = AAT
		race.MinTime = t.AATMinTime
	}

	for _, p := range t.Points {
		oz := p.ObservationZone
		race.Points = append(race.Points, RaceWaypoint{
			Name:   p.Waypoint.Name,
			Type:   task.ZoneType(oz.Type),
			LonLat: LonLat{p.Waypoint.Location.Longitude, p.Waypoint.Location.Latitude},
			Radius: oz.Radius,
			Length: oz.Length,
		})
	}

	return race, nil
}

func ReadXCSoar(path string) (*Race, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseXCSoar(f)
}
