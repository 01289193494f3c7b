package flight

import (
	"fmt"

	igc "github.com/ezgliding/goigc/pkg/igc"

	"github.com/a-bouts/glider-scoring/latlon"
)

// ParseIGC reads the B records of an IGC flight log.
func ParseIGC(content string) ([]Fix, error) {
	track, err := igc.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing igc: %w", err)
	}
	return fromPoints(track.Points), nil
}

// ReadIGC reads the IGC flight log at path.
func ReadIGC(path string) ([]Fix, error) {
	track, err := igc.ParseLocation(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return fromPoints(track.Points), nil
}

func fromPoints(points []igc.Point) []Fix {
	fixes := make([]Fix, 0, len(points))
	for _, p := range points {
		altitude := float64(p.GNSSAltitude)
		fixes = append(fixes, Fix{
			Time: p.Time.UnixMilli(),
			Coordinate: latlon.LatLon{
				Lat: p.Lat.Degrees(),
				Lon: p.Lng.Degrees(),
			},
			Valid:    p.FixValidity == 'A',
			Altitude: &altitude,
		})
	}
	return fixes
}
