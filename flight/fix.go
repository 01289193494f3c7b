package flight

import (
	"time"

	"github.com/a-bouts/glider-scoring/latlon"
)

// Fix is a single position sample of a flight.
type Fix struct {
	Time       int64         `json:"time"` // epoch milliseconds
	Coordinate latlon.LatLon `json:"coordinate"`
	Valid      bool          `json:"valid"`
	Altitude   *float64      `json:"altitude,omitempty"`
}

func (f Fix) Timestamp() time.Time {
	return time.UnixMilli(f.Time).UTC()
}

// Until returns the leading fixes recorded no later than t.
func Until(fixes []Fix, t time.Time) []Fix {
	limit := t.UnixMilli()
	for i, fix := range fixes {
		if fix.Time > limit {
			return fixes[:i]
		}
	}
	return fixes
}

// ValidOnly drops the fixes the logger flagged as invalid.
func ValidOnly(fixes []Fix) []Fix {
	valid := make([]Fix, 0, len(fixes))
	for _, fix := range fixes {
		if fix.Valid {
			valid = append(valid, fix)
		}
	}
	return valid
}
