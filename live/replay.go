package live

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/a-bouts/glider-scoring/flight"
	"github.com/a-bouts/glider-scoring/race"
	"github.com/a-bouts/glider-scoring/solver"
)

// Flight is the recorded flight of one competitor.
type Flight struct {
	Callsign string `json:"callsign"`
	// Handicap in percent. Zero takes it from the roster.
	Handicap int          `json:"handicap,omitempty"`
	Fixes    []flight.Fix `json:"fixes"`
}

// Replay solves every flight of a day in parallel and ranks them. Only
// fixes up to until are used, unless it is zero.
func Replay(ctx context.Context, r race.Race, flights []Flight, roster race.Roster, opts Options, until time.Time) (Standings, error) {
	t, err := r.Task()
	if err != nil {
		return Standings{}, fmt.Errorf("live: replay: %w", err)
	}

	entries := make([]entry, len(flights))
	handicaps := roster.Handicaps()

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range flights {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fixes := f.Fixes
			if !until.IsZero() {
				fixes = flight.Until(fixes, until)
			}

			s := solver.New(t)
			s.Consume(fixes)

			entries[i] = entry{callsign: f.Callsign, handicap: handicapOf(f, handicaps), marking: s.Marking()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Standings{}, err
	}

	log.WithField("flights", len(flights)).Infof("Replayed %s task", r.Type)

	standings := rank(entries, opts)
	standings.Updated = time.Now()
	return standings, nil
}

func handicapOf(f Flight, handicaps map[string]int) int {
	if f.Handicap > 0 {
		return f.Handicap
	}
	if h := handicaps[strings.ToUpper(f.Callsign)]; h > 0 {
		return h
	}
	log.WithField("callsign", f.Callsign).Warn("No handicap, using the default one")
	return race.DefaultHandicap
}
