// Package live scores a competition day while the competitors are flying,
// and replays finished days.
package live

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/glider-scoring/flight"
	"github.com/a-bouts/glider-scoring/race"
	"github.com/a-bouts/glider-scoring/scoring"
	"github.com/a-bouts/glider-scoring/solver"
	"github.com/a-bouts/glider-scoring/task"
	"github.com/a-bouts/glider-scoring/tracker"
)

// DefaultMinDistance is the handicapped distance, in km, a day needs to be
// valid when nothing else is configured.
const DefaultMinDistance = 100.0

var ErrUnknownCompetitor = errors.New("live: unknown competitor")

// Notifier is told about the starts, turns and finishes of the competitors.
type Notifier interface {
	Notify(callsign string, e tracker.Event) error
}

type Options struct {
	// MinDistance is Dm in km.
	MinDistance float64
}

func (o Options) minDistance() float64 {
	if o.MinDistance <= 0 {
		return DefaultMinDistance
	}
	return o.MinDistance
}

type Standing struct {
	Callsign string `json:"callsign"`
	Rank     int    `json:"rank"`
	// Handicap in percent.
	Handicap int               `json:"handicap"`
	Result   scoring.DayResult `json:"result"`
}

type Standings struct {
	Updated   time.Time          `json:"updated"`
	Factors   scoring.DayFactors `json:"factors"`
	Standings []Standing         `json:"standings"`
}

type competitor struct {
	callsign string
	handicap int
	solver   solver.Solver
}

type Session struct {
	ID   string
	Race race.Race

	task     *task.Task
	opts     Options
	notifier Notifier

	mu          sync.Mutex
	competitors map[string]*competitor
	order       []string
	standings   Standings
}

// NewSession prepares one solver per competitor of the roster. notifier may
// be nil.
func NewSession(id string, r race.Race, roster race.Roster, opts Options, notifier Notifier) (*Session, error) {
	t, err := r.Task()
	if err != nil {
		return nil, fmt.Errorf("live: session %s: %w", id, err)
	}

	s := &Session{
		ID:          id,
		Race:        r,
		task:        t,
		opts:        opts,
		notifier:    notifier,
		competitors: make(map[string]*competitor),
	}

	handicaps := roster.Handicaps()
	for _, c := range roster {
		if c.Callsign == "" {
			continue
		}
		key := strings.ToUpper(c.Callsign)
		if _, ok := s.competitors[key]; ok {
			return nil, fmt.Errorf("live: session %s: duplicate callsign %s", id, c.Callsign)
		}
		handicap := handicaps[key]
		if handicap <= 0 {
			handicap = race.DefaultHandicap
		}
		s.competitors[key] = &competitor{callsign: c.Callsign, handicap: handicap, solver: solver.New(t)}
		s.order = append(s.order, key)
	}

	return s, nil
}

// Push feeds new fixes of one competitor and returns the transitions they
// caused.
func (s *Session) Push(callsign string, fixes []flight.Fix) ([]tracker.Event, error) {
	s.mu.Lock()
	c, ok := s.competitors[strings.ToUpper(callsign)]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompetitor, callsign)
	}
	events := c.solver.Consume(fixes)
	s.mu.Unlock()

	for _, e := range events {
		log.WithFields(log.Fields{
			"session":  s.ID,
			"callsign": c.callsign,
			"event":    e.Type.String(),
		}).Infof("Turnpoint %d at %s", e.Num, e.Fix.Timestamp().Format(time.TimeOnly))

		if s.notifier == nil {
			continue
		}
		if err := s.notifier.Notify(c.callsign, e); err != nil {
			log.WithField("session", s.ID).Warnf("Notification failed : %v", err)
		}
	}

	return events, nil
}

// Refresh scores every competitor with what is known so far.
func (s *Session) Refresh() Standings {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]entry, len(s.order))
	for i, key := range s.order {
		c := s.competitors[key]
		entries[i] = entry{callsign: c.callsign, handicap: c.handicap, marking: c.solver.Marking()}
	}

	s.standings = rank(entries, s.opts)
	s.standings.Updated = time.Now()

	log.WithField("session", s.ID).Debugf("Refreshed %d standings", len(entries))

	return s.standings
}

// Standings returns the result of the last Refresh.
func (s *Session) Standings() Standings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.standings
}

type entry struct {
	callsign string
	handicap int
	marking  solver.Marking
}

func rank(entries []entry, opts Options) Standings {
	fractions := make([]float64, len(entries))
	for i, e := range entries {
		fractions[i] = float64(e.handicap) / 100
	}
	initial := scoring.InitialDayFactors{Ho: scoring.LowestHandicap(fractions), Dm: opts.minDistance()}

	scored := make([]scoring.Entry, len(entries))
	handicaps := make(map[string]int, len(entries))
	for i, e := range entries {
		m := e.marking
		scored[i] = scoring.Entry{
			ID:     e.callsign,
			Result: scoring.CreateIntermediateDayResult(m.Completed, m.Distance/1000, m.Time, fractions[i], initial),
		}
		handicaps[e.callsign] = e.handicap
	}

	ranked, factors := scoring.Rank(scored, initial)

	standings := make([]Standing, len(ranked))
	for i, r := range ranked {
		standings[i] = Standing{Callsign: r.ID, Rank: r.Rank, Handicap: handicaps[r.ID], Result: r.Result}
	}

	return Standings{Factors: factors, Standings: standings}
}
