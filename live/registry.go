package live

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jasonlvhit/gocron"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/glider-scoring/race"
)

const (
	maxSessions = 64
	sessionTTL  = 24 * time.Hour
)

// Registry keeps the live sessions. A session is dropped a day after it was
// opened, or earlier when too many are open.
type Registry struct {
	opts     Options
	notifier Notifier
	sessions *expirable.LRU[string, *Session]

	stop chan bool
}

func NewRegistry(opts Options, notifier Notifier) *Registry {
	return &Registry{
		opts:     opts,
		notifier: notifier,
		sessions: expirable.NewLRU[string, *Session](maxSessions, func(id string, _ *Session) {
			log.WithField("session", id).Info("Session dropped")
		}, sessionTTL),
	}
}

// Open creates or replaces a session. An empty id gets a generated one.
func (r *Registry) Open(id string, rc race.Race, roster race.Roster) (*Session, error) {
	if id == "" {
		id = uuid.New().String()
	}

	s, err := NewSession(id, rc, roster, r.opts, r.notifier)
	if err != nil {
		return nil, err
	}
	s.Refresh()

	r.sessions.Add(id, s)
	log.WithField("session", id).Infof("Session opened with %d competitors", len(s.order))

	return s, nil
}

func (r *Registry) Get(id string) (*Session, bool) {
	return r.sessions.Get(id)
}

func (r *Registry) Close(id string) bool {
	return r.sessions.Remove(id)
}

func (r *Registry) RefreshAll() {
	for _, s := range r.sessions.Values() {
		s.Refresh()
	}
}

// Schedule refreshes the standings of every session periodically until
// Stop is called.
func (r *Registry) Schedule(every uint64) {
	s := gocron.NewScheduler()
	s.Every(every).Seconds().Do(r.RefreshAll)

	r.stop = s.Start()
}

func (r *Registry) Stop() {
	if r.stop != nil {
		r.stop <- true
		r.stop = nil
	}
}
