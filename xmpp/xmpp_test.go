package xmpp

import (
	"errors"
	"testing"

	"github.com/mattn/go-xmpp"

	"github.com/a-bouts/glider-scoring/flight"
	"github.com/a-bouts/glider-scoring/tracker"
)

func TestMessage(t *testing.T) {
	fix := flight.Fix{Time: (12*3600 + 62) * 1000}

	tests := []struct {
		event tracker.Event
		want  string
	}{
		{tracker.Event{Type: tracker.EventStart, Fix: fix}, "AB started at 12:01:02"},
		{tracker.Event{Type: tracker.EventTurn, Fix: fix, Num: 2}, "AB reached turnpoint 2 at 12:01:02"},
		{tracker.Event{Type: tracker.EventFinish, Fix: fix, Num: 3}, "AB finished at 12:01:02"},
	}

	for _, test := range tests {
		if got := Message("AB", test.event); got != test.want {
			t.Errorf("Message(%s) = %q; want %q", test.event.Type, got, test.want)
		}
	}
}

func TestSendMissingConfig(t *testing.T) {
	x := Xmpp{Config: Config{Jid: "scoring@example.org"}}
	if err := x.Notify("AB", tracker.Event{}); !errors.Is(err, ErrMissingConfig) {
		t.Errorf("Notify() error = %v; want %v", err, ErrMissingConfig)
	}
}

func TestOptions(t *testing.T) {
	x := Xmpp{Config: Config{Jid: "scoring@example.org", Password: "secret", To: "ops@example.org"}}

	options := x.options()
	if options.Host != "example.org" {
		t.Errorf("Host = %q; want %q", options.Host, "example.org")
	}
	if options.TLSConfig == nil || options.TLSConfig.ServerName != "example.org" {
		t.Errorf("TLSConfig = %+v; want one for example.org", options.TLSConfig)
	}
	if other := x.options(); other.TLSConfig == options.TLSConfig {
		t.Errorf("options() shares its TLS config between clients")
	}
	if xmpp.DefaultConfig.InsecureSkipVerify {
		t.Errorf("options() changed the default TLS config")
	}
}

func TestServerName(t *testing.T) {
	if got := serverName("scoring@example.org"); got != "example.org" {
		t.Errorf("serverName() = %q; want %q", got, "example.org")
	}
}
