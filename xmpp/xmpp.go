package xmpp

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-xmpp"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/glider-scoring/tracker"
)

var ErrMissingConfig = errors.New("missing xmpp config")

type (
	// Config of the notifier.
	Config struct {
		Host     string
		Jid      string
		Password string
		To       string
	}

	Xmpp struct {
		Config Config
	}
)

func serverName(jid string) string {
	parts := strings.Split(jid, "@")
	return parts[len(parts)-1]
}

func (x Xmpp) Configured() bool {
	return len(x.Config.Jid) > 0 && len(x.Config.Password) > 0 && len(x.Config.To) > 0
}

// Notify sends a competitor transition as a chat message.
func (x Xmpp) Notify(callsign string, e tracker.Event) error {
	return x.Send(Message(callsign, e))
}

// Message formats a transition, e.g. "AB started at 12:01:02".
func Message(callsign string, e tracker.Event) string {
	at := e.Fix.Timestamp().Format(time.TimeOnly)

	switch e.Type {
	case tracker.EventStart:
		return fmt.Sprintf("%s started at %s", callsign, at)
	case tracker.EventTurn:
		return fmt.Sprintf("%s reached turnpoint %d at %s", callsign, e.Num, at)
	case tracker.EventFinish:
		return fmt.Sprintf("%s finished at %s", callsign, at)
	}
	return fmt.Sprintf("%s %s at %s", callsign, e.Type, at)
}

func (x Xmpp) options() xmpp.Options {
	host := x.Config.Host
	if len(host) == 0 {
		host = serverName(x.Config.Jid)
	}

	return xmpp.Options{
		Host:     host,
		User:     x.Config.Jid,
		Password: x.Config.Password,
		NoTLS:    true,
		StartTLS: true,
		TLSConfig: &tls.Config{
			ServerName:         serverName(x.Config.Jid),
			InsecureSkipVerify: true,
		},
		Debug:         false,
		Session:       false,
		Status:        "xa",
		StatusMessage: "Scoring",
	}
}

func (x Xmpp) Send(message string) error {
	if !x.Configured() {
		log.Warn("Missing xmpp config")

		return ErrMissingConfig
	}

	options := x.options()

	log.WithField("host", options.Host).Debug("Create xmpp client")
	talk, err := options.NewClient()
	if err != nil {
		log.Errorf("Xmpp client failed : %v", err)

		return err
	}
	defer talk.Close()

	log.WithField("to", x.Config.To).Debug("Send message")
	_, err = talk.Send(xmpp.Chat{Remote: x.Config.To, Type: "chat", Text: message})

	return err
}
