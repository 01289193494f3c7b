package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/glider-scoring/api/model"
	"github.com/a-bouts/glider-scoring/live"
)

type server struct {
	cpuprofile bool
	opts       live.Options
	registry   *live.Registry
}

func InitServer(cpuprofile bool, opts live.Options, registry *live.Registry) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	s := server{
		cpuprofile: cpuprofile,
		opts:       opts,
		registry:   registry,
	}

	router.HandleFunc("/score/-/healthz", s.healthz).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/score/api/v1").Subrouter()
	apiV1.HandleFunc("/replay", s.replay).Methods(http.MethodPost)
	apiV1.HandleFunc("/live", s.open).Methods(http.MethodPost)
	apiV1.HandleFunc("/live/{session}", s.open).Methods(http.MethodPut)
	apiV1.HandleFunc("/live/{session}", s.close).Methods(http.MethodDelete)
	apiV1.HandleFunc("/live/{session}/standings", s.standings).Methods(http.MethodGet)
	apiV1.HandleFunc("/live/{session}/{callsign}/fixes", s.push).Methods(http.MethodPost)

	return router
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status string `json:"status"`
	}

	json.NewEncoder(w).Encode(health{Status: "Ok"})
}

func (s *server) replay(w http.ResponseWriter, req *http.Request) {
	if s.cpuprofile {
		defer profile.Start().Stop()
	}

	requestLogger := newRequestLogger(req, "replay")

	var r model.Replay
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		requestLogger.Warnf("Bad request : %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	opts := s.opts
	if r.MinDistance > 0 {
		opts.MinDistance = r.MinDistance
	}

	requestLogger.Infof("Replay '%s' with %d flights", r.Race.Name, len(r.Flights))

	start := time.Now()

	standings, err := live.Replay(req.Context(), r.Race, r.Flights, r.Roster, opts, r.Until)
	if err != nil {
		requestLogger.Warnf("Replay failed : %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	requestLogger.Infof("Replay took %s", time.Since(start).String())

	json.NewEncoder(w).Encode(standings)
}

func (s *server) open(w http.ResponseWriter, req *http.Request) {
	requestLogger := newRequestLogger(req, "open")

	var r model.Session
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		requestLogger.Warnf("Bad request : %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := s.registry.Open(mux.Vars(req)["session"], r.Race, r.Roster)
	if err != nil {
		requestLogger.Warnf("Open failed : %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	requestLogger.WithField("session", session.ID).Infof("Open '%s'", r.Race.Name)

	if req.Method == http.MethodPost {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(model.Opened{ID: session.ID, Standings: session.Standings()})
}

func (s *server) close(w http.ResponseWriter, req *http.Request) {
	if !s.registry.Close(mux.Vars(req)["session"]) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) push(w http.ResponseWriter, req *http.Request) {
	session, ok := s.registry.Get(mux.Vars(req)["session"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	requestLogger := newRequestLogger(req, "push").WithField("session", session.ID)

	var r model.Fixes
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		requestLogger.Warnf("Bad request : %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	events, err := session.Push(mux.Vars(req)["callsign"], r.Fixes)
	if errors.Is(err, live.ErrUnknownCompetitor) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		requestLogger.Warnf("Push failed : %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	res := model.Events{Events: make([]model.Event, len(events))}
	for i, e := range events {
		res.Events[i] = model.Event{Type: e.Type.String(), Num: e.Num, Fix: e.Fix}
	}

	json.NewEncoder(w).Encode(res)
}

func (s *server) standings(w http.ResponseWriter, req *http.Request) {
	session, ok := s.registry.Get(mux.Vars(req)["session"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	standings := session.Standings()
	if req.URL.Query().Get("refresh") == "true" {
		standings = session.Refresh()
	}

	json.NewEncoder(w).Encode(standings)
}

func newRequestLogger(req *http.Request, action string) *log.Entry {
	fields := log.Fields{
		"action": action,
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	return log.WithFields(fields)
}

func getIp(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	for _, ip := range strings.Split(ips, ",") {
		ip = strings.TrimSpace(ip)
		if netIP := net.ParseIP(ip); netIP != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if netIP := net.ParseIP(ip); netIP != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
