package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peterbourgon/ff"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/glider-scoring/api"
	"github.com/a-bouts/glider-scoring/flight"
	"github.com/a-bouts/glider-scoring/live"
	"github.com/a-bouts/glider-scoring/race"
	"github.com/a-bouts/glider-scoring/xmpp"
)

func main() {

	fs := flag.NewFlagSet("glider-scoring", flag.ExitOnError)
	var (
		listen       = fs.String("listen", ":8888", "address of the http server")
		cpuprofile   = fs.Bool("cpuprofile", false, "profile the replay requests")
		logLevel     = fs.String("log-level", "info", "")
		logFile      = fs.String("log-file", "", "also write the logs to this rotated file")
		refresh      = fs.Uint64("refresh", 15, "seconds between two refreshes of the live standings")
		minDistance  = fs.Float64("min-distance", live.DefaultMinDistance, "minimum handicapped distance of a valid day, in km")
		xmppHost     = fs.String("xmpp-host", "", "")
		xmppJid      = fs.String("xmpp-jid", "", "")
		xmppPassword = fs.String("xmpp-password", "", "")
		xmppTo       = fs.String("xmpp-to", "", "")
		taskFile     = fs.String("task", "", "score the flights of a day against this task file and exit")
		flightsDir   = fs.String("flights", ".", "directory of the IGC files, named CN_<callsign>.igc")
		rosterFile   = fs.String("roster", "", "CSV roster of the competitors")
		until        = fs.String("until", "", "ignore the fixes recorded after this RFC3339 time")
		asJSON       = fs.Bool("json", false, "print the standings as json")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := initLogger(*logLevel, *logFile); err != nil {
		log.Fatalf("Bad log configuration : %v", err)
	}

	if err := checkRefresh(*refresh); err != nil {
		log.Fatal(err)
	}

	opts := live.Options{MinDistance: *minDistance}

	if *taskFile != "" {
		if err := score(opts, *taskFile, *flightsDir, *rosterFile, *until, *asJSON, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	var notifier live.Notifier
	x := xmpp.Xmpp{Config: xmpp.Config{Host: *xmppHost, Jid: *xmppJid, Password: *xmppPassword, To: *xmppTo}}
	if x.Configured() {
		notifier = x
	} else {
		log.Info("No xmpp notifications")
	}

	registry := live.NewRegistry(opts, notifier)
	registry.Schedule(*refresh)
	defer registry.Stop()

	router := api.InitServer(*cpuprofile, opts, registry)
	handler := handlers.CombinedLoggingHandler(log.StandardLogger().Writer(), router)
	handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handler)

	srv := &http.Server{Addr: *listen, Handler: handler}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	log.WithField("listen", *listen).Info("Start server")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func checkRefresh(every uint64) error {
	if every == 0 {
		return fmt.Errorf("refresh must be at least 1 second")
	}
	return nil
}

// score replays the flights of a directory and prints the standings.
func score(opts live.Options, taskFile string, dir string, rosterFile string, until string, asJSON bool, out io.Writer) error {
	r, err := readTask(taskFile)
	if err != nil {
		return err
	}

	var roster race.Roster
	if rosterFile != "" {
		if roster, err = race.ReadRoster(rosterFile); err != nil {
			return err
		}
	}

	var limit time.Time
	if until != "" {
		if limit, err = time.Parse(time.RFC3339, until); err != nil {
			return fmt.Errorf("bad until time: %w", err)
		}
	}

	flights, err := readFlights(dir)
	if err != nil {
		return err
	}

	standings, err := live.Replay(context.Background(), *r, flights, roster, opts, limit)
	if err != nil {
		return err
	}

	if asJSON {
		e := json.NewEncoder(out)
		e.SetIndent("", "  ")
		return e.Encode(standings)
	}
	printStandings(out, standings)
	return nil
}

func readTask(path string) (*race.Race, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsk", ".xml":
		return race.ReadXCSoar(path)
	}
	return race.Load(path)
}

// readFlights loads every IGC file of dir. The callsign is the part of the
// file name after the last underscore.
func readFlights(dir string) ([]live.Flight, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var flights []live.Flight
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".igc") {
			continue
		}

		fixes, err := flight.ReadIGC(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		flights = append(flights, live.Flight{Callsign: callsignOf(e.Name()), Fixes: flight.ValidOnly(fixes)})

		log.WithFields(log.Fields{"file": e.Name(), "fixes": len(fixes)}).Debug("Flight loaded")
	}

	sort.Slice(flights, func(i, j int) bool { return flights[i].Callsign < flights[j].Callsign })

	return flights, nil
}

func callsignOf(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if i := strings.LastIndex(name, "_"); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToUpper(name)
}

func printStandings(out io.Writer, standings live.Standings) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"#", "CN", "Handicap", "Distance", "Speed", "Score"})

	for _, s := range standings.Standings {
		speed := "-"
		if s.Result.Completed {
			speed = fmt.Sprintf("%.2f km/h", s.Result.Vh)
		}
		t.AppendRow(table.Row{
			s.Rank,
			s.Callsign,
			s.Handicap,
			fmt.Sprintf("%.2f km", s.Result.Dh),
			speed,
			s.Result.S,
		})
	}

	t.Render()
}
