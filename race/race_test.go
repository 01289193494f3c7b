package race

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/a-bouts/glider-scoring/latlon"
	"github.com/a-bouts/glider-scoring/task"
)

const jsonRace = `{
	"type": "AAT",
	"minTime": 10800,
	"points": [
		{"name": "Start", "type": "Line", "lonlat": [6.0, 50.0], "length": 2000},
		{"name": "A1", "type": "Cylinder", "lonlat": [6.3, 50.0], "radius": 20000},
		{"name": "A2", "type": "Keyhole", "lonlat": [6.3, 50.3]},
		{"name": "Finish", "type": "Cylinder", "lonlat": [6.0, 50.0], "radius": 3000}
	]
}`

func TestRaceTask(t *testing.T) {
	var r Race
	if err := json.Unmarshal([]byte(jsonRace), &r); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}

	got, err := r.Task()
	if err != nil {
		t.Fatalf("Task() failed: %v", err)
	}

	want, err := task.Build([]task.ZoneSpec{
		{Name: "Start", Type: task.ZoneLine, Location: latlon.LatLon{Lat: 50.0, Lon: 6.0}, Length: 2000},
		{Name: "A1", Type: task.ZoneCylinder, Location: latlon.LatLon{Lat: 50.0, Lon: 6.3}, Radius: 20000},
		{Name: "A2", Type: task.ZoneKeyhole, Location: latlon.LatLon{Lat: 50.3, Lon: 6.3}},
		{Name: "Finish", Type: task.ZoneCylinder, Location: latlon.LatLon{Lat: 50.0, Lon: 6.0}, Radius: 3000},
	}, task.Options{IsAAT: true, MinTime: 10800})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if got.Distance != want.Distance {
		t.Errorf("Distance = %f; want %f", got.Distance, want.Distance)
	}
	if got.Options != want.Options {
		t.Errorf("Options = %+v; want %+v", got.Options, want.Options)
	}
	for i := range want.Points {
		g, w := got.Points[i], want.Points[i]
		if g.Name != w.Name || g.Role != w.Role || g.Shape.Position() != w.Shape.Position() {
			t.Errorf("Points[%d] = %+v; want %+v", i, g, w)
		}
	}
}

func TestRaceTaskRacingIgnoresMinTime(t *testing.T) {
	r := Race{
		Type:    Racing,
		MinTime: 3600,
		Points: []RaceWaypoint{
			{Type: task.ZoneCylinder, LonLat: LonLat{6, 50}, Radius: 500},
			{Type: task.ZoneCylinder, LonLat: LonLat{6.3, 50}, Radius: 500},
		},
	}

	tk, err := r.Task()
	if err != nil {
		t.Fatalf("Task() failed: %v", err)
	}
	if tk.Options.IsAAT || tk.Options.MinTime != 0 {
		t.Errorf("Options = %+v; want a racing task", tk.Options)
	}
}

func TestRaceTaskUnknownZone(t *testing.T) {
	r := Race{
		Type: Racing,
		Points: []RaceWaypoint{
			{Type: task.ZoneCylinder, LonLat: LonLat{6, 50}, Radius: 500},
			{Type: "Sector", LonLat: LonLat{6.3, 50}},
			{Type: task.ZoneCylinder, LonLat: LonLat{6, 50}, Radius: 500},
		},
	}

	if _, err := r.Task(); err == nil {
		t.Errorf("Task() with a sector succeeded; want error")
	}
}

const xcsoarRace = `<?xml version="1.0" encoding="UTF-8"?>
<Task type="AAT" aat_min_time="10800" start_max_speed="0">
	<Point type="Start">
		<Waypoint name="Lev" id="1" comment="" altitude="45">
			<Location longitude="7.0" latitude="51.1"/>
		</Waypoint>
		<ObservationZone type="Line" length="2000"/>
	</Point>
	<Point type="Area">
		<Waypoint name="Aachen" altitude="200">
			<Location longitude="6.1" latitude="50.8"/>
		</Waypoint>
		<ObservationZone type="Cylinder" radius="20000"/>
	</Point>
	<Point type="Finish">
		<Waypoint name="Lev" altitude="45">
			<Location longitude="7.0" latitude="51.1"/>
		</Waypoint>
		<ObservationZone type="Cylinder" radius="3000"/>
	</Point>
</Task>`

func TestParseXCSoar(t *testing.T) {
	r, err := ParseXCSoar(strings.NewReader(xcsoarRace))
	if err != nil {
		t.Fatalf("ParseXCSoar() failed: %v", err)
	}

	if r.Type != AAT || r.MinTime != 10800 {
		t.Errorf("Type, MinTime = %s, %f; want AAT, 10800", r.Type, r.MinTime)
	}

	want := []RaceWaypoint{
		{Name: "Lev", Type: task.ZoneLine, LonLat: LonLat{7.0, 51.1}, Length: 2000},
		{Name: "Aachen", Type: task.ZoneCylinder, LonLat: LonLat{6.1, 50.8}, Radius: 20000},
		{Name: "Lev", Type: task.ZoneCylinder, LonLat: LonLat{7.0, 51.1}, Radius: 3000},
	}
	if len(r.Points) != len(want) {
		t.Fatalf("len(Points) = %d; want %d", len(r.Points), len(want))
	}
	for i := range want {
		if r.Points[i] != want[i] {
			t.Errorf("Points[%d] = %+v; want %+v", i, r.Points[i], want[i])
		}
	}

	tk, err := r.Task()
	if err != nil {
		t.Fatalf("Task() failed: %v", err)
	}
	legs := tk.Legs[0].Distance + tk.Legs[1].Distance
	if math.Abs(tk.Distance-(legs-3000)) > 1e-6 {
		t.Errorf("Distance = %f; want %f", tk.Distance, legs-3000)
	}
}

func TestParseXCSoarRacingDefault(t *testing.T) {
	r, err := ParseXCSoar(strings.NewReader(`<Task><Point type="Start"><Waypoint name="A"><Location longitude="7" latitude="51"/></Waypoint><ObservationZone type="Cylinder" radius="500"/></Point></Task>`))
	if err != nil {
		t.Fatalf("ParseXCSoar() failed: %v", err)
	}
	if r.Type != Racing || r.MinTime != 0 {
		t.Errorf("Type, MinTime = %s, %f; want Racing, 0", r.Type, r.MinTime)
	}
}

func TestParseXCSoarMalformed(t *testing.T) {
	if _, err := ParseXCSoar(strings.NewReader("<Task><Point>")); err == nil {
		t.Errorf("ParseXCSoar(truncated) succeeded; want error")
	}
}
