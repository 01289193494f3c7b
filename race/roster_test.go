package race

import (
	"strings"
	"testing"
)

const rosterCSV = `ID,CALL,CN,TYPE,HANDICAP
DD1234,D-1234,ab,LS 8,108
DD5678,D-5678,XY,Discus 2,
DD9999,D-9999,,ASK 21,92
`

func TestParseRoster(t *testing.T) {
	roster, err := ParseRoster(strings.NewReader(rosterCSV))
	if err != nil {
		t.Fatalf("ParseRoster() failed: %v", err)
	}

	want := Roster{
		{ID: "DD1234", Registration: "D-1234", Callsign: "ab", Type: "LS 8", Handicap: 108},
		{ID: "DD5678", Registration: "D-5678", Callsign: "XY", Type: "Discus 2", Handicap: 100},
		{ID: "DD9999", Registration: "D-9999", Callsign: "", Type: "ASK 21", Handicap: 92},
	}
	if len(roster) != len(want) {
		t.Fatalf("len(roster) = %d; want %d", len(roster), len(want))
	}
	for i := range want {
		if roster[i] != want[i] {
			t.Errorf("roster[%d] = %+v; want %+v", i, roster[i], want[i])
		}
	}

	handicaps := roster.Handicaps()
	if len(handicaps) != 2 || handicaps["AB"] != 108 || handicaps["XY"] != 100 {
		t.Errorf("Handicaps() = %v; want map[AB:108 XY:100]", handicaps)
	}
	if _, ok := handicaps["ZZ"]; ok {
		t.Errorf("Handicaps() has an entry for ZZ")
	}
}

func TestParseRosterMissingColumns(t *testing.T) {
	roster, err := ParseRoster(strings.NewReader("CN\nAB\n"))
	if err != nil {
		t.Fatalf("ParseRoster() failed: %v", err)
	}
	if len(roster) != 1 || roster[0].Callsign != "AB" || roster[0].Handicap != DefaultHandicap {
		t.Errorf("ParseRoster() = %+v; want AB with the default handicap", roster)
	}
}

func TestParseRosterBadHandicap(t *testing.T) {
	if _, err := ParseRoster(strings.NewReader("CN,HANDICAP\nAB,fast\n")); err == nil {
		t.Errorf("ParseRoster(bad handicap) succeeded; want error")
	}
}
