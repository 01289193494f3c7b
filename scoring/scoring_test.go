package scoring

import (
	"math"
	"testing"
)

var initial = InitialDayFactors{Ho: 1, Dm: 100}

func TestCreateInitialDayResult(t *testing.T) {
	r := CreateInitialDayResult(true, 300, 3*3600, 1.1, InitialDayFactors{Ho: 0.99, Dm: 100})

	if r.V != 100 {
		t.Errorf("V = %f; want 100", r.V)
	}
	if math.Abs(r.Dh-270) > 1e-9 {
		t.Errorf("Dh = %f; want 270", r.Dh)
	}
	if math.Abs(r.Vh-90) > 1e-9 {
		t.Errorf("Vh = %f; want 90", r.Vh)
	}

	r = CreateInitialDayResult(false, 150, 3*3600, 1, initial)
	if r.V != 0 || r.Vh != 0 {
		t.Errorf("V, Vh = %f, %f; want 0 for an outlanding", r.V, r.Vh)
	}
}

func TestCreateIntermediateDayResult(t *testing.T) {
	r := CreateIntermediateDayResult(false, 120, nil, 1, initial)
	if r.T != 0 || r.V != 0 || r.Dh != 120 {
		t.Errorf("CreateIntermediateDayResult() = %+v; want T 0, V 0, Dh 120", r)
	}

	T := 7200.0
	r = CreateIntermediateDayResult(true, 200, &T, 1, initial)
	if r.V != 100 {
		t.Errorf("V = %f; want 100", r.V)
	}
}

func field() []InitialDayResult {
	return []InitialDayResult{
		CreateInitialDayResult(true, 300, 3*3600, 1, initial),
		CreateInitialDayResult(true, 300, 4*3600, 1, initial),
		CreateInitialDayResult(false, 200, 0, 1, initial),
		CreateInitialDayResult(false, 40, 0, 1, initial),
		CreateInitialDayResult(false, 150, 0, 1, initial),
	}
}

func TestCalculateDayFactors(t *testing.T) {
	f := CalculateDayFactors(field(), initial)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"Do", f.Do, 300},
		{"Vo", f.Vo, 100},
		{"n1", float64(f.N1), 4},
		{"n2", float64(f.N2), 2},
		{"n3", float64(f.N3), 2},
		{"n4", float64(f.N4), 4},
		{"N", float64(f.N), 5},
		{"To", f.To, 3 * 3600},
		{"Pm", f.Pm, 1000},
		{"F", f.F, 1},
		{"FCR", f.FCR, 1},
		{"Pvm", f.Pvm, 800.0 / 3},
		{"Pdm", f.Pdm, 2200.0 / 3},
	}

	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("%s = %f; want %f", c.name, c.got, c.want)
		}
	}
}

func TestCalculateDayResult(t *testing.T) {
	results := field()
	f := CalculateDayFactors(results, initial)

	want := []int{1000, 800, 489, 98, 367}
	for i, r := range results {
		got := CalculateDayResult(r, f)
		if got.S != want[i] {
			t.Errorf("S of competitor %d = %d; want %d", i, got.S, want[i])
		}
	}
}

func TestScoringBounds(t *testing.T) {
	fields := map[string][]InitialDayResult{
		"empty":          nil,
		"nobody started": {CreateInitialDayResult(false, 0, 0, 1, initial)},
		"short day": {
			CreateInitialDayResult(false, 30, 0, 1, initial),
			CreateInitialDayResult(false, 60, 0, 1, initial),
		},
		"finishers": field(),
	}

	for name, results := range fields {
		f := CalculateDayFactors(results, initial)

		if f.F < 0 || f.F > 1 || math.IsNaN(f.F) {
			t.Errorf("%s: F = %f; want within [0, 1]", name, f.F)
		}
		if f.FCR < 0 || f.FCR > 1 || math.IsNaN(f.FCR) {
			t.Errorf("%s: FCR = %f; want within [0, 1]", name, f.FCR)
		}
		if f.N1 == 0 && f.FCR != 0 {
			t.Errorf("%s: FCR = %f with n1 = 0; want 0", name, f.FCR)
		}

		for i, r := range results {
			if d := CalculateDayResult(r, f); d.S < 0 || math.IsNaN(d.Pd) || math.IsNaN(d.Pv) {
				t.Errorf("%s: result %d = %+v; want finite non negative points", name, i, d)
			}
		}
	}
}

func TestCompareDayResults(t *testing.T) {
	a := DayResult{InitialDayResult: InitialDayResult{Vh: 90, Dh: 300}, S: 800}
	b := DayResult{InitialDayResult: InitialDayResult{Vh: 95, Dh: 300}, S: 700}
	c := DayResult{InitialDayResult: InitialDayResult{Vh: 95, Dh: 300}, S: 800}
	d := DayResult{InitialDayResult: InitialDayResult{Vh: 95, Dh: 310}, S: 800}

	tests := []struct {
		name string
		x, y DayResult
		want int
	}{
		{"higher score first", a, b, -1},
		{"faster first on equal score", c, a, -1},
		{"farther first on equal speed", d, c, -1},
		{"equal", c, c, 0},
	}

	for _, test := range tests {
		got := CompareDayResults(test.x, test.y)
		if (got < 0) != (test.want < 0) || (got == 0) != (test.want == 0) {
			t.Errorf("%s: CompareDayResults() = %d; want sign of %d", test.name, got, test.want)
		}
	}
}

func TestRank(t *testing.T) {
	results := field()
	entries := []Entry{
		{ID: "C", Result: results[2]},
		{ID: "B", Result: results[1]},
		{ID: "D", Result: results[3]},
		{ID: "A", Result: results[0]},
		{ID: "A2", Result: results[0]},
		{ID: "E", Result: results[4]},
	}

	ranked, _ := Rank(entries, initial)

	want := []struct {
		id   string
		rank int
	}{{"A", 1}, {"A2", 1}, {"B", 3}, {"C", 4}, {"E", 5}, {"D", 6}}

	for i, w := range want {
		if ranked[i].ID != w.id || ranked[i].Rank != w.rank {
			t.Errorf("ranked[%d] = %s #%d; want %s #%d", i, ranked[i].ID, ranked[i].Rank, w.id, w.rank)
		}
	}
}

func TestLowestHandicap(t *testing.T) {
	if h := LowestHandicap([]float64{1.08, 0.98, 1.14}); h != 0.98 {
		t.Errorf("LowestHandicap() = %f; want 0.98", h)
	}
	if h := LowestHandicap(nil); h != 1 {
		t.Errorf("LowestHandicap(nil) = %f; want 1", h)
	}
}
