// Package scoring turns the marking results of a competition day into
// handicapped scores and a ranking.
package scoring

import (
	"math"
	"sort"
)

// InitialDayFactors are known before any result.
type InitialDayFactors struct {
	// Ho is the lowest handicap of all competitors.
	Ho float64 `json:"Ho"`
	// Dm is the minimum handicapped distance to validate the day, in km.
	Dm float64 `json:"Dm"`
}

type DayFactors struct {
	InitialDayFactors

	// Do is the highest handicapped distance of the day.
	Do float64 `json:"Do"`
	// Vo is the highest handicapped speed of the day.
	Vo float64 `json:"Vo"`

	// n1 reached Dm, n2 exceeded 2/3 of Vo, n3 finished, n4 reached Dm/2.
	N1 int `json:"n1"`
	N2 int `json:"n2"`
	N3 int `json:"n3"`
	N4 int `json:"n4"`
	// N is the number of competitors having had a launch.
	N int `json:"N"`

	// To is the marking time of the competitor with Vh = Vo, the lowest
	// one on a tie.
	To float64 `json:"To"`

	Pm  float64 `json:"Pm"`
	F   float64 `json:"F"`
	FCR float64 `json:"FCR"`
	Pvm float64 `json:"Pvm"`
	Pdm float64 `json:"Pdm"`
}

type InitialDayResult struct {
	Completed bool `json:"completed"`

	// D is the marking distance in km.
	D float64 `json:"D"`
	// H is the handicap as a fraction, 1 when not handicapped.
	H  float64 `json:"H"`
	Dh float64 `json:"Dh"`
	// T is the marking time in seconds.
	T  float64 `json:"T"`
	V  float64 `json:"V"`
	Vh float64 `json:"Vh"`
}

type DayResult struct {
	InitialDayResult

	Pv float64 `json:"Pv"`
	Pd float64 `json:"Pd"`
	S  int     `json:"S"`
}

// CreateInitialDayResult computes the handicapped distance and speed of a
// landed or finished competitor. D is in km, T in seconds.
func CreateInitialDayResult(completed bool, D, T, H float64, initial InitialDayFactors) InitialDayResult {
	V := 0.0
	if completed && T > 0 {
		V = D / (T / 3600)
	}

	ratio := handicapRatio(initial.Ho, H)

	return InitialDayResult{
		Completed: completed,
		D:         D,
		H:         H,
		Dh:        D * ratio,
		T:         T,
		V:         V,
		Vh:        V * ratio,
	}
}

// CreateIntermediateDayResult scores a competitor still in the air from
// the best distance and time known so far. An absent time counts as zero.
func CreateIntermediateDayResult(completed bool, D float64, T *float64, H float64, initial InitialDayFactors) InitialDayResult {
	time := 0.0
	if T != nil {
		time = *T
	}
	return CreateInitialDayResult(completed, D, time, H, initial)
}

func handicapRatio(Ho, H float64) float64 {
	if H <= 0 {
		return 1
	}
	if Ho <= 0 {
		Ho = H
	}
	return Ho / H
}

// CalculateDayFactors aggregates the field. An empty field gives all zero
// factors.
func CalculateDayFactors(results []InitialDayResult, initial InitialDayFactors) DayFactors {
	f := DayFactors{InitialDayFactors: initial, N: len(results)}
	if f.N == 0 {
		return f
	}

	for _, r := range results {
		f.Do = math.Max(f.Do, r.Dh)
		f.Vo = math.Max(f.Vo, r.Vh)
	}

	f.To = math.Inf(1)
	for _, r := range results {
		if r.Dh >= initial.Dm {
			f.N1++
		}
		if r.Vh > f.Vo*2/3 {
			f.N2++
		}
		if r.Completed {
			f.N3++
		}
		if r.Dh > initial.Dm/2 {
			f.N4++
		}
		if r.Vh == f.Vo {
			f.To = math.Min(f.To, r.T)
		}
	}

	if f.N3 > 0 {
		f.Pm = math.Min(1000, math.Min(5*f.Do-250, 400*(f.To/3600)-200))
	} else {
		f.Pm = math.Min(1000, 5*f.Do-250)
	}
	f.Pm = math.Max(0, f.Pm)

	f.F = math.Min(1, 1.25*float64(f.N1)/float64(f.N))

	if f.N1 > 0 {
		f.FCR = math.Min(1, 1.2*float64(f.N2)/float64(f.N1)+0.6)
	}

	f.Pvm = 2.0 / 3.0 * float64(f.N2) / float64(f.N) * f.Pm
	f.Pdm = f.Pm - f.Pvm

	return f
}

func CalculateDayResult(r InitialDayResult, f DayFactors) DayResult {
	Pv := 0.0
	if r.Completed && f.Vo > 0 && r.Vh >= f.Vo*2/3 {
		Pv = f.Pvm * (r.Vh - f.Vo*2/3) / (f.Vo / 3)
	}

	Pd := 0.0
	switch {
	case r.Completed:
		Pd = f.Pdm
	case f.Do > 0:
		Pd = f.Pdm * r.Dh / f.Do
	}

	S := math.Round(f.F * f.FCR * (Pv + Pd))

	return DayResult{InitialDayResult: r, Pv: Pv, Pd: Pd, S: int(math.Max(0, S))}
}

// CompareDayResults orders a before b when it is negative: higher score
// first, then higher handicapped speed, then higher handicapped distance.
func CompareDayResults(a, b DayResult) int {
	switch {
	case a.S != b.S:
		return b.S - a.S
	case a.Vh != b.Vh:
		return compareFloat(b.Vh, a.Vh)
	}
	return compareFloat(b.Dh, a.Dh)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// LowestHandicap returns Ho for the given handicap fractions, 1 without
// any.
func LowestHandicap(handicaps []float64) float64 {
	if len(handicaps) == 0 {
		return 1
	}
	lowest := math.Inf(1)
	for _, h := range handicaps {
		lowest = math.Min(lowest, h)
	}
	return lowest
}

// Entry is one competitor fed to Rank.
type Entry struct {
	ID     string
	Result InitialDayResult
}

type Ranked struct {
	ID     string    `json:"id"`
	Rank   int       `json:"rank"`
	Result DayResult `json:"result"`
}

// Rank scores the whole field and sorts it. Competitors comparing equal
// share a rank.
func Rank(entries []Entry, initial InitialDayFactors) ([]Ranked, DayFactors) {
	results := make([]InitialDayResult, len(entries))
	for i, e := range entries {
		results[i] = e.Result
	}
	factors := CalculateDayFactors(results, initial)

	ranked := make([]Ranked, len(entries))
	for i, e := range entries {
		ranked[i] = Ranked{ID: e.ID, Result: CalculateDayResult(e.Result, factors)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return CompareDayResults(ranked[i].Result, ranked[j].Result) < 0
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		if i > 0 && CompareDayResults(ranked[i-1].Result, ranked[i].Result) == 0 {
			ranked[i].Rank = ranked[i-1].Rank
		}
	}

	return ranked, factors
}
