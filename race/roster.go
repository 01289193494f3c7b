package race

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultHandicap applies to competitors without a handicap.
const DefaultHandicap = 100

type Competitor struct {
	ID           string `json:"id"`
	Registration string `json:"registration"`
	Callsign     string `json:"callsign"`
	Type         string `json:"type"`
	// Handicap in percent.
	Handicap int `json:"handicap"`
}

type Roster []Competitor

// ParseRoster reads a roster with ID, CALL, CN, TYPE and HANDICAP columns.
// Columns are matched by their header and may be missing.
func ParseRoster(r io.Reader) (Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("race: reading roster header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToUpper(strings.TrimSpace(h))] = i
	}

	var roster Roster
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("race: reading roster: %w", err)
		}

		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		c := Competitor{
			ID:           field("ID"),
			Registration: field("CALL"),
			Callsign:     field("CN"),
			Type:         field("TYPE"),
			Handicap:     DefaultHandicap,
		}
		if h := field("HANDICAP"); h != "" {
			if c.Handicap, err = strconv.Atoi(h); err != nil {
				return nil, fmt.Errorf("race: handicap of %q: %w", c.Callsign, err)
			}
		}

		roster = append(roster, c)
	}

	return roster, nil
}

func ReadRoster(path string) (Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseRoster(f)
}

// Handicaps maps the callsigns to their handicap in percent. Rows without
// a callsign are skipped.
func (r Roster) Handicaps() map[string]int {
	handicaps := make(map[string]int, len(r))
	for _, c := range r {
		if c.Callsign != "" {
			handicaps[strings.ToUpper(c.Callsign)] = c.Handicap
		}
	}
	return handicaps
}
