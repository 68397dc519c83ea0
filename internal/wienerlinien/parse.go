package wienerlinien

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"transit_dashboard/internal/models"
)

// Every level is decoded separately so that one malformed monitor, line or
// departure is skipped instead of failing the whole payload.

type monitorEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type monitorData struct {
	Monitors []json.RawMessage `json:"monitors"`
}

type monitor struct {
	Lines []json.RawMessage `json:"lines"`
}

type line struct {
	Name       looseString     `json:"name"`
	Towards    looseString     `json:"towards"`
	Departures json.RawMessage `json:"departures"`
}

type departureList struct {
	Departure []json.RawMessage `json:"departure"`
}

type departure struct {
	DepartureTime json.RawMessage `json:"departureTime"`
}

type departureTime struct {
	Countdown looseInt `json:"countdown"`
}

// parseMonitorResponse flattens monitors/lines/departures into a list sorted
// by countdown. Only a body that is not a JSON object is an error; missing
// sections yield an empty list.
func parseMonitorResponse(body []byte) ([]models.Departure, error) {
	var env monitorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode monitor envelope: %w", err)
	}

	out := make([]models.Departure, 0)

	var data monitorData
	if !decodeObject(env.Data, &data) {
		return out, nil
	}

	for _, rawMonitor := range data.Monitors {
		var m monitor
		if !decodeObject(rawMonitor, &m) {
			continue
		}
		for _, rawLine := range m.Lines {
			var l line
			if !decodeObject(rawLine, &l) {
				continue
			}
			out = append(out, lineDepartures(l)...)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Countdown < out[j].Countdown
	})
	return out, nil
}

func lineDepartures(l line) []models.Departure {
	var list departureList
	if !decodeObject(l.Departures, &list) {
		return nil
	}

	deps := make([]models.Departure, 0, len(list.Departure))
	for _, rawDep := range list.Departure {
		var d departure
		if !decodeObject(rawDep, &d) {
			continue
		}
		var dt departureTime
		if !decodeObject(d.DepartureTime, &dt) || !dt.Countdown.valid {
			continue
		}
		deps = append(deps, models.Departure{
			Line:      string(l.Name),
			Direction: string(l.Towards),
			Countdown: dt.Countdown.value,
		})
	}
	return deps
}

// decodeObject reports whether raw held a JSON object that decoded into dst.
func decodeObject(raw json.RawMessage, dst any) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// looseString accepts strings and numbers; anything else becomes "".
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*s = looseString(num.String())
		return nil
	}
	*s = ""
	return nil
}

// looseInt accepts integral numbers and numeric strings. null, missing and
// other shapes leave valid false.
type looseInt struct {
	value int
	valid bool
}

func (n *looseInt) UnmarshalJSON(b []byte) error {
	*n = looseInt{}

	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		if v, ok := toInt(num.String()); ok {
			*n = looseInt{value: v, valid: true}
		}
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		if v, ok := toInt(str); ok {
			*n = looseInt{value: v, valid: true}
		}
	}
	return nil
}

func toInt(s string) (int, bool) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
