// Package export writes detected traces and sweep curves to JSON and
// CSV files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	"github.com/san-kum/spinsim/internal/ensemble"
	"github.com/san-kum/spinsim/internal/sweep"
)

type TraceData struct {
	Sequence     string    `json:"sequence"`
	Distribution string    `json:"distribution"`
	Width        float64   `json:"width"`
	Samples      int       `json:"samples"`
	Points       int       `json:"points"`
	Time         []float64 `json:"time"`
	Sx           []float64 `json:"sx"`
	Sy           []float64 `json:"sy"`
	Sz           []float64 `json:"sz"`
}

// TraceJSON writes a detected trace with its run metadata.
func TraceJSON(path, name string, dist ensemble.Distribution, r *ensemble.Result) error {
	data := TraceData{
		Sequence:     name,
		Distribution: string(dist.Kind),
		Width:        dist.Width,
		Samples:      dist.Samples,
		Points:       r.Points(),
		Time:         r.Time,
		Sx:           r.Sx,
		Sy:           r.Sy,
		Sz:           r.Sz,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// TraceCSV writes a detected trace as time,sx,sy,sz rows.
func TraceCSV(path string, r *ensemble.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"time", "sx", "sy", "sz"}); err != nil {
		return err
	}
	for k := range r.Time {
		row := []string{
			formatFloat(r.Time[k]),
			formatFloat(r.Sx[k]),
			formatFloat(r.Sy[k]),
			formatFloat(r.Sz[k]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// SweepCSV writes a sweep curve as value,echo_time,echo_amp rows.
func SweepCSV(path string, r *sweep.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"value", "echo_time", "echo_amp"}); err != nil {
		return err
	}
	for i := range r.Values {
		row := []string{
			formatFloat(r.Values[i]),
			formatFloat(r.EchoTime[i]),
			formatFloat(r.EchoAmp[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
