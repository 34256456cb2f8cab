package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/spinsim/internal/ensemble"
	"github.com/san-kum/spinsim/internal/sweep"
)

func sampleResult() *ensemble.Result {
	return &ensemble.Result{
		Time: []float64{0, 0.5, 1},
		Sx:   []float64{0.5, 0.25, 0},
		Sy:   []float64{0, 0.25, 0.5},
		Sz:   []float64{0, 0, 0},
	}
}

func TestTraceJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	dist := ensemble.Distribution{Kind: ensemble.Gaussian, Width: 2, Samples: 101}

	if err := TraceJSON(path, "hahn", dist, sampleResult()); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var data TraceData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatal(err)
	}
	if data.Sequence != "hahn" || data.Distribution != "gaussian" {
		t.Errorf("metadata = %q %q", data.Sequence, data.Distribution)
	}
	if data.Points != 3 || len(data.Sy) != 3 || data.Sy[2] != 0.5 {
		t.Errorf("trace data = %+v", data)
	}
}

func TestTraceCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	if err := TraceCSV(path, sampleResult()); err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	if rows[0][1] != "sx" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[2][0] != "0.5" || rows[2][1] != "0.25" {
		t.Errorf("row = %v", rows[2])
	}
}

func TestTraceSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.svg")
	if err := TraceSVG(path, sampleResult(), 640, 320); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(raw)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Errorf("missing XML header: %.40s", svg)
	}
	if n := strings.Count(svg, "<path"); n != 3 {
		t.Errorf("path count = %d, want one per component", n)
	}

	short := &ensemble.Result{Time: []float64{0}, Sx: []float64{0}, Sy: []float64{0}, Sz: []float64{0}}
	if err := TraceSVG(path, short, 640, 320); err == nil {
		t.Error("expected error for single-point trace")
	}
}

func TestSweepCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")
	res := &sweep.Result{
		Values:   []float64{1, 2},
		EchoTime: []float64{1, 2},
		EchoAmp:  []float64{0.5, 0.5},
	}
	if err := SweepCSV(path, res); err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[0][2] != "echo_amp" || rows[1][0] != "1" {
		t.Errorf("rows = %v", rows)
	}
}
