// Package trace records per-frame axis values from a motion run and
// renders or persists them for later inspection.
package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/guptarohit/asciigraph"
)

// Recorder accumulates one row per recorded frame: a timestamp in
// milliseconds plus the value of every axis. Axis names are fixed at
// construction and stored sorted.
type Recorder struct {
	names  []string
	times  []float64
	series map[string][]float64
}

func NewRecorder(names []string) *Recorder {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	series := make(map[string][]float64, len(sorted))
	for _, name := range sorted {
		series[name] = make([]float64, 0, 256)
	}
	return &Recorder{
		names:  sorted,
		times:  make([]float64, 0, 256),
		series: series,
	}
}

// Record appends one frame. Axes missing from values repeat their previous
// sample (or zero on the first frame), so rows stay rectangular.
func (r *Recorder) Record(tMs float64, values map[string]float64) {
	r.times = append(r.times, tMs)
	for _, name := range r.names {
		s := r.series[name]
		v, ok := values[name]
		if !ok {
			if len(s) > 0 {
				v = s[len(s)-1]
			}
		}
		r.series[name] = append(s, v)
	}
}

func (r *Recorder) Len() int         { return len(r.times) }
func (r *Recorder) Names() []string  { return r.names }
func (r *Recorder) Times() []float64 { return r.times }

// Series returns the recorded values for one axis, or nil for an unknown
// name.
func (r *Recorder) Series(name string) []float64 { return r.series[name] }

// Plot renders one axis's history as an ASCII chart.
func (r *Recorder) Plot(name string, height, width int) string {
	data := r.series[name]
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s vs time", name)),
	)
}

// WriteCSV emits a time_ms column followed by one column per axis.
func (r *Recorder) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time_ms"}, r.names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, t := range r.times {
		row := []string{strconv.FormatFloat(t, 'f', 3, 64)}
		for _, name := range r.names {
			row = append(row, strconv.FormatFloat(r.series[name][i], 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
