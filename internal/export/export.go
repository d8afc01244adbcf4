// Package export writes impulse response tables to CSV, JSON and SVG
// files. Nothing written here is read back.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/solowirf/internal/irf"
)

// Meta describes the run a table came from.
type Meta struct {
	Production string             `json:"production"`
	Kind       irf.Kind           `json:"kind"`
	Integrator string             `json:"integrator"`
	Impulse    map[string]float64 `json:"impulse"`
	Params     map[string]float64 `json:"params"`

	// Variable and Scaling select what an SVG export draws.
	Variable irf.Variable `json:"-"`
	Scaling  irf.Scaling  `json:"-"`
}

type row struct {
	Time        float64 `json:"time"`
	Capital     float64 `json:"capital"`
	Output      float64 `json:"output"`
	Consumption float64 `json:"consumption"`
	Investment  float64 `json:"investment"`
}

type document struct {
	Meta
	Padding int   `json:"padding"`
	Horizon int   `json:"horizon"`
	Rows    []row `json:"rows"`
}

// Header is the CSV header row.
func Header() []string {
	h := []string{"time"}
	for _, v := range irf.Variables() {
		h = append(h, v.String())
	}
	return h
}

func WriteCSV(w io.Writer, t *irf.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}

	for _, r := range t.Rows() {
		record := []string{strconv.FormatFloat(r.Time, 'f', -1, 64)}
		for _, v := range irf.Variables() {
			record = append(record, strconv.FormatFloat(r.Value(v), 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, meta Meta, t *irf.Table) error {
	doc := document{
		Meta:    meta,
		Padding: t.Padding(),
		Horizon: t.Horizon(),
		Rows:    make([]row, 0, t.Len()),
	}
	for _, r := range t.Rows() {
		doc.Rows = append(doc.Rows, row(r))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func WriteSVG(w io.Writer, meta Meta, t *irf.Table) error {
	times, values := t.Series(meta.Variable)
	bgp := irf.BalancedGrowthPath(t, meta.Variable, meta.Scaling)
	svg := ResponseToSVG(times, values, bgp, 800, 400)
	if svg == "" {
		return fmt.Errorf("export: need at least two rows to draw, got %d", t.Len())
	}
	_, err := io.WriteString(w, svg)
	return err
}

// WriteFile picks the format from the file extension (.csv, .json, .svg).
func WriteFile(path string, meta Meta, t *irf.Table) error {
	var write func(io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		write = func(w io.Writer) error { return WriteCSV(w, t) }
	case ".json":
		write = func(w io.Writer) error { return WriteJSON(w, meta, t) }
	case ".svg":
		write = func(w io.Writer) error { return WriteSVG(w, meta, t) }
	default:
		return fmt.Errorf("export: unsupported format %q (want .csv, .json or .svg)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
