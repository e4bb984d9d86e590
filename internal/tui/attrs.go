package tui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	table "github.com/charmbracelet/bubbles/table"

	"geowkt/internal/feature"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the loaded collection
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := buildAttributes(m.features)
	// If there are no rows, disable attributes view to avoid rendering panics
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, strconv.Itoa(i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes returns a "kind" column followed by the union of property
// keys in first-seen order, and one row per feature.
func buildAttributes(c *feature.Collection) ([]string, [][]string) {
	if c == nil || c.Len() == 0 {
		return nil, nil
	}
	var keys feature.Map[string, struct{}]
	for _, f := range c.Features() {
		for _, k := range f.Properties.Keys() {
			keys.Set(k, struct{}{})
		}
	}
	cols := append([]string{"kind"}, keys.Keys()...)

	rows := make([][]string, 0, c.Len())
	for _, f := range c.Features() {
		row := make([]string, 0, len(cols))
		kind := "null"
		if f.Geometry != nil {
			kind = string(f.Geometry.Kind())
		}
		row = append(row, kind)
		for _, k := range cols[1:] {
			v, _ := f.Properties.Get(k)
			row = append(row, formatValue(v))
		}
		rows = append(rows, row)
	}
	return cols, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	}
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(bs)
}

const maxInspectWKT = 160

// describeFeature renders the inspect popup for feature i.
func (m Model) describeFeature(i int) string {
	f := m.features.At(i)
	lines := []string{fmt.Sprintf("feature %d of %d", i+1, m.features.Len())}
	if f.Geometry == nil {
		lines = append(lines, "kind: null")
	} else {
		wkt := f.Geometry.WKT(true)
		if len(wkt) > maxInspectWKT {
			wkt = wkt[:maxInspectWKT] + "…"
		}
		bb := f.Bounds()
		lines = append(lines,
			"kind: "+string(f.Geometry.Kind()),
			fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", bb.MinX, bb.MinY, bb.MaxX, bb.MaxY),
			"wkt: "+wkt,
		)
	}
	f.Properties.Range(func(k string, v any) bool {
		lines = append(lines, k+": "+formatValue(v))
		return true
	})
	return strings.Join(lines, "\n")
}
