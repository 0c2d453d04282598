// Package view turns station state into what a user sees: either the error
// message or one row per station.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"viewer.bysykkel.dev/internal/stations"
)

// Headers are the table column titles, in order.
var Headers = []string{"ID", "Name", "Address", "No. bikes available"}

// Row is one rendered station. AvailableBikes is blank when unknown.
type Row struct {
	ID             int
	Name           string
	Address        string
	AvailableBikes string
}

// Table is the derived view. When Error is set Rows is empty and nothing but
// the error is shown.
type Table struct {
	Error string
	Rows  []Row
}

// ShowsError reports whether the error replaces the table.
func (t Table) ShowsError() bool {
	return t.Error != ""
}

// Build derives the table from state.
func Build(state stations.State) Table {
	if state.HasError() {
		return Table{Error: state.ErrorMessage}
	}

	list := state.Merged.Stations()
	rows := make([]Row, 0, len(list))
	for _, s := range list {
		rows = append(rows, Row{
			ID:             s.ID,
			Name:           s.Name,
			Address:        s.Address,
			AvailableBikes: formatCount(s.AvailableBikes),
		})
	}
	return Table{Rows: rows}
}

func formatCount(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// RenderText writes t as an aligned plain-text table.
func RenderText(w io.Writer, t Table) error {
	if t.ShowsError() {
		_, err := fmt.Fprintln(w, t.Error)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", Headers[0], Headers[1], Headers[2], Headers[3])
	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.Name, r.Address, r.AvailableBikes)
	}
	return tw.Flush()
}

// RenderJSON writes the state as JSON: {"error": ...} in place of
// {"stations": [...]}.
func RenderJSON(w io.Writer, state stations.State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if state.HasError() {
		return enc.Encode(struct {
			Error string `json:"error"`
		}{Error: state.ErrorMessage})
	}

	list := state.Merged.Stations()
	if list == nil {
		list = []stations.Station{}
	}
	return enc.Encode(struct {
		Stations []stations.Station `json:"stations"`
	}{Stations: list})
}
