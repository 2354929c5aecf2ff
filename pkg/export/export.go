// Package export renders a prioritized delivery schedule for consumers
// outside the process.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/greenslot/core/scheduler"
)

// WriteJSON writes the schedule to w as a JSON array.
func WriteJSON(w io.Writer, entries []scheduler.ScheduleEntry) error {
	if entries == nil {
		entries = []scheduler.ScheduleEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteCSV writes the schedule to w in CSV format with a header row.
func WriteCSV(w io.Writer, entries []scheduler.ScheduleEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "green"}); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			e.Time.UTC().Format(time.RFC3339),
			strconv.FormatBool(e.Green),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write dispatches on format ("json" or "csv").
func Write(w io.Writer, format string, entries []scheduler.ScheduleEntry) error {
	switch strings.ToLower(format) {
	case "", "json":
		return WriteJSON(w, entries)
	case "csv":
		return WriteCSV(w, entries)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
