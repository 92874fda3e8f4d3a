// Package console turns text lines into indicator commands and reports.
package console

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ErrUnknownCommand is returned for lines which are neither a mode digit
// nor a registered report.
var ErrUnknownCommand = errors.New("unknown command")

// Target receives indicator mode commands.
type Target interface {
	SetOutputMode(command int)
}

// TargetFunc is the func form of Target.
type TargetFunc func(command int)

// SetOutputMode implements Target.
func (f TargetFunc) SetOutputMode(command int) {
	f(command)
}

// Report writes a diagnostic report.
type Report func(w io.Writer)

// ReportEntry is a registered report.
type ReportEntry struct {
	Keyword string
	Help    string
	Report  Report
}

// Dispatcher maps a line to an action.
// A single digit 0, 1 or 2 sets the output mode, "led N" passes any
// integer through, and a keyword runs the report registered under it.
type Dispatcher struct {
	Target Target

	lock    sync.RWMutex
	reports map[string]ReportEntry
}

// NewDispatcher creates a Dispatcher for target.
func NewDispatcher(target Target) *Dispatcher {
	return &Dispatcher{Target: target, reports: make(map[string]ReportEntry)}
}

// HandleReport registers a report under a keyword.
func (d *Dispatcher) HandleReport(keyword, help string, report Report) *Dispatcher {
	d.lock.Lock()
	d.reports[keyword] = ReportEntry{Keyword: keyword, Help: help, Report: report}
	d.lock.Unlock()
	return d
}

// Reports returns registered reports sorted by keyword.
func (d *Dispatcher) Reports() []ReportEntry {
	d.lock.RLock()
	defer d.lock.RUnlock()
	entries := make([]ReportEntry, 0, len(d.reports))
	for _, entry := range d.reports {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Keyword < entries[j].Keyword })
	return entries
}

// ModeCommand parses a line as a mode command.
// Only the digits 0, 1 and 2 are commands, other digits are unknown.
// "led N" accepts any integer, invalid ones included.
func ModeCommand(line string) (int, bool) {
	if len(line) == 1 && line[0] >= '0' && line[0] <= '2' {
		return int(line[0] - '0'), true
	}
	if arg, ok := strings.CutPrefix(line, "led "); ok {
		if command, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil {
			return command, true
		}
	}
	return 0, false
}

// Dispatch runs line, writing any output to w.
// Unknown lines are reported on w and ErrUnknownCommand is returned.
func (d *Dispatcher) Dispatch(w io.Writer, line string) error {
	if command, ok := ModeCommand(line); ok {
		if d.Target != nil {
			d.Target.SetOutputMode(command)
		}
		return nil
	}
	d.lock.RLock()
	entry, ok := d.reports[line]
	d.lock.RUnlock()
	if ok {
		entry.Report(w)
		return nil
	}
	fmt.Fprintf(w, "Unknown command: %s\n", line)
	fmt.Fprintln(w, "Type 'help' for available commands.")
	return fmt.Errorf("%w: %q", ErrUnknownCommand, line)
}
