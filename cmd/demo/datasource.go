package main

import (
	"fmt"
	"time"

	"claymark"
)

// demoData is a minimal claymark.HostDataSource backing the built-in demo
// page: a tick counter, a scrollable list of fake log lines, and a click
// counter that model.go bumps whenever the engine reports a click. Grounded on
// the shape of the spec's §4.12 contract, not on any teacher state store —
// the teacher never had an external data-binding layer to ground this on.
type demoData struct {
	started time.Time
	ticks   int
	clicks  int
	logs    []string
}

func newDemoData() *demoData {
	d := &demoData{started: time.Now()}
	for i := 0; i < 40; i++ {
		d.logs = append(d.logs, fmt.Sprintf("log line %02d: nothing to report", i))
	}
	return d
}

func (d *demoData) GetBool(key string, iter *claymark.IterationContext) (bool, bool) {
	switch key {
	case "even_tick":
		return d.ticks%2 == 0, true
	}
	return false, false
}

func (d *demoData) GetNumeric(key string, iter *claymark.IterationContext) (float64, bool) {
	switch key {
	case "ticks":
		return float64(d.ticks), true
	case "clicks":
		return float64(d.clicks), true
	case "uptime_seconds":
		return time.Since(d.started).Seconds(), true
	}
	return 0, false
}

func (d *demoData) GetText(key string, iter *claymark.IterationContext) (string, bool) {
	switch key {
	case "title":
		return "claymark demo", true
	case "status":
		return fmt.Sprintf("ticks=%d clicks=%d", d.ticks, d.clicks), true
	case "log_line":
		if iter == nil || iter.Index < 0 || iter.Index >= len(d.logs) {
			return "", false
		}
		return d.logs[iter.Index], true
	}
	return "", false
}

func (d *demoData) GetColor(key string, iter *claymark.IterationContext) (claymark.Color, bool) {
	switch key {
	case "status_color":
		if d.ticks%2 == 0 {
			return claymark.RGB(80, 200, 120), true
		}
		return claymark.RGB(200, 160, 60), true
	}
	return claymark.Color{}, false
}

func (d *demoData) GetImage(key string, iter *claymark.IterationContext) (claymark.ImageRef, bool) {
	return claymark.ImageRef{}, false
}

func (d *demoData) GetEvent(key string, iter *claymark.IterationContext) (claymark.Event, bool) {
	return claymark.Event{}, false
}

func (d *demoData) GetListLength(source string) int {
	switch source {
	case "logs":
		return len(d.logs)
	}
	return 0
}

func (d *demoData) tick() { d.ticks++ }

func (d *demoData) click() { d.clicks++ }
