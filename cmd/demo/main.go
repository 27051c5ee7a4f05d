// Command demo is the one concrete integration claymark ships: a terminal
// host that loads a markup document, drives a claymark.LayoutEngine once
// per bubbletea frame, and paints the resulting render commands with
// lipgloss (spec SPEC_FULL.md §2 component 15).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"claymark"
)

func main() {
	markupPath := flag.String("markup", "", "path to a .markup document (defaults to the built-in demo page)")
	configPath := flag.String("config", "claymark.toml", "path to an engine config TOML file")
	pageName := flag.String("page", "home", "page name to run")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := claymark.LoadEngineConfig(*configPath)
	if err != nil {
		logger.Error("failed to load engine config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	var doc []byte
	if *markupPath != "" {
		doc, err = os.ReadFile(*markupPath)
		if err != nil {
			logger.Error("failed to read markup document", "path", *markupPath, "error", err)
			os.Exit(1)
		}
	} else {
		doc = []byte(defaultMarkup)
		logger.Info("no -markup given, using built-in demo page")
	}

	m, err := newModel(cfg, doc, *pageName, logger)
	if err != nil {
		logger.Error("failed to start demo", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "claymark demo exited with error:", err)
		os.Exit(1)
	}
}
