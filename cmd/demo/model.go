package main

import (
	"bytes"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"claymark"
)

var logScrollID = claymark.ElementIDFor("log-scroll")

type tickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// model is the bubbletea host driving one claymark.LayoutEngine. Each
// Update that changes observable state re-runs the markup page and the
// solver from scratch, the way an immediate-mode engine expects (spec §1:
// "rebuilds its tree every frame").
type model struct {
	engine *claymark.LayoutEngine
	data   *demoData
	page   string
	logger *slog.Logger

	width, height int
}

func newModel(cfg claymark.EngineConfig, markup []byte, page string, logger *slog.Logger) (*model, error) {
	prog, err := claymark.CompileDocument(bytes.NewReader(markup))
	if err != nil {
		return nil, err
	}

	w, h := int32(cfg.Display.Width), int32(cfg.Display.Height)
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	mode := claymark.Fullscreen
	if !cfg.Display.Fullscreen && cfg.Display.Width > 0 {
		mode = claymark.Inline
	}

	engine := claymark.NewLayoutEngine(w, h,
		claymark.WithArenaBudget(cfg.ResolveArenaBudget()),
		claymark.WithViewportMode(mode),
		claymark.WithErrorCallback(func(e claymark.LayoutError) {
			logger.Warn("layout error", "kind", e.Kind.String(), "message", e.Message)
		}),
	)
	engine.LoadPages(prog)

	return &model{
		engine: engine,
		data:   newDemoData(),
		page:   page,
		logger: logger,
		width:  int(w),
		height: int(h),
	}, nil
}

func (m *model) Init() tea.Cmd {
	return tickEvery()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.engine.SetViewportSize(int32(msg.Width), int32(msg.Height))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tea.MouseMsg:
		m.engine.SetPointerState(claymark.PointerState{
			Position: claymark.Vector2{X: float32(msg.X), Y: float32(msg.Y)},
			Down:     msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft,
		})
		if msg.Button == tea.MouseButtonWheelUp {
			m.engine.ApplyScroll(logScrollID, claymark.ScrollDelta{DY: -1})
		} else if msg.Button == tea.MouseButtonWheelDown {
			m.engine.ApplyScroll(logScrollID, claymark.ScrollDelta{DY: 1})
		}
		return m, nil

	case tickMsg:
		m.data.tick()
		m.engine.TickScrollInertia()
		if _, clicked := m.engine.Clicked(); clicked {
			m.data.click()
		}
		return m, tickEvery()
	}
	return m, nil
}

func (m *model) View() string {
	m.engine.BeginLayout()
	if err := m.engine.RunPage(m.page, m.data); err != nil {
		m.logger.Error("run page failed", "page", m.page, "error", err)
	}
	cmds, err := m.engine.EndLayout()
	if err != nil {
		m.logger.Error("end layout failed", "error", err)
		return "claymark demo: layout error, see stderr"
	}

	vp := m.engine.ViewportSize()
	cv := newCanvas(int(vp.W), int(vp.H))
	cv.paint(cmds)
	return cv.render()
}
