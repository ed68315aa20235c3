// Package tui is the interactive presentation layer. It drives selection
// and batch composition but owns none of the engine logic: targets are
// resolved fresh per run, the confirmation gate is re-evaluated every time,
// and results stream back one per completed item.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/priyamkaur/winbroom/internal/catalog"
	"github.com/priyamkaur/winbroom/internal/engine"
	"github.com/priyamkaur/winbroom/internal/resolve"
)

// ─── Phases ──────────────────────────────────────────────────────────────────

type phase int

const (
	phaseBrowse phase = iota
	phaseConfirm
	phaseRunning
	phaseDone
)

// ─── Messages ────────────────────────────────────────────────────────────────

type resultMsg engine.Result

type doneMsg engine.Report

// ─── Model ───────────────────────────────────────────────────────────────────

type row struct {
	item       catalog.Item
	target     resolve.Target
	resolveErr error
	selected   bool
}

// Model is the bubbletea model for the cleanup screen.
type Model struct {
	cat  *catalog.Catalog
	env  resolve.Env
	exec *engine.Executor

	rows   []row
	cursor int
	phase  phase

	// confirmQueue holds row indexes awaiting a yes/no answer for the
	// current run; decisions maps item ID to the gate's verdict.
	confirmQueue []int
	confirmPos   int
	decisions    map[string]engine.Decision

	spin    spinner.Model
	events  chan tea.Msg
	results []engine.Result
	report  engine.Report

	width    int
	height   int
	quitting bool
}

// New builds the model, resolving and validating every catalog item once
// for display. Execution re-resolves from scratch.
func New(cat *catalog.Catalog, env resolve.Env, exec *engine.Executor) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		cat:  cat,
		env:  env,
		exec: exec,
		spin: sp,
	}
	for _, item := range cat.List() {
		m.rows = append(m.rows, buildRow(item, env))
	}
	return m
}

func buildRow(item catalog.Item, env resolve.Env) row {
	r := row{item: item}
	target, err := resolve.Resolve(item, env)
	if err != nil {
		r.resolveErr = err
		return r
	}
	r.target = resolve.Validate(target)
	return r
}

// available reports whether the row can be part of a batch at all.
func (r row) available() bool {
	return r.resolveErr == nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

// ─── Update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case resultMsg:
		m.results = append(m.results, engine.Result(msg))
		return m, m.waitForEvent()

	case doneMsg:
		m.report = engine.Report(msg)
		m.phase = phaseDone
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseBrowse:
		return m.handleBrowseKey(msg)
	case phaseConfirm:
		return m.handleConfirmKey(msg)
	case phaseRunning:
		// Destructive actions run to completion; only ctrl+c force-quits.
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case phaseDone:
		switch msg.String() {
		case "q", "enter", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case " ":
		if r := &m.rows[m.cursor]; r.available() {
			r.selected = !r.selected
		}

	case "a":
		all := true
		for _, r := range m.rows {
			if r.available() && !r.selected {
				all = false
				break
			}
		}
		for i := range m.rows {
			if m.rows[i].available() {
				m.rows[i].selected = !all
			}
		}

	case "enter":
		return m.beginRun()
	}

	return m, nil
}

// beginRun collects the selection and queues confirmations before
// executing. With nothing selected, the item under the cursor runs alone.
func (m Model) beginRun() (tea.Model, tea.Cmd) {
	selected := m.selectedRows()
	if len(selected) == 0 {
		if r := m.rows[m.cursor]; r.available() {
			m.rows[m.cursor].selected = true
			selected = []int{m.cursor}
		} else {
			return m, nil
		}
	}

	m.decisions = make(map[string]engine.Decision)
	m.confirmQueue = nil
	for _, i := range selected {
		item := m.rows[i].item
		// Items that will fail the privilege precheck are executed
		// without asking: the gate is never reached for them.
		if m.exec.NeedsElevation(item) {
			continue
		}
		if engine.RequiresConfirmation(item) {
			m.confirmQueue = append(m.confirmQueue, i)
		}
	}

	if len(m.confirmQueue) > 0 {
		m.phase = phaseConfirm
		m.confirmPos = 0
		return m, nil
	}
	return m.startBatch()
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := m.confirmQueue[m.confirmPos]
	item := m.rows[idx].item

	switch msg.String() {
	case "y", "Y":
		m.decisions[item.ID] = engine.Gate(item, true)
	case "n", "N", "esc":
		m.decisions[item.ID] = engine.Gate(item, false)
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	default:
		return m, nil
	}

	m.confirmPos++
	if m.confirmPos < len(m.confirmQueue) {
		return m, nil
	}
	return m.startBatch()
}

// startBatch resolves fresh targets for the selection and runs the batch
// on a worker goroutine, streaming one message per completed item.
func (m Model) startBatch() (tea.Model, tea.Cmd) {
	var attempts []engine.Attempt
	for _, i := range m.selectedRows() {
		item := m.rows[i].item

		target, err := resolve.Resolve(item, m.env)
		if err != nil {
			// Unavailable on this system; excluded from execution.
			continue
		}
		target = resolve.Validate(target)

		decision := engine.Proceed
		if d, ok := m.decisions[item.ID]; ok {
			decision = d
		}
		attempts = append(attempts, engine.Attempt{Item: item, Target: target, Decision: decision})
	}

	if len(attempts) == 0 {
		m.phase = phaseBrowse
		return m, nil
	}

	m.phase = phaseRunning
	m.results = nil
	m.events = make(chan tea.Msg, len(attempts)+1)

	exec := m.exec
	events := m.events
	go func() {
		results := exec.ExecuteBatch(context.Background(), attempts, func(r engine.Result) {
			events <- resultMsg(r)
		})
		events <- doneMsg(engine.Aggregate(results))
		close(events)
	}()

	return m, tea.Batch(m.spin.Tick, m.waitForEvent())
}

// waitForEvent relays the next worker message into the update loop.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

func (m Model) selectedRows() []int {
	var out []int
	for i, r := range m.rows {
		if r.selected {
			out = append(out, i)
		}
	}
	return out
}
