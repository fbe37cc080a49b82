package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/memarena/memarena/arena"
	"github.com/memarena/memarena/cmd/memscope/logger"
)

// InputMode represents the states of the single input prompt.
type InputMode int

const (
	NormalMode InputMode = iota
	AllocPromptMode
)

// Model is the main application model: one arena instance plus the chunk
// table, prompt, and status line that drive it.
type Model struct {
	arena *arena.Arena

	chunkTable table.Model
	sizeInput  textinput.Model
	keys       KeyMap

	inputMode InputMode
	showHelp  bool

	statusMessage string
	statusIsError bool

	width  int
	height int
}

// NewModel builds the model over a fresh arena. A capacity of 0 uses the
// compile-time default.
func NewModel(capacity int) (Model, error) {
	opts := []arena.Option{arena.WithDiagnostics(io.Discard)}
	if capacity > 0 {
		opts = append(opts, arena.WithCapacity(capacity))
	}
	a, err := arena.New(opts...)
	if err != nil {
		return Model{}, err
	}

	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "OFFSET", Width: 8},
		{Title: "PAYLOAD", Width: 8},
		{Title: "TOTAL", Width: 8},
		{Title: "STATE", Width: 10},
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	input := textinput.New()
	input.Placeholder = "bytes"
	input.CharLimit = 8
	input.Width = 12

	m := Model{
		arena:      a,
		chunkTable: tbl,
		sizeInput:  input,
		keys:       DefaultKeyMap(),
	}
	m.refreshChunkTable()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Close releases the arena.
func (m Model) Close() error {
	return m.arena.Close()
}

// refreshChunkTable rebuilds the table rows from the current chunk chain.
func (m *Model) refreshChunkTable() {
	chunks := m.arena.Chunks()
	rows := make([]table.Row, len(chunks))
	for i, c := range chunks {
		state := "free"
		if c.Allocated {
			state = "allocated"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", c.Offset),
			fmt.Sprintf("%d", c.PayloadSize),
			fmt.Sprintf("%d", c.TotalSize),
			state,
		}
	}
	m.chunkTable.SetRows(rows)
	if m.chunkTable.Cursor() >= len(rows) && len(rows) > 0 {
		m.chunkTable.SetCursor(len(rows) - 1)
	}
}

// selectedChunk returns the chunk under the table cursor.
func (m *Model) selectedChunk() (arena.ChunkInfo, bool) {
	chunks := m.arena.Chunks()
	i := m.chunkTable.Cursor()
	if i < 0 || i >= len(chunks) {
		return arena.ChunkInfo{}, false
	}
	return chunks[i], true
}

// setStatus records a transient message for the status line.
func (m *Model) setStatus(format string, args ...any) {
	m.statusMessage = fmt.Sprintf(format, args...)
	m.statusIsError = false
	logger.Debug("status", "message", m.statusMessage)
}

// setError records a transient error for the status line.
func (m *Model) setError(format string, args ...any) {
	m.statusMessage = fmt.Sprintf(format, args...)
	m.statusIsError = true
	logger.Warn("status error", "message", m.statusMessage)
}
