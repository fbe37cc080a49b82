package main

import (
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/memarena/memarena/arena/workload"
	"github.com/memarena/memarena/cmd/memscope/logger"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chunkTable.SetHeight(max(4, msg.Height-14))
		return m, nil

	case tea.KeyMsg:
		if m.inputMode == AllocPromptMode {
			return m.updateAllocPrompt(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

// updateNormal handles keys in the default mode.
func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Alloc):
		m.inputMode = AllocPromptMode
		m.sizeInput.SetValue("")
		m.sizeInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Free):
		m.freeSelected()
		return m, nil

	case key.Matches(msg, m.keys.Workload):
		m.runWorkload(msg.String())
		return m, nil

	case key.Matches(msg, m.keys.Yank):
		m.yankSelected()
		return m, nil
	}

	var cmd tea.Cmd
	m.chunkTable, cmd = m.chunkTable.Update(msg)
	return m, cmd
}

// updateAllocPrompt handles keys while the size prompt is open.
func (m Model) updateAllocPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.inputMode = NormalMode
		m.sizeInput.Blur()
		m.allocFromPrompt(m.sizeInput.Value())
		return m, nil
	case "esc":
		m.inputMode = NormalMode
		m.sizeInput.Blur()
		m.setStatus("allocation cancelled")
		return m, nil
	}

	var cmd tea.Cmd
	m.sizeInput, cmd = m.sizeInput.Update(msg)
	return m, cmd
}

// allocFromPrompt parses the prompt value and performs the allocation.
func (m *Model) allocFromPrompt(value string) {
	size, err := strconv.Atoi(value)
	if err != nil {
		m.setError("invalid size %q", value)
		return
	}
	p, err := m.arena.Alloc(size)
	if err != nil {
		m.setError("alloc %d: %v", size, err)
		return
	}
	off, _ := m.arena.OffsetOf(p)
	logger.Info("alloc", "requested", size, "granted", len(p), "offset", off)
	m.setStatus("allocated %d bytes at offset %d", len(p), off)
	m.refreshChunkTable()
}

// freeSelected frees the chunk under the cursor.
func (m *Model) freeSelected() {
	c, ok := m.selectedChunk()
	if !ok {
		m.setError("no chunk selected")
		return
	}
	if !c.Allocated {
		m.setError("chunk at offset %d is already free", c.Offset)
		return
	}
	p, err := m.arena.At(c.PayloadOffset)
	if err != nil {
		m.setError("chunk at offset %d: %v", c.Offset, err)
		return
	}
	if err := m.arena.Free(p); err != nil {
		// A fault from a viewer-driven free means the arena is done for.
		logger.Error("free fault", "offset", c.Offset, "error", err)
		m.setError("FAULT: %v", err)
		return
	}
	logger.Info("free", "offset", c.Offset, "payload", c.PayloadSize)
	m.setStatus("freed %d bytes at offset %d", c.PayloadSize, c.Offset)
	m.refreshChunkTable()
}

// runWorkload executes one stress workload against the live arena.
func (m *Model) runWorkload(digit string) {
	id, err := strconv.Atoi(digit)
	if err != nil {
		return
	}
	w, ok := workload.ByID(id)
	if !ok {
		return
	}
	runErr := w.Run(m.arena)
	if runErr != nil {
		m.setError("workload %s: %v", w.Name, runErr)
	} else {
		m.setStatus("workload %s completed", w.Name)
	}
	logger.Info("workload", "name", w.Name, "error", runErr)
	m.refreshChunkTable()
}

// yankSelected copies the selected chunk's summary to the system clipboard.
func (m *Model) yankSelected() {
	c, ok := m.selectedChunk()
	if !ok {
		m.setError("no chunk selected")
		return
	}
	if err := clipboard.WriteAll(chunkSummary(c)); err != nil {
		m.setError("clipboard: %v", err)
		return
	}
	m.setStatus("chunk summary copied to clipboard")
}
