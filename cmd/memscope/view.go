package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/memarena/memarena/arena"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("memscope — arena %d bytes", m.arena.Capacity())))
	b.WriteString("\n\n")

	left := focusedPaneStyle.Render(m.chunkTable.View())
	right := paneStyle.Render(m.statsView())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")

	b.WriteString(m.gaugeView())
	b.WriteString("\n")

	if m.inputMode == AllocPromptMode {
		b.WriteString(promptStyle.Render("allocate: " + m.sizeInput.View()))
		b.WriteString("\n")
	}

	if m.statusMessage != "" {
		style := statusStyle
		if m.statusIsError {
			style = errorStatusStyle
		}
		b.WriteString(style.Render(m.statusMessage))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(helpStyle.Render(helpText))
	} else {
		b.WriteString(helpStyle.Render("a alloc · f free · 1-5 workload · y yank · ? help · q quit"))
	}
	return b.String()
}

const helpText = `
  ↑/k, ↓/j   move through the chunk table
  a          allocate (prompts for a byte count)
  f          free the selected chunk
  1-5        run a stress workload (pairs, batch, random, list, matrix)
  y          yank the selected chunk's summary to the clipboard
  ?          toggle this help
  q          quit`

// statsView renders the counters panel.
func (m Model) statsView() string {
	s := m.arena.Stats()
	leaks := m.arena.LeakCheck()

	line := func(label string, value any) string {
		return statsLabelStyle.Render(fmt.Sprintf("%-12s", label)) +
			statsValueStyle.Render(fmt.Sprintf("%v", value))
	}

	rows := []string{
		line("allocs", s.Allocs),
		line("frees", s.Frees),
		line("failed", s.FailedAllocs),
		line("splits", s.Splits),
		line("fwd merges", s.ForwardCoalesces),
		line("bwd merges", s.BackwardCoalesces),
		line("in use", fmt.Sprintf("%d B", s.BytesInUse)),
		line("peak", fmt.Sprintf("%d B", s.PeakInUse)),
		line("live", fmt.Sprintf("%d objects", leaks.Objects)),
	}
	return strings.Join(rows, "\n")
}

// gaugeView renders a utilization bar: allocated payload over capacity.
func (m Model) gaugeView() string {
	const width = 40
	used := m.arena.Stats().BytesInUse
	capacity := m.arena.Capacity()
	filled := 0
	if capacity > 0 {
		filled = used * width / capacity
	}
	if filled > width {
		filled = width
	}

	bar := gaugeFilledStyle.Render(strings.Repeat("█", filled)) +
		gaugeEmptyStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d/%d bytes in use", bar, used, capacity)
}

// chunkSummary is the text placed on the clipboard by yank.
func chunkSummary(c arena.ChunkInfo) string {
	state := "free"
	if c.Allocated {
		state = "allocated"
	}
	return fmt.Sprintf("chunk offset=%d payload=%d total=%d state=%s payload_offset=%d",
		c.Offset, c.PayloadSize, c.TotalSize, state, c.PayloadOffset)
}
