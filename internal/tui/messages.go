package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"eve-routes/internal/search"
)

// TickMsg drives the progress simulation for one search attempt. The
// embedded generation lets the model drop ticks that belong to a
// superseded attempt, so only one tick stream ever re-arms.
type TickMsg struct {
	Generation uint64
	Time       time.Time
}

// SearchResultMsg carries the single outcome of one search attempt. The
// embedded generation lets the model drop stale deliveries.
type SearchResultMsg struct {
	Result search.Result
}

// HealthMsg reports the startup server connectivity probe.
type HealthMsg bool

// tickCmd schedules the next progress tick for one attempt generation.
func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(search.TickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Generation: gen, Time: t}
	})
}

// waitResultCmd blocks on the manager's result channel and forwards the
// outcome as a message.
func waitResultCmd(ch <-chan search.Result) tea.Cmd {
	return func() tea.Msg {
		return SearchResultMsg{Result: <-ch}
	}
}
