package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/conveyor/internal/engine"
)

type frameMsg time.Time

// teardownMsg delivers a deferred overlay close. generation names the
// session that asked for it, so a reopen in between makes it stale.
type teardownMsg struct {
	generation uint64
}

type copiedMsg struct {
	title string
	err   error
}

func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func teardownCmd(td *engine.Teardown) tea.Cmd {
	if td == nil {
		return nil
	}
	gen := td.Generation
	return tea.Tick(td.Delay, func(time.Time) tea.Msg {
		return teardownMsg{generation: gen}
	})
}
