// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hnvctl/hnvctl/internal/model"
)

// SelectResources lets the user pick two of items to diff. It returns nil if
// the user quits without choosing.
func SelectResources(ctx context.Context, items []model.Resource, opts ...tea.ProgramOption) ([]model.Resource, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(picker{items: items}, opts...)
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run picker: %w", err)
	}
	return m.(picker).selected, nil
}

type picker struct {
	items    []model.Resource
	cursor   int
	selected []model.Resource
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		if ok && (key.String() == "q" || key.String() == "esc" || key.String() == "ctrl+c") {
			return m, tea.Quit
		}
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.selected = nil
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		current := m.items[m.cursor]
		if i := indexOf(m.selected, current); i >= 0 {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
		} else if len(m.selected) < 2 {
			m.selected = append(m.selected, current)
		}
	case "enter":
		if len(m.selected) == 2 {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m picker) View() string {
	var b strings.Builder
	b.WriteString("Select two resources:\n\n")
	for i, r := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if indexOf(m.selected, r) >= 0 {
			mark = "x"
		}

		env := r.Envelope()
		state := ""
		if s := model.ProvisioningState(r); s != "" {
			state = " (" + s + ")"
		}
		fmt.Fprintf(&b, "%s [%s] %s%s\n", cursor, mark, env.ResourceID, state)
	}
	b.WriteString("\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n")
	return b.String()
}

func indexOf(resources []model.Resource, r model.Resource) int {
	for i, v := range resources {
		if v.Envelope().ResourceID == r.Envelope().ResourceID {
			return i
		}
	}
	return -1
}
