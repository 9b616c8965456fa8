package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"pfeifer.dev/motorplan/planner"
	ms "pfeifer.dev/motorplan/settings"
)

type field int

const (
	fieldFrom field = iota
	fieldFromSpeed
	fieldTo
	fieldToSpeed
	fieldSpeed
	fieldAccel
	fieldDeccel
	fieldCount
)

var fieldLabels = [fieldCount]string{"from", "from speed", "to", "to speed", "speed limit", "accel limit", "deccel limit"}

// uiModel edits a move and shows its plan as the values change.
type uiModel struct {
	inputs  [fieldCount]textinput.Model
	focused field
	summary string
	err     error
}

func initialModel() uiModel {
	limits := ms.Settings.Limits
	values := [fieldCount]float64{0, 0, 0, 0, limits.Speed, limits.Accel, limits.Deccel}

	m := uiModel{}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = labelStyle.Render(fieldLabels[i])
		ti.CharLimit = 24
		ti.SetValue(strconv.FormatFloat(values[i], 'g', -1, 64))
		m.inputs[i] = ti
	}
	m.inputs[fieldFrom].Focus()
	m.recompute()
	return m
}

func (m uiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m uiModel) move() (move, error) {
	var values [fieldCount]float64
	for i, in := range m.inputs {
		v, err := strconv.ParseFloat(strings.TrimSpace(in.Value()), 64)
		if err != nil {
			return move{}, errors.Errorf("%s is not a number", fieldLabels[i])
		}
		values[i] = v
	}
	return move{
		initial: planner.State{Position: values[fieldFrom], Speed: values[fieldFromSpeed]},
		final:   planner.State{Position: values[fieldTo], Speed: values[fieldToSpeed]},
		limits:  planner.Limits{Speed: values[fieldSpeed], Accel: values[fieldAccel], Deccel: values[fieldDeccel]},
	}, nil
}

func (m *uiModel) recompute() {
	m.summary = ""
	mv, err := m.move()
	if err == nil {
		var plan planner.PositionChangePlan
		plan, err = mv.compute()
		if err == nil {
			m.summary = renderSummary(mv, plan)
		}
	}
	m.err = err
}

func (m *uiModel) focus(f field) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = (f + fieldCount) % fieldCount
	return m.inputs[m.focused].Focus()
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down", "enter":
			return m, m.focus(m.focused + 1)
		case "shift+tab", "up":
			return m, m.focus(m.focused - 1)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	m.recompute()
	return m, cmd
}

func (m uiModel) View() string {
	inputs := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		inputs[i] = in.View()
	}

	result := m.summary
	if m.err != nil {
		result = errorStyle.Render(m.err.Error())
	}

	return docStyle.Render(fmt.Sprintf(
		"%s\n\n%s",
		lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(inputs, "\n"), "    ", result),
		"(tab to move, esc to quit)",
	) + "\n")
}
