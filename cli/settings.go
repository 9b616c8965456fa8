package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	ms "pfeifer.dev/motorplan/settings"
)

func settingsCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or change the saved settings",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the current settings as json",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					data, err := json.MarshalIndent(ms.Settings, "", "  ")
					if err != nil {
						return errors.Wrap(err, "could not encode settings")
					}
					_, err = fmt.Fprintln(w, string(data))
					return err
				},
			},
			{
				Name:      "set",
				Usage:     "Change one setting, e.g. set limits.accel 4",
				ArgsUsage: "<key> <value>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return errors.New("set takes exactly a key and a value")
					}
					return setAndSave(cmd.Args().Get(0), cmd.Args().Get(1))
				},
			},
			{
				Name:  "defaults",
				Usage: "Reset every setting to its default",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ms.Settings.Default()
					return ms.Settings.Persist()
				},
			},
		},
	}
}

// setAndSave only persists values that leave the settings valid.
func setAndSave(key, value string) error {
	updated := ms.Settings
	if err := updated.Set(key, value); err != nil {
		return err
	}
	if err := updated.Validate(); err != nil {
		return err
	}
	ms.Settings = updated
	ms.Settings.ApplyLogLevel()
	return ms.Settings.Persist()
}

type settingsState int

const (
	showSettingsMenu settingsState = iota
	settingsInput
)

type settingsItem struct {
	title, desc string
	key         string
}

func (i settingsItem) Title() string       { return i.title }
func (i settingsItem) Description() string { return i.desc }
func (i settingsItem) FilterValue() string { return i.title }

type settingsModel struct {
	list         list.Model
	state        settingsState
	textInput    textinput.Model
	selectedItem settingsItem
	err          error
	done         bool
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case msg.Type == tea.KeyEsc && m.state == settingsInput:
			m.state = showSettingsMenu
			return m, nil
		case msg.Type == tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case msg.Type == tea.KeyEnter && m.state == showSettingsMenu && m.list.FilterState() != list.Filtering:
			m.selectedItem = m.list.SelectedItem().(settingsItem)
			m.state = settingsInput
			m.err = nil
			m.textInput.SetValue(currentSetting(m.selectedItem.key))
			m.textInput.Focus()
			return m, textinput.Blink
		case msg.Type == tea.KeyEnter && m.state == settingsInput:
			m.err = setAndSave(m.selectedItem.key, m.textInput.Value())
			if m.err == nil {
				m.state = showSettingsMenu
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	if m.state == settingsInput {
		m.textInput, cmd = m.textInput.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m settingsModel) View() string {
	switch m.state {
	case settingsInput:
		status := ""
		if m.err != nil {
			status = errorStyle.Render(m.err.Error())
		}
		return docStyle.Render(fmt.Sprintf(
			"%s\n\n%s\n\n%s\n%s",
			titleStyle.Render(m.selectedItem.title),
			m.textInput.View(),
			status,
			"(enter to save, esc to go back)",
		) + "\n")
	default:
		return docStyle.Render(m.list.View())
	}
}

// currentSetting renders a setting for editing.
func currentSetting(key string) string {
	s := ms.Settings
	switch key {
	case "log_level":
		return s.LogLevel
	case "limits.speed":
		return fmt.Sprint(s.Limits.Speed)
	case "limits.accel":
		return fmt.Sprint(s.Limits.Accel)
	case "limits.deccel":
		return fmt.Sprint(s.Limits.Deccel)
	case "step_limits.speed":
		return fmt.Sprint(s.StepLimits.Speed)
	case "step_limits.accel":
		return fmt.Sprint(s.StepLimits.Accel)
	case "step_limits.deccel":
		return fmt.Sprint(s.StepLimits.Deccel)
	case "sample_interval":
		return fmt.Sprint(s.SampleInterval)
	case "can_interface":
		return s.CanInterface
	case "can_id":
		return fmt.Sprintf("%#x", s.CanID)
	}
	return ""
}

func getSettingsModel() settingsModel {
	items := []list.Item{
		settingsItem{title: "Speed Limit", desc: "Maximum speed magnitude of planned moves", key: "limits.speed"},
		settingsItem{title: "Acceleration Limit", desc: "Maximum rate of speeding up", key: "limits.accel"},
		settingsItem{title: "Deceleration Limit", desc: "Maximum rate of slowing down", key: "limits.deccel"},
		settingsItem{title: "Step Speed Limit", desc: "Maximum speed of the discrete ramp in steps per epoch", key: "step_limits.speed"},
		settingsItem{title: "Step Acceleration Limit", desc: "Maximum speed increase per epoch", key: "step_limits.accel"},
		settingsItem{title: "Step Deceleration Limit", desc: "Maximum speed decrease per epoch", key: "step_limits.deccel"},
		settingsItem{title: "Sample Interval", desc: "Time between samples when sampling or streaming a plan", key: "sample_interval"},
		settingsItem{title: "CAN Interface", desc: "Socketcan interface setpoints are streamed on", key: "can_interface"},
		settingsItem{title: "CAN Frame ID", desc: "Standard id of setpoint frames", key: "can_id"},
		settingsItem{title: "Set Log Level", desc: "Modify how verbose logging will be", key: "log_level"},
	}

	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 20

	m := settingsModel{list: list.New(items, list.NewDefaultDelegate(), 0, 0), textInput: ti}
	m.list.Title = "Motorplan Settings"
	return m
}
