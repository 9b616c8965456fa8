package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/manifoldco/promptui"
)

const (
	exploreAction  = "Explore Plans"
	settingsAction = "Settings"
)

func interactive() {
	prompt := promptui.Select{
		Label: "Select Action",
		Items: []string{exploreAction, settingsAction},
	}

	_, result, err := prompt.Run()

	if err != nil {
		fmt.Printf("Prompt failed %v\n", err)
		return
	}

	var model tea.Model
	switch result {
	case exploreAction:
		model = initialModel()
	case settingsAction:
		model = getSettingsModel()
	default:
		return
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
