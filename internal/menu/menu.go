// Package menu renders the interactive action menu shown when xbt runs without a subcommand.
package menu

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
	"github.com/conn-castle/xiaobait9-tools/internal/terminal"
)

// Action is a menu entry.
type Action string

// Menu entries in display order.
const (
	ActionInstallEngine Action = "install-engine"
	ActionInstallSchema Action = "install-schema"
	ActionRedeploy      Action = "redeploy"
	ActionExit          Action = "exit"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// Menu asks the user which action to run.
type Menu struct {
	isTerminal func() bool
	output     io.Writer
}

// New returns a Menu rendering to stderr.
func New() *Menu {
	return &Menu{isTerminal: terminal.IsInteractive, output: os.Stderr}
}

// Choose shows the menu and returns the selected action.
// Esc and Ctrl+C select ActionExit.
func (m *Menu) Choose() (Action, error) {
	checker := m.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return "", errors.New(messages.MenuRequiresTerminal)
	}

	choice := ActionInstallEngine
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title(messages.MenuTitle).
				Options(Options()...).
				Value(&choice),
		),
	)
	form.WithKeyMap(keyMap())
	output := m.output
	if output == nil {
		output = os.Stderr
	}
	form.WithProgramOptions(
		tea.WithOutput(output),
		tea.WithFilter(interruptFilter),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ActionExit, nil
	}
	if err != nil {
		return "", err
	}
	return choice, nil
}

// Options returns the menu entries with their labels.
func Options() []huh.Option[Action] {
	return []huh.Option[Action]{
		huh.NewOption(messages.MenuOptionInstallEngine, ActionInstallEngine),
		huh.NewOption(messages.MenuOptionInstallSchema, ActionInstallSchema),
		huh.NewOption(messages.MenuOptionRedeploy, ActionRedeploy),
		huh.NewOption(messages.MenuOptionExit, ActionExit),
	}
}

// keyMap makes Esc close the menu and disables filtering on the short list.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "exit"))
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)
	return km
}

// interruptFilter turns SIGINT into a graceful quit so the renderer clears the menu.
func interruptFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.QuitMsg{}
	}
	return msg
}
