package menu

import (
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRunForm(t *testing.T, fn func(*huh.Form) error) {
	t.Helper()
	orig := runFormFunc
	runFormFunc = fn
	t.Cleanup(func() { runFormFunc = orig })
}

func interactive() *Menu {
	return &Menu{isTerminal: func() bool { return true }, output: io.Discard}
}

func TestChoose_RequiresTerminal(t *testing.T) {
	m := &Menu{isTerminal: func() bool { return false }}
	_, err := m.Choose()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestChoose_DefaultSelection(t *testing.T) {
	var ran bool
	stubRunForm(t, func(*huh.Form) error {
		ran = true
		return nil
	})

	action, err := interactive().Choose()
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, ActionInstallEngine, action)
}

func TestChoose_AbortMeansExit(t *testing.T) {
	stubRunForm(t, func(*huh.Form) error { return huh.ErrUserAborted })

	action, err := interactive().Choose()
	require.NoError(t, err)
	assert.Equal(t, ActionExit, action)
}

func TestChoose_FormError(t *testing.T) {
	stubRunForm(t, func(*huh.Form) error { return errors.New("tty lost") })

	_, err := interactive().Choose()
	require.EqualError(t, err, "tty lost")
}

func TestOptions_Order(t *testing.T) {
	opts := Options()
	require.Len(t, opts, 4)
	assert.Equal(t, ActionInstallEngine, opts[0].Value)
	assert.Equal(t, ActionInstallSchema, opts[1].Value)
	assert.Equal(t, ActionRedeploy, opts[2].Value)
	assert.Equal(t, ActionExit, opts[3].Value)
	assert.Equal(t, "Exit", opts[3].Key)
}

func TestKeyMap_EscQuits(t *testing.T) {
	km := keyMap()
	assert.Contains(t, km.Quit.Keys(), "esc")
	assert.False(t, km.Select.Filter.Enabled())
}

func TestInterruptFilter(t *testing.T) {
	assert.Equal(t, tea.QuitMsg{}, interruptFilter(nil, tea.InterruptMsg{}))
	msg := tea.KeyMsg{Type: tea.KeyEnter}
	assert.Equal(t, msg, interruptFilter(nil, msg))
}
