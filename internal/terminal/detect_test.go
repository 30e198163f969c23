package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubTerminals(t *testing.T, ttys map[int]bool) {
	t.Helper()
	origIsTerminal, origStdin, origStdout := isTerminal, stdin, stdout
	isTerminal = func(fd int) bool { return ttys[fd] }
	stdin = func() uintptr { return 0 }
	stdout = func() uintptr { return 1 }
	t.Cleanup(func() {
		isTerminal, stdin, stdout = origIsTerminal, origStdin, origStdout
	})
}

func TestIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		ttys map[int]bool
		want bool
	}{
		{name: "both terminals", ttys: map[int]bool{0: true, 1: true}, want: true},
		{name: "stdin piped", ttys: map[int]bool{1: true}},
		{name: "stdout redirected", ttys: map[int]bool{0: true}},
		{name: "neither", ttys: map[int]bool{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubTerminals(t, tt.ttys)
			assert.Equal(t, tt.want, IsInteractive())
		})
	}
}

func TestIsInteractive_UnderGoTest(t *testing.T) {
	// go test captures stdout, so the real check never sees a terminal there.
	assert.False(t, IsInteractive())
}
