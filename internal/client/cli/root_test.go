package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubExec records which commands the dispatcher invoked.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) Login(ctx context.Context) { s.calls = append(s.calls, "login") }

func (s *stubExec) Logout(ctx context.Context) { s.calls = append(s.calls, "logout") }

func (s *stubExec) Status(ctx context.Context) { s.calls = append(s.calls, "status") }

func (s *stubExec) Refresh(ctx context.Context) { s.calls = append(s.calls, "refresh") }

func (s *stubExec) Open(ctx context.Context, path string) { s.calls = append(s.calls, "open "+path) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	var lines []string
	printlnFn = func(args ...any) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			if s, ok := a.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestDispatch_KnownCommands(t *testing.T) {
	captureOutput(t)
	ctx := context.Background()

	tests := []struct {
		line string
		want string
	}{
		{"login", "login"},
		{"logout", "logout"},
		{"status", "status"},
		{"whoami", "status"},
		{"refresh", "refresh"},
		{"open /dashboard", "open /dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			stub := &stubExec{}
			require.True(t, dispatch(ctx, stub, tt.line))
			require.Equal(t, []string{tt.want}, stub.calls)
		})
	}
}

func TestDispatch_ExitTerminates(t *testing.T) {
	captureOutput(t)

	for _, line := range []string{"exit", "quit"} {
		stub := &stubExec{}
		require.False(t, dispatch(context.Background(), stub, line))
		require.Empty(t, stub.calls)
	}
}

func TestDispatch_EmptyLineContinues(t *testing.T) {
	captureOutput(t)
	stub := &stubExec{}

	require.True(t, dispatch(context.Background(), stub, "   "))
	require.Empty(t, stub.calls)
}

func TestDispatch_OpenWithoutPathPrintsUsage(t *testing.T) {
	lines := captureOutput(t)
	stub := &stubExec{}

	require.True(t, dispatch(context.Background(), stub, "open"))
	require.Empty(t, stub.calls)
	require.Contains(t, *lines, "Usage: open <path>")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	lines := captureOutput(t)
	stub := &stubExec{}

	require.True(t, dispatch(context.Background(), stub, "teleport"))
	require.Empty(t, stub.calls)
	require.Contains(t, *lines, "Unknown command: teleport")
}

func TestDispatch_HelpDependsOnLoginState(t *testing.T) {
	lines := captureOutput(t)

	require.True(t, dispatch(context.Background(), &stubExec{loggedIn: false}, "help"))
	require.Contains(t, (*lines)[len(*lines)-1], "login")

	require.True(t, dispatch(context.Background(), &stubExec{loggedIn: true}, "help"))
	require.Contains(t, (*lines)[len(*lines)-1], "logout")
}
