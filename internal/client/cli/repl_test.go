package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls   []string
	args    []string
	prompts int
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) prompt()          { f.prompts++ }
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) Progress(ctx context.Context) error {
	f.calls = append(f.calls, "progress")
	return nil
}
func (f *fakeExec) Solved(ctx context.Context, topicID string) error {
	f.calls = append(f.calls, "solved")
	f.args = append(f.args, topicID)
	return nil
}
func (f *fakeExec) Done(ctx context.Context, topicID string) error {
	f.calls = append(f.calls, "done")
	f.args = append(f.args, topicID)
	return nil
}
func (f *fakeExec) Refresh(ctx context.Context) error {
	f.calls = append(f.calls, "refresh")
	return nil
}
func (f *fakeExec) ToggleMode(ctx context.Context) error {
	f.calls = append(f.calls, "mode")
	return nil
}

func silence(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silence(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"status",
		"progress",
		"solved t1",
		"done t2",
		"refresh",
		"mode",
		"register",
		"logout",
		"foobar",
		"exit",
		"login",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	runREPL(context.Background(), exec, bufio.NewReader(input))

	want := []string{"login", "status", "progress", "solved", "done", "refresh", "mode", "signup", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	if strings.Join(exec.args, ",") != "t1,t2" {
		t.Fatalf("args mismatch: %v", exec.args)
	}
	if exec.prompts != 13 {
		t.Fatalf("expected a prompt per line read, got %d", exec.prompts)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	lines := silence(t)

	input := strings.NewReader("solved\ndone\nquit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, bufio.NewReader(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	want := []string{"Usage: solved <topic>", "Usage: done <topic>", "Bye!"}
	if strings.Join(*lines, "|") != strings.Join(want, "|") {
		t.Fatalf("output mismatch: %v", *lines)
	}
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := silence(t)

	runREPL(context.Background(), &fakeExec{}, bufio.NewReader(strings.NewReader("help\n")))
	runREPL(context.Background(), &fakeExec{loggedIn: true}, bufio.NewReader(strings.NewReader("help\n")))

	if len(*lines) != 2 {
		t.Fatalf("expected two help lines, got %v", *lines)
	}
	if !strings.Contains((*lines)[0], "signup") || strings.Contains((*lines)[0], "logout") {
		t.Fatalf("guest help wrong: %q", (*lines)[0])
	}
	if !strings.Contains((*lines)[1], "logout") {
		t.Fatalf("user help wrong: %q", (*lines)[1])
	}
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	silence(t)
	exec := &fakeExec{}
	runREPL(context.Background(), exec, bufio.NewReader(strings.NewReader("")))
	if exec.prompts != 1 || len(exec.calls) != 0 {
		t.Fatalf("unexpected state: prompts=%d calls=%v", exec.prompts, exec.calls)
	}
}
