package console

import (
	"strings"
	"testing"
)

func runSession(lines ...string) string {
	var out strings.Builder
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	Run(in, &out)
	return out.String()
}

func TestApp_FullSession(t *testing.T) {
	output := runSession(
		"add",
		"Write tests",
		"cover the whole app",
		"list",
		"complete 1",
		"list completed",
		"delete 1",
		"y",
		"list",
		"exit",
	)

	for _, want := range []string{
		"WELCOME TO TODO CLI",
		"Task 1 created successfully",
		"1 task total, 1 pending, 0 completed",
		"Task 1 marked as complete",
		"Write tests",
		"Delete task 1: 'Write tests'? (y/n): ",
		"Task 1 deleted successfully",
		"No tasks found. Add your first task with: add <title>",
		"Goodbye! Thanks for using Todo CLI.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in session output:\n%s", want, output)
		}
	}
}

func TestApp_UnknownCommand(t *testing.T) {
	output := runSession("frobnicate", "exit")

	if !strings.Contains(output, "Unknown command: 'frobnicate'. Type 'help' for commands") {
		t.Errorf("expected the unknown-command message, got:\n%s", output)
	}
	if !strings.Contains(output, "Goodbye! Thanks for using Todo CLI.") {
		t.Error("expected the session to continue to exit")
	}
}

func TestApp_BlankLinesIgnored(t *testing.T) {
	output := runSession("", "   ", "exit")

	if strings.Contains(output, "Unknown command") {
		t.Errorf("blank lines must not dispatch, got:\n%s", output)
	}
}

func TestApp_EOFEndsSession(t *testing.T) {
	var out strings.Builder
	Run(strings.NewReader(""), &out)

	if !strings.Contains(out.String(), "Goodbye!") {
		t.Errorf("expected a goodbye on EOF, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Thanks for using Todo CLI") {
		t.Error("EOF uses the short goodbye, not the exit message")
	}
}

func TestApp_HelpFromREPL(t *testing.T) {
	output := runSession("help", "help add", "exit")

	if !strings.Contains(output, "Available commands:") {
		t.Errorf("expected the command overview, got:\n%s", output)
	}
	if !strings.Contains(output, "Create a new task with interactive prompts") {
		t.Errorf("expected detailed add help, got:\n%s", output)
	}
}

func TestApp_CommandArgumentsPassThrough(t *testing.T) {
	output := runSession(
		"add",
		"First",
		"",
		"complete 1",
		"list pending",
		"exit",
	)

	if !strings.Contains(output, "No tasks found") {
		t.Errorf("expected the pending filter applied, got:\n%s", output)
	}
}
