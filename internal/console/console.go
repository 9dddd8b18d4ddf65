package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// App is the interactive single-user to-do console. All commands share
// one in-memory store; nothing is persisted between runs.
type App struct {
	commands map[string]Command
	scanner  *bufio.Scanner
	out      io.Writer
}

// NewApp wires the command set over store. The streams are injectable
// so tests can script a full session.
func NewApp(store *Store, in io.Reader, out io.Writer) *App {
	scanner := bufio.NewScanner(in)

	input := func() (string, error) {
		if scanner.Scan() {
			return scanner.Text(), nil
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	print := func(text string) {
		fmt.Fprint(out, text)
	}

	commands := map[string]Command{}
	for _, cmd := range []Command{
		NewAddCommand(store, input, print),
		NewListCommand(store),
		NewUpdateCommand(store, input, print),
		NewDeleteCommand(store, input, print),
		NewCompleteCommand(store),
	} {
		commands[cmd.Name()] = cmd
	}
	commands["help"] = NewHelpCommand(commands)

	return &App{commands: commands, scanner: scanner, out: out}
}

// Run drives the read-dispatch loop until exit or EOF.
func (a *App) Run() {
	a.banner()

	for {
		fmt.Fprint(a.out, "> ")
		if !a.scanner.Scan() {
			fmt.Fprintln(a.out, "Goodbye!")
			return
		}

		fields := strings.Fields(a.scanner.Text())
		if len(fields) == 0 {
			continue
		}

		name, args := fields[0], fields[1:]
		if name == "exit" {
			fmt.Fprintln(a.out, "Goodbye! Thanks for using Todo CLI.")
			return
		}

		cmd, ok := a.commands[name]
		if !ok {
			fmt.Fprintf(a.out, "Unknown command: '%s'. Type 'help' for commands\n", name)
			continue
		}

		res := cmd.Execute(args...)
		fmt.Fprintln(a.out, res.Message)
	}
}

func (a *App) banner() {
	line := strings.Repeat("=", 50)
	fmt.Fprintln(a.out, line)
	fmt.Fprintln(a.out, "       WELCOME TO TODO CLI")
	fmt.Fprintln(a.out, "    Single-user, in-memory to-do list")
	fmt.Fprintln(a.out, line)
	fmt.Fprintln(a.out, "Type 'help' for commands, 'exit' to quit.")
	fmt.Fprintln(a.out)
}

// Run starts a fresh console session on the given streams.
func Run(in io.Reader, out io.Writer) {
	NewApp(NewStore(), in, out).Run()
}
