package console

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const msgNotFound = "Error: Task not found. Use 'list' to see available tasks"

// InputFunc reads one line of user input. It returns an error when the
// input stream is closed.
type InputFunc func() (string, error)

// PrintFunc writes prompt text without a trailing newline.
type PrintFunc func(string)

// Result is the outcome of one command, rendered by the REPL.
type Result struct {
	Success bool
	Message string
}

// Command is one console action.
type Command interface {
	Name() string
	Description() string
	Execute(args ...string) Result
	Help() string
}

func validateTitle(title string) Result {
	if strings.TrimSpace(title) == "" {
		return Result{Message: "Error: Title is required. Usage: add <title> [description]"}
	}
	if utf8.RuneCountInString(title) > 200 {
		return Result{Message: "Error: Title must be 1-200 characters"}
	}
	return Result{Success: true, Message: "Valid"}
}

func validateDescription(description string) Result {
	if utf8.RuneCountInString(description) > 1000 {
		return Result{Message: "Error: Description must be 0-1000 characters"}
	}
	return Result{Success: true, Message: "Valid"}
}

func parseID(raw string) (int, Result) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, Result{Message: "Error: Invalid task ID. ID must be a positive number"}
	}
	return id, Result{Success: true, Message: "Valid"}
}

// AddCommand creates a task through interactive title and description
// prompts.
type AddCommand struct {
	store *Store
	input InputFunc
	print PrintFunc
}

func NewAddCommand(store *Store, input InputFunc, print PrintFunc) *AddCommand {
	return &AddCommand{store: store, input: input, print: print}
}

func (c *AddCommand) Name() string        { return "add" }
func (c *AddCommand) Description() string { return "Create a new task" }

func (c *AddCommand) Execute(args ...string) Result {
	c.print("Enter task title: ")
	title, err := c.input()
	if err != nil {
		return Result{Message: "Task creation cancelled"}
	}
	title = strings.TrimSpace(title)

	if res := validateTitle(title); !res.Success {
		return res
	}

	c.print("Enter task description (optional, press Enter to skip): ")
	description, err := c.input()
	if err != nil {
		description = ""
	}
	description = strings.TrimSpace(description)

	if res := validateDescription(description); !res.Success {
		return res
	}

	task := c.store.Add(title, description)
	return Result{Success: true, Message: fmt.Sprintf("Task %d created successfully", task.ID)}
}

func (c *AddCommand) Help() string {
	return `add

Create a new task with interactive prompts for title and description.

Usage:
  Type 'add' and press Enter
  Enter the task title when prompted
  Enter an optional description or press Enter to skip

Example session:
  > add
  Enter task title: Buy groceries
  Enter task description (optional, press Enter to skip): Milk, eggs, bread
  Task 1 created successfully
`
}

// ListCommand shows tasks with an optional status filter.
type ListCommand struct {
	store *Store
}

func NewListCommand(store *Store) *ListCommand {
	return &ListCommand{store: store}
}

func (c *ListCommand) Name() string        { return "list" }
func (c *ListCommand) Description() string { return "Show tasks (all/pending/completed)" }

func (c *ListCommand) Execute(args ...string) Result {
	status := ""
	if len(args) > 0 {
		status = args[0]
	}

	switch status {
	case "", "all", "pending", "completed":
	default:
		return Result{Message: "Error: Invalid status. Use 'all', 'pending', or 'completed'"}
	}
	if status == "all" {
		status = ""
	}

	tasks := c.store.List(status)
	if len(tasks) == 0 {
		return Result{Success: true, Message: "No tasks found. Add your first task with: add <title>"}
	}

	lines := []string{"ID  Status  Title                                     Description"}
	for _, task := range tasks {
		lines = append(lines, task.DisplayRow())
	}

	total, pending, completed := c.store.Count()
	word := "tasks"
	if total == 1 {
		word = "task"
	}
	lines = append(lines, "", fmt.Sprintf("%d %s total, %d pending, %d completed", total, word, pending, completed))

	return Result{Success: true, Message: strings.Join(lines, "\n")}
}

func (c *ListCommand) Help() string {
	return `list [status]

Show tasks with optional status filter.

Arguments:
  status - Filter by "all" (default), "pending", or "completed"

Examples:
  list
  list pending
  list completed
`
}

// UpdateCommand modifies a task's title and description through
// interactive prompts. Pressing Enter keeps the current value.
type UpdateCommand struct {
	store *Store
	input InputFunc
	print PrintFunc
}

func NewUpdateCommand(store *Store, input InputFunc, print PrintFunc) *UpdateCommand {
	return &UpdateCommand{store: store, input: input, print: print}
}

func (c *UpdateCommand) Name() string        { return "update" }
func (c *UpdateCommand) Description() string { return "Modify a task" }

func (c *UpdateCommand) Execute(args ...string) Result {
	if len(args) < 1 {
		return Result{Message: "Error: Task ID is required. Usage: update <id>"}
	}

	id, res := parseID(args[0])
	if !res.Success {
		return res
	}

	task, ok := c.store.Get(id)
	if !ok {
		return Result{Message: msgNotFound}
	}

	c.print(fmt.Sprintf("Current task: %s\n", task.Title))
	if task.Description != "" {
		c.print(fmt.Sprintf("Current description: %s\n", task.Description))
	}

	c.print("Enter new title (or press Enter to keep current): ")
	newTitle, err := c.input()
	if err != nil {
		return Result{Message: "Update cancelled"}
	}
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		newTitle = task.Title
	}

	if res := validateTitle(newTitle); !res.Success {
		return res
	}

	c.print("Enter new description (or press Enter to keep current): ")
	newDescription, err := c.input()
	if err != nil {
		newDescription = task.Description
	} else {
		newDescription = strings.TrimSpace(newDescription)
		if newDescription == "" {
			newDescription = task.Description
		}
	}

	if res := validateDescription(newDescription); !res.Success {
		return res
	}

	if _, ok := c.store.Update(id, newTitle, newDescription); !ok {
		return Result{Message: msgNotFound}
	}
	return Result{Success: true, Message: fmt.Sprintf("Task %d updated successfully", id)}
}

func (c *UpdateCommand) Help() string {
	return `update <id>

Modify a task's title and/or description with interactive prompts.

Usage:
  Type 'update <id>' and press Enter
  Enter a new title or press Enter to keep the current one
  Enter a new description or press Enter to keep the current one

Arguments:
  id - Task ID to update

Example session:
  > update 1
  Current task: Buy groceries
  Current description: Milk, eggs
  Enter new title (or press Enter to keep current): Buy groceries for the week
  Enter new description (or press Enter to keep current): Milk, eggs, bread, butter
  Task 1 updated successfully
`
}

// DeleteCommand removes a task after a y/n confirmation.
type DeleteCommand struct {
	store *Store
	input InputFunc
	print PrintFunc
}

func NewDeleteCommand(store *Store, input InputFunc, print PrintFunc) *DeleteCommand {
	return &DeleteCommand{store: store, input: input, print: print}
}

func (c *DeleteCommand) Name() string        { return "delete" }
func (c *DeleteCommand) Description() string { return "Remove a task (with confirmation)" }

func (c *DeleteCommand) Execute(args ...string) Result {
	if len(args) < 1 {
		return Result{Message: "Error: Task ID is required. Usage: delete <id>"}
	}

	id, res := parseID(args[0])
	if !res.Success {
		return res
	}

	task, ok := c.store.Get(id)
	if !ok {
		return Result{Message: msgNotFound}
	}

	c.print(fmt.Sprintf("Delete task %d: '%s'? (y/n): ", id, task.Title))
	response, err := c.input()
	if err != nil {
		return Result{Message: "Deletion cancelled"}
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		c.store.Delete(id)
		return Result{Success: true, Message: fmt.Sprintf("Task %d deleted successfully", id)}
	default:
		return Result{Message: "Deletion cancelled"}
	}
}

func (c *DeleteCommand) Help() string {
	return `delete <id>

Remove a task after confirmation.

Arguments:
  id - Task ID to delete

Examples:
  delete 1
  # Prompts: Delete task 1: 'Buy groceries'? (y/n):
`
}

// CompleteCommand toggles a task between pending and complete.
type CompleteCommand struct {
	store *Store
}

func NewCompleteCommand(store *Store) *CompleteCommand {
	return &CompleteCommand{store: store}
}

func (c *CompleteCommand) Name() string        { return "complete" }
func (c *CompleteCommand) Description() string { return "Toggle completion status" }

func (c *CompleteCommand) Execute(args ...string) Result {
	if len(args) < 1 {
		return Result{Message: "Error: Task ID is required. Usage: complete <id>"}
	}

	id, res := parseID(args[0])
	if !res.Success {
		return res
	}

	task, ok := c.store.ToggleComplete(id)
	if !ok {
		return Result{Message: msgNotFound}
	}

	state := "pending"
	if task.Completed {
		state = "complete"
	}
	return Result{Success: true, Message: fmt.Sprintf("Task %d marked as %s", id, state)}
}

func (c *CompleteCommand) Help() string {
	return `complete <id>

Toggle a task's completion status.

If pending, marks as complete. If complete, marks as pending.

Arguments:
  id - Task ID to toggle

Examples:
  complete 1
  # Task 1 marked as complete
  complete 1
  # Task 1 marked as pending
`
}

// HelpCommand lists commands or shows detailed help for one of them.
type HelpCommand struct {
	commands map[string]Command
}

func NewHelpCommand(commands map[string]Command) *HelpCommand {
	return &HelpCommand{commands: commands}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Show help information" }

func (c *HelpCommand) Execute(args ...string) Result {
	if len(args) > 0 {
		name := args[0]
		cmd, ok := c.commands[name]
		if !ok {
			return Result{Message: fmt.Sprintf("Unknown command: '%s'. Type 'help' for commands", name)}
		}
		return Result{Success: true, Message: cmd.Help()}
	}

	lines := []string{
		"Available commands:",
		"  add                        - Create a new task (interactive)",
		"  list [status]              - Show tasks (all/pending/done)",
		"  update <id>                - Modify a task (interactive)",
		"  delete <id>                - Remove a task (with confirmation)",
		"  complete <id>              - Toggle completion status",
		"  help [command]             - Show help information",
		"  exit                       - Exit the application",
	}
	return Result{Success: true, Message: strings.Join(lines, "\n")}
}

func (c *HelpCommand) Help() string {
	return `help [command]

Show help information.

Without arguments, lists all available commands.
With a command name, shows detailed help for that command.

Examples:
  help
  help add
  help list
`
}
