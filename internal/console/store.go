package console

import (
	"sort"
	"time"
)

// Store keeps tasks in memory keyed by id. IDs start at 1 and are
// never reused, so a deleted task's id stays dead. All timestamps are
// UTC.
type Store struct {
	tasks  map[int]*Task
	nextID int
}

func NewStore() *Store {
	return &Store{
		tasks:  make(map[int]*Task),
		nextID: 1,
	}
}

// Add creates a task with the next free id. Validation happens in the
// command layer; the store trusts its input.
func (s *Store) Add(title, description string) *Task {
	now := time.Now().UTC()
	task := &Task{
		ID:          s.nextID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[task.ID] = task
	s.nextID++
	return task
}

func (s *Store) Get(id int) (*Task, bool) {
	task, ok := s.tasks[id]
	return task, ok
}

// List returns tasks ordered by id. status filters to "pending" or
// "completed"; anything else returns everything.
func (s *Store) List(status string) []*Task {
	tasks := make([]*Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		switch status {
		case "pending":
			if task.Completed {
				continue
			}
		case "completed":
			if !task.Completed {
				continue
			}
		}
		tasks = append(tasks, task)
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func (s *Store) Update(id int, title, description string) (*Task, bool) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}

	task.Title = title
	task.Description = description
	task.UpdatedAt = time.Now().UTC()
	return task, true
}

func (s *Store) Delete(id int) bool {
	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// ToggleComplete flips the completion flag and returns the task in its
// new state.
func (s *Store) ToggleComplete(id int) (*Task, bool) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}

	task.Completed = !task.Completed
	task.UpdatedAt = time.Now().UTC()
	return task, true
}

// Count reports totals for the list summary line.
func (s *Store) Count() (total, pending, completed int) {
	total = len(s.tasks)
	for _, task := range s.tasks {
		if task.Completed {
			completed++
		}
	}
	pending = total - completed
	return total, pending, completed
}
