package tui

import (
	"strings"

	"github.com/Makepad-fr/kanban/internal/model"
)

// Visibility reports, per text, whether it contains query ignoring case.
// An empty query shows everything.
func Visibility(texts []string, query string) []bool {
	q := strings.ToLower(query)
	out := make([]bool, len(texts))
	for i, t := range texts {
		out[i] = strings.Contains(strings.ToLower(t), q)
	}
	return out
}

// DisplayOrder returns tasks newest first. Lanes are stored oldest first;
// the board shows the latest addition on top.
func DisplayOrder(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[len(tasks)-1-i] = t
	}
	return out
}

// filterTasks keeps the tasks whose text matches query, preserving order.
func filterTasks(tasks []model.Task, query string) []model.Task {
	texts := make([]string, len(tasks))
	for i, t := range tasks {
		texts[i] = t.Text
	}
	vis := Visibility(texts, query)
	out := make([]model.Task, 0, len(tasks))
	for i, t := range tasks {
		if vis[i] {
			out = append(out, t)
		}
	}
	return out
}
