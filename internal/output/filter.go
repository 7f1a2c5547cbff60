package output

import (
	"fmt"

	"github.com/gobwas/glob"

	"task-api/internal/model"
)

// Filter narrows a task list on the client side.
type Filter struct {
	// Match is a glob such as "Deploy*" or "*{CI,CD}*", matched against titles.
	Match string
	// Completed, when set, keeps only tasks with that completion state.
	Completed *bool
}

func (f Filter) Apply(tasks []model.Task) ([]model.Task, error) {
	var g glob.Glob
	if f.Match != "" {
		var err error
		g, err = glob.Compile(f.Match)
		if err != nil {
			return nil, fmt.Errorf("invalid match pattern %q: %w", f.Match, err)
		}
	}

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		if g != nil && !g.Match(t.Title) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
