package task

import "task-api/internal/model"

// ValidateCreate resolves a create request into the stored fields.
// Any string is an acceptable title, including the empty one.
func ValidateCreate(in model.TaskCreate) (title string, completed bool, err error) {
	title, ok := in.Title.Get()
	if !ok {
		return "", false, ErrTitleRequired
	}
	if in.Completed.Set && in.Completed.Null {
		return "", false, ErrCompletedNotBool
	}
	completed, _ = in.Completed.Get()
	return title, completed, nil
}
