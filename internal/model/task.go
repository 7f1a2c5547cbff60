package model

type Task struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskCreate is the body of a create request. Title is required;
// Completed defaults to false when absent.
type TaskCreate struct {
	Title     Optional[string] `json:"title,omitzero"`
	Completed Optional[bool]   `json:"completed,omitzero"`
}

// TaskUpdate carries the fields a client wants to overwrite.
// Absent and null fields leave the stored value unchanged.
type TaskUpdate struct {
	Title     Optional[string] `json:"title,omitzero"`
	Completed Optional[bool]   `json:"completed,omitzero"`
}

func (u TaskUpdate) Apply(t *Task) {
	if title, ok := u.Title.Get(); ok {
		t.Title = title
	}
	if completed, ok := u.Completed.Get(); ok {
		t.Completed = completed
	}
}
