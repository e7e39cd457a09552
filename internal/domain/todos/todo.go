// Package todos is a sync domain whose source of truth is the todos table
// of the sync database. Its mutations commit in the same transaction as
// the mutation bookkeeping of a push.
package todos

import "time"

// Query and mutation names registered by [Domain.Register].
const (
	QueryListTodos     = "listTodos"
	MutationCreateTodo = "createTodo"
	MutationUpdateTodo = "updateTodo"
	MutationDeleteTodo = "deleteTodo"
)

const keyPrefix = "todo/"

// Todo is the value synchronized for every todo item.
type Todo struct {
	ID        string    `json:"id"`
	ListID    string    `json:"listID"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	SortOrder int64     `json:"sortOrder"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// record is a row of the todos table.
type record struct {
	Todo
	Version int64
	Deleted bool
}

// Key returns the replica key of a todo: "todo/<listID>/<id>".
func Key(listID, id string) string {
	return keyPrefix + listID + "/" + id
}

// ListPrefix returns the key prefix shared by every todo of a list.
func ListPrefix(listID string) string {
	return keyPrefix + listID + "/"
}

// ListTodosParams selects the list a client is looking at.
type ListTodosParams struct {
	ListID string `json:"listID"`
}

// CreateTodoArgs creates a todo. The id is generated by the client so that
// the optimistic local write and the server write agree on the key.
type CreateTodoArgs struct {
	ID        string `json:"id"`
	ListID    string `json:"listID"`
	Text      string `json:"text"`
	SortOrder int64  `json:"sortOrder"`
}

// UpdateTodoArgs changes the fields that are set.
type UpdateTodoArgs struct {
	ID        string  `json:"id"`
	ListID    string  `json:"listID"`
	Text      *string `json:"text,omitempty"`
	Done      *bool   `json:"done,omitempty"`
	SortOrder *int64  `json:"sortOrder,omitempty"`
}

func (a UpdateTodoArgs) empty() bool {
	return a.Text == nil && a.Done == nil && a.SortOrder == nil
}

func (a UpdateTodoArgs) apply(t *Todo) {
	if a.Text != nil {
		t.Text = *a.Text
	}
	if a.Done != nil {
		t.Done = *a.Done
	}
	if a.SortOrder != nil {
		t.SortOrder = *a.SortOrder
	}
}

// DeleteTodoArgs deletes a todo.
type DeleteTodoArgs struct {
	ID     string `json:"id"`
	ListID string `json:"listID"`
}
