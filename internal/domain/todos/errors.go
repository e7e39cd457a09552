package todos

import "errors"

var (
	// ErrUnsupportedTx is returned by remote handlers running in a
	// transaction that is not backed by the sync database.
	ErrUnsupportedTx = errors.New("todos: transaction is not backed by a SQL database")

	ErrEmptyListID = errors.New("todos: list id is required")
	ErrEmptyID     = errors.New("todos: todo id is required")
	ErrEmptyText   = errors.New("todos: text is required")
)
