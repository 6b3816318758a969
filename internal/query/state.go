package query

import "time"

// Status is the lifecycle of one query.
type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "pending"
	}
}

// State is the observable result of a query.
type State[T any] struct {
	Status    Status
	Data      T
	Err       error
	Key       Key
	FetchedAt time.Time
}

func (s State[T]) IsLoading() bool { return s.Status == StatusPending }
func (s State[T]) IsError() bool   { return s.Status == StatusError }
func (s State[T]) HasData() bool   { return s.Status == StatusSuccess }
