package nullable

type state byte

const (
	absent state = iota
	null
	present
)

// Value is a tri-state field: absent, explicitly null, or holding a value.
// The zero Value is absent.
type Value[T any] struct {
	v     T
	state state
}

func NewAbsent[T any]() Value[T] {
	return Value[T]{}
}

func NewNull[T any]() Value[T] {
	return Value[T]{state: null}
}

func New[T any](v T) Value[T] {
	return Value[T]{v: v, state: present}
}

func (a Value[T]) Absent() bool {
	return a.state == absent
}

func (a Value[T]) Null() bool {
	return a.state == null
}

func (a Value[T]) Present() bool {
	return a.state == present
}

// Get returns the value and true only when the value is present.
func (a Value[T]) Get() (T, bool) {
	return a.v, a.state == present
}

// Value returns the held value or the zero value of T.
func (a Value[T]) Value() T {
	return a.v
}
