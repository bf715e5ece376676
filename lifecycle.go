package vector

// Lifecycle describes how elements of type T are created, relocated and
// finalized. Vector is the only caller; slots handed to the construct
// methods are uninitialized and must be fully written on success.
//
// A construct method that returns an error must leave the slot without a
// live element. Destroy must not fail, and must accept moved-from elements.
type Lifecycle[T any] interface {
	// Default value-constructs an element in slot.
	Default(slot *T) error
	// Move constructs slot from src. src stays live in a moved-from state.
	Move(slot, src *T) error
	// MoveAssign replaces the live element dst with the contents of src.
	MoveAssign(dst, src *T) error
	// Destroy ends the lifetime of the live element in slot.
	Destroy(slot *T)
}

// Copier is implemented by lifecycles whose elements can be duplicated.
type Copier[T any] interface {
	// Copy constructs slot as a copy of src. src is not modified.
	Copy(slot, src *T) error
	// CopyAssign replaces the live element dst with a copy of src.
	CopyAssign(dst, src *T) error
}

// NoFailMover marks lifecycles whose Move never returns an error. Vector
// relocates such elements by moving even when they are also copyable.
type NoFailMover interface {
	MoveNeverFails()
}

// Plain is the lifecycle of ordinary Go values: the zero value is the
// default, copying and moving are assignment, and nothing needs finalizing.
type Plain[T any] struct{}

var (
	_ Lifecycle[int] = Plain[int]{}
	_ Copier[int]    = Plain[int]{}
	_ NoFailMover    = Plain[int]{}
)

func (Plain[T]) Default(slot *T) error {
	var zero T
	*slot = zero
	return nil
}

func (Plain[T]) Move(slot, src *T) error {
	*slot = *src
	return nil
}

func (Plain[T]) MoveAssign(dst, src *T) error {
	*dst = *src
	return nil
}

func (Plain[T]) Destroy(*T) {}

func (Plain[T]) Copy(slot, src *T) error {
	*slot = *src
	return nil
}

func (Plain[T]) CopyAssign(dst, src *T) error {
	*dst = *src
	return nil
}

func (Plain[T]) MoveNeverFails() {}

// relocation is the element transfer policy of a lifecycle type.
type relocation[T any] struct {
	copier Copier[T]
	move   bool
}

// relocationOf decides once per vector how life's elements are carried into
// new storage: by moving when a move cannot fail or copying is impossible,
// by copying otherwise, so a failed copy leaves the source untouched.
func relocationOf[T any, L Lifecycle[T]](life L) relocation[T] {
	c, copyable := any(life).(Copier[T])
	_, noFail := any(life).(NoFailMover)
	return relocation[T]{copier: c, move: noFail || !copyable}
}
