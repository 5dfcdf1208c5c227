// Package registry holds the owning, capacity-bounded animal collections:
// the homogeneous Enclosure and the heterogeneous Zoo.
package registry

import (
	"fmt"
	"io"
	"reflect"

	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/l1jgo/sanctuary/internal/core/event"
	"github.com/l1jgo/sanctuary/internal/core/slot"
	"go.uber.org/zap"
)

// Resident is what an enclosure can hold. *animal.Animal is the production
// resident; anything else with the same capability set works too.
type Resident interface {
	comparable
	Name() string
	Species() string
	FoodRequirement() float64
	MakeSound(w io.Writer)
	Eat(w io.Writer)
	Describe(w io.Writer)
	Release()
}

type member[T Resident] struct {
	ref   slot.Ref
	value T
}

// Enclosure is an ordered, capacity-bounded collection that owns its
// residents. Accessed from one goroutine at a time; no locks.
type Enclosure[T Resident] struct {
	name     string
	capacity int
	members  []member[T]
	slots    *slot.Pool
	admit    func(T) error
	log      *zap.Logger
}

// Option configures a registry at construction.
type Option func(*options)

type options struct {
	log *zap.Logger
	bus *event.Bus
}

// WithLogger sets the logger used for membership changes.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithBus makes a Zoo publish admission and release events. Enclosures
// ignore it.
func WithBus(bus *event.Bus) Option {
	return func(o *options) { o.bus = bus }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	return o
}

// NewEnclosure creates an empty enclosure that accepts any resident of
// type T. Capacity must be positive.
func NewEnclosure[T Resident](name string, capacity int, opts ...Option) (*Enclosure[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrInvalidArgument, capacity)
	}
	o := buildOptions(opts)
	return newEnclosure[T](name, capacity, o.log), nil
}

func newEnclosure[T Resident](name string, capacity int, log *zap.Logger) *Enclosure[T] {
	return &Enclosure[T]{
		name:     name,
		capacity: capacity,
		members:  make([]member[T], 0, capacity),
		slots:    slot.NewPool(capacity),
		log:      log,
	}
}

// NewKindEnclosure creates an enclosure for animals of a single kind;
// animals of any other kind are rejected with ErrKindMismatch.
func NewKindEnclosure(name string, kind animal.Kind, capacity int, opts ...Option) (*Enclosure[*animal.Animal], error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: kind %s", ErrInvalidArgument, kind)
	}
	e, err := NewEnclosure[*animal.Animal](name, capacity, opts...)
	if err != nil {
		return nil, err
	}
	e.admit = func(a *animal.Animal) error {
		if a.Kind() != kind {
			return fmt.Errorf("%w: %s enclosure cannot hold %s", ErrKindMismatch, kind, a.Kind())
		}
		return nil
	}
	e.log.Info("enclosure created",
		zap.String("enclosure", name),
		zap.Stringer("kind", kind),
		zap.Int("capacity", capacity))
	return e, nil
}

func (e *Enclosure[T]) Name() string  { return e.name }
func (e *Enclosure[T]) Capacity() int { return e.capacity }
func (e *Enclosure[T]) Count() int    { return len(e.members) }

// Add appends v and takes ownership of it. A full enclosure is checked
// before the resident itself.
func (e *Enclosure[T]) Add(v T) error {
	_, err := e.add(v)
	return err
}

func (e *Enclosure[T]) add(v T) (slot.Ref, error) {
	if len(e.members) >= e.capacity {
		return 0, fmt.Errorf("%w: %s holds at most %d", ErrCapacityExceeded, e.name, e.capacity)
	}
	if isNil(v) {
		return 0, fmt.Errorf("%w: cannot add nil animal", ErrInvalidArgument)
	}
	if r, ok := any(v).(interface{ Released() bool }); ok && r.Released() {
		return 0, fmt.Errorf("%w: %s was already released", ErrInvalidArgument, v.Name())
	}
	for _, m := range e.members {
		if m.value == v {
			return 0, fmt.Errorf("%w: %s is already in %s", ErrInvalidArgument, v.Name(), e.name)
		}
	}
	if e.admit != nil {
		if err := e.admit(v); err != nil {
			return 0, err
		}
	}
	ref := e.slots.Acquire()
	e.members = append(e.members, member[T]{ref: ref, value: v})
	e.log.Debug("resident added",
		zap.String("registry", e.name),
		zap.String("name", v.Name()),
		zap.Int("count", len(e.members)))
	return ref, nil
}

// Remove destroys the first resident named name and closes the gap,
// keeping the order of the others.
func (e *Enclosure[T]) Remove(name string) error {
	_, err := e.remove(name)
	return err
}

func (e *Enclosure[T]) remove(name string) (T, error) {
	i := e.indexOf(name)
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("%w: %s in %s", ErrNotFound, name, e.name)
	}
	m := e.members[i]
	e.members = append(e.members[:i], e.members[i+1:]...)
	e.slots.Release(m.ref)
	m.value.Release()
	e.log.Debug("resident removed",
		zap.String("registry", e.name),
		zap.String("name", name),
		zap.Int("count", len(e.members)))
	return m.value, nil
}

func (e *Enclosure[T]) indexOf(name string) int {
	for i, m := range e.members {
		if m.value.Name() == name {
			return i
		}
	}
	return -1
}

// Find returns the first resident named name. The enclosure keeps
// ownership; the result is valid until the resident is removed.
func (e *Enclosure[T]) Find(name string) (T, error) {
	i := e.indexOf(name)
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("%w: %s in %s", ErrNotFound, name, e.name)
	}
	return e.members[i].value, nil
}

// Residents returns the residents in insertion order. The slice is a copy;
// the residents are not.
func (e *Enclosure[T]) Residents() []T {
	out := make([]T, len(e.members))
	for i, m := range e.members {
		out[i] = m.value
	}
	return out
}

// ForEach calls fn on every resident in insertion order.
func (e *Enclosure[T]) ForEach(fn func(T)) {
	for _, m := range e.members {
		fn(m.value)
	}
}

// TotalFoodRequirement sums the daily food requirement of every resident.
func (e *Enclosure[T]) TotalFoodRequirement() float64 {
	total := 0.0
	for _, m := range e.members {
		total += m.value.FoodRequirement()
	}
	return total
}

func (e *Enclosure[T]) MakeAllSounds(w io.Writer) {
	fmt.Fprintf(w, "\n=== Animals in %s making sounds ===\n", e.name)
	e.ForEach(func(v T) { v.MakeSound(w) })
}

func (e *Enclosure[T]) FeedAll(w io.Writer) {
	fmt.Fprintf(w, "\n=== Feeding animals in %s ===\n", e.name)
	e.ForEach(func(v T) { v.Eat(w) })
}

// Display writes every resident's information sheet.
func (e *Enclosure[T]) Display(w io.Writer) {
	fmt.Fprintf(w, "\n=== %s ===\n", e.name)
	fmt.Fprintf(w, "Animals: %d/%d\n", len(e.members), e.capacity)
	if len(e.members) == 0 {
		fmt.Fprintln(w, "No animals in this enclosure.")
		return
	}
	for i, m := range e.members {
		fmt.Fprintf(w, "\n[%d] ", i+1)
		m.value.Describe(w)
	}
}

// Close destroys every remaining resident exactly once and invalidates
// all refs. The enclosure stays usable and empty.
func (e *Enclosure[T]) Close() {
	for _, m := range e.members {
		m.value.Release()
	}
	e.slots.ReleaseAll()
	e.members = e.members[:0]
}

// isNil reports whether v is nil or a nil pointer, map, slice, func or
// channel hidden behind T.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
