package registry

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResident struct {
	name     string
	food     float64
	released int
}

func (f *fakeResident) Name() string             { return f.name }
func (f *fakeResident) Species() string          { return "Fake" }
func (f *fakeResident) FoodRequirement() float64 { return f.food }
func (f *fakeResident) MakeSound(w io.Writer)    { fmt.Fprintf(w, "%s beeps\n", f.name) }
func (f *fakeResident) Eat(w io.Writer)          { fmt.Fprintf(w, "%s eats\n", f.name) }
func (f *fakeResident) Describe(w io.Writer)     { fmt.Fprintf(w, "fake %s\n", f.name) }
func (f *fakeResident) Release()                 { f.released++ }

func newAnimal(t *testing.T, kind animal.Kind, name string, weight float64) *animal.Animal {
	t.Helper()
	a, err := animal.New(kind, name, 4, weight, animal.Traits{Variety: "Emperor"})
	require.NoError(t, err)
	return a
}

func TestNewEnclosureRejectsNonPositiveCapacity(t *testing.T) {
	for _, c := range []int{0, -3} {
		_, err := NewEnclosure[*fakeResident]("pen", c)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestEnclosureCapacity(t *testing.T) {
	e, err := NewEnclosure[*fakeResident]("pen", 2)
	require.NoError(t, err)

	require.NoError(t, e.Add(&fakeResident{name: "a"}))
	require.NoError(t, e.Add(&fakeResident{name: "b"}))
	err = e.Add(&fakeResident{name: "c"})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 2, e.Count())
	assert.Equal(t, []string{"a", "b"}, names(e.Residents()))
}

func TestEnclosureRejectsNilAndDuplicates(t *testing.T) {
	e, err := NewEnclosure[*fakeResident]("pen", 3)
	require.NoError(t, err)

	assert.ErrorIs(t, e.Add(nil), ErrInvalidArgument)

	r := &fakeResident{name: "a"}
	require.NoError(t, e.Add(r))
	assert.ErrorIs(t, e.Add(r), ErrInvalidArgument)
	assert.Equal(t, 1, e.Count())

	// same name, different resident: names are not unique
	require.NoError(t, e.Add(&fakeResident{name: "a"}))
	assert.Equal(t, 2, e.Count())
}

func TestEnclosureRemoveKeepsOrderAndReleases(t *testing.T) {
	e, err := NewEnclosure[*fakeResident]("pen", 4)
	require.NoError(t, err)
	a, b, c := &fakeResident{name: "a"}, &fakeResident{name: "b"}, &fakeResident{name: "c"}
	for _, r := range []*fakeResident{a, b, c} {
		require.NoError(t, e.Add(r))
	}

	require.NoError(t, e.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, names(e.Residents()))
	assert.Equal(t, 1, b.released)

	err = e.Remove("b")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, e.Count())
}

func TestEnclosureFind(t *testing.T) {
	e, err := NewEnclosure[*fakeResident]("pen", 2)
	require.NoError(t, err)
	simba := &fakeResident{name: "Simba"}
	require.NoError(t, e.Add(simba))

	got, err := e.Find("Simba")
	require.NoError(t, err)
	assert.Same(t, simba, got)

	_, err = e.Find("Mufasa")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnclosureTotalsAndOutput(t *testing.T) {
	e, err := NewEnclosure[*fakeResident]("Savannah", 3)
	require.NoError(t, err)
	require.NoError(t, e.Add(&fakeResident{name: "a", food: 1.5}))
	require.NoError(t, e.Add(&fakeResident{name: "b", food: 2.25}))
	assert.InDelta(t, 3.75, e.TotalFoodRequirement(), 1e-9)

	var buf bytes.Buffer
	e.MakeAllSounds(&buf)
	e.FeedAll(&buf)
	e.Display(&buf)
	out := buf.String()
	assert.Contains(t, out, "=== Animals in Savannah making sounds ===\na beeps\nb beeps\n")
	assert.Contains(t, out, "=== Feeding animals in Savannah ===\na eats\nb eats\n")
	assert.Contains(t, out, "Animals: 2/3")
	assert.Contains(t, out, "[2] fake b")
}

func TestEnclosureDisplayEmpty(t *testing.T) {
	e, err := NewEnclosure[*fakeResident]("Empty", 1)
	require.NoError(t, err)
	var buf bytes.Buffer
	e.Display(&buf)
	assert.Contains(t, buf.String(), "No animals in this enclosure.")
}

func TestEnclosureCloseReleasesEveryResidentOnce(t *testing.T) {
	e, err := NewEnclosure[*fakeResident]("pen", 3)
	require.NoError(t, err)
	a, b := &fakeResident{name: "a"}, &fakeResident{name: "b"}
	require.NoError(t, e.Add(a))
	require.NoError(t, e.Add(b))
	require.NoError(t, e.Remove("a"))

	e.Close()
	assert.Equal(t, 1, a.released)
	assert.Equal(t, 1, b.released)
	assert.Zero(t, e.Count())

	// still usable afterwards
	require.NoError(t, e.Add(&fakeResident{name: "c"}))
	assert.Equal(t, 1, e.Count())
}

func TestKindEnclosure(t *testing.T) {
	e, err := NewKindEnclosure("Lion Pride", animal.KindLion, 2)
	require.NoError(t, err)

	require.NoError(t, e.Add(newAnimal(t, animal.KindLion, "Simba", 190)))
	err = e.Add(newAnimal(t, animal.KindElephant, "Dumbo", 5000))
	assert.ErrorIs(t, err, ErrKindMismatch)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, e.Count())

	_, err = NewKindEnclosure("nowhere", animal.KindUnknown, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEnclosureRejectsReleasedAnimal(t *testing.T) {
	e, err := NewKindEnclosure("Penguin Pool", animal.KindPenguin, 2)
	require.NoError(t, err)
	p := newAnimal(t, animal.KindPenguin, "Pingu", 23)
	require.NoError(t, e.Add(p))
	require.NoError(t, e.Remove("Pingu"))
	assert.True(t, p.Released())

	assert.ErrorIs(t, e.Add(p), ErrInvalidArgument)
}

func TestCapacityCheckedBeforeResident(t *testing.T) {
	e, err := NewEnclosure[*fakeResident]("pen", 1)
	require.NoError(t, err)
	require.NoError(t, e.Add(&fakeResident{name: "a"}))
	assert.ErrorIs(t, e.Add(nil), ErrCapacityExceeded)
}

func names[T Resident](rs []T) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name()
	}
	return out
}
