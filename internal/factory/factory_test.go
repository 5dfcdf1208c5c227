package factory

import (
	"testing"

	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/l1jgo/sanctuary/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMatchesKindCaseInsensitively(t *testing.T) {
	f := New(nil)

	a, err := f.Create("LION", "Leo", 5, 190)
	require.NoError(t, err)
	assert.Equal(t, "Lion", a.Species())
	assert.Equal(t, animal.KindLion, a.Kind())
	assert.Equal(t, "Leo", a.Name())
	assert.Equal(t, 5, a.Age())
	assert.Equal(t, 190.0, a.Weight())
	assert.Equal(t, "Golden", a.Traits().FurColor)
}

func TestCreateUnknownKind(t *testing.T) {
	f := New(nil)
	_, err := f.Create("dragon", "Smaug", 171, 20000)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCreateInvalidAttributes(t *testing.T) {
	f := New(nil)
	_, err := f.Create("eagle", "Thor", -1, 5)
	assert.ErrorIs(t, err, animal.ErrInvalidAttributes)
	assert.NotErrorIs(t, err, ErrUnknownKind)
}

func TestCreateAppliesSpeciesDefaults(t *testing.T) {
	f := New(nil)
	tests := []struct {
		kind  string
		label string
	}{
		{"lion", "Lion"},
		{"Elephant", "Elephant"},
		{"monkey", "Monkey (Capuchin)"},
		{"eagle", "Eagle"},
		{"penguin", "Penguin (Emperor)"},
		{"parrot", "Parrot"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			a, err := f.Create(tt.kind, "x", 1, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.label, a.Species())
		})
	}
}

func TestCreateDefault(t *testing.T) {
	f := New(nil)
	a, err := f.CreateDefault("penguin")
	require.NoError(t, err)
	assert.Equal(t, "Random_penguin", a.Name())
	assert.Equal(t, DefaultAge, a.Age())
	assert.Equal(t, DefaultWeight, a.Weight())

	_, err = f.CreateDefault("unicorn")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestCreateWithTraitsOverridesDefaults(t *testing.T) {
	f := New(nil)
	a, err := f.CreateWithTraits("eagle", "Thor", 3, 5, &animal.Traits{Golden: true, VisionRange: 3200})
	require.NoError(t, err)
	assert.Equal(t, "Golden Eagle", a.Species())
	assert.Equal(t, 3200.0, a.Traits().VisionRange)
	assert.Empty(t, a.Traits().BeakType)
}

func TestPopulate(t *testing.T) {
	f := New(data.DefaultSpeciesTable())
	animals, err := f.Populate([]data.RosterEntry{
		{Kind: "lion", Name: "Simba", Age: 5, Weight: 190},
		{Kind: "parrot", Name: "Polly", Age: 5, Weight: 1.2},
	})
	require.NoError(t, err)
	require.Len(t, animals, 2)
	assert.Equal(t, "Polly", animals[1].Name())

	_, err = f.Populate([]data.RosterEntry{
		{Kind: "lion", Name: "Simba", Age: 5, Weight: 190},
		{Kind: "griffin", Name: "Buckbeak", Age: 5, Weight: 300},
	})
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.ErrorContains(t, err, "roster entry 1")
}

func TestKinds(t *testing.T) {
	assert.Equal(t, animal.Kinds(), New(nil).Kinds())
}
