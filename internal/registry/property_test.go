package registry

import (
	"fmt"
	"testing"

	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawAnimal(t *rapid.T, label string) *animal.Animal {
	kinds := animal.Kinds()
	k := kinds[rapid.IntRange(0, len(kinds)-1).Draw(t, label+"_kind")]
	name := rapid.StringMatching(`[A-Z][a-z]{0,7}`).Draw(t, label+"_name")
	age := rapid.IntRange(0, 60).Draw(t, label+"_age")
	weight := rapid.Float64Range(0.1, 6000).Draw(t, label+"_weight")
	a, err := animal.New(k, name, age, weight, animal.Traits{})
	if err != nil {
		t.Fatalf("new animal: %v", err)
	}
	return a
}

func TestPropertyCountNeverExceedsCapacity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 8).Draw(t, "capacity")
		z, err := NewZoo("prop", capacity)
		if err != nil {
			t.Fatal(err)
		}
		inserts := rapid.IntRange(0, 12).Draw(t, "inserts")
		for i := 0; i < inserts; i++ {
			a := drawAnimal(t, fmt.Sprintf("a%d", i))
			before := z.Animals()
			err := z.Add(a)
			if len(before) == capacity {
				require.ErrorIs(t, err, ErrCapacityExceeded)
				require.Equal(t, before, z.Animals())
			} else {
				require.NoError(t, err)
			}
			require.LessOrEqual(t, z.Count(), capacity)
		}
	})
}

func TestPropertyAddRemoveRestoresTotalFood(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		z, err := NewZoo("prop", 16)
		if err != nil {
			t.Fatal(err)
		}
		n := rapid.IntRange(0, 10).Draw(t, "n")
		want := 0.0
		for i := 0; i < n; i++ {
			a := drawAnimal(t, fmt.Sprintf("m%d", i))
			require.NoError(t, z.Add(a))
			want += a.FoodRequirement()
		}
		require.InDelta(t, want, z.TotalFoodRequirement(), 1e-6)

		extra := drawAnimal(t, "extra")
		extra.SetName("Zz-extra")
		require.NoError(t, z.Add(extra))
		require.NoError(t, z.Remove("Zz-extra"))
		require.InDelta(t, want, z.TotalFoodRequirement(), 1e-6)
		require.Equal(t, n, z.Count())
	})
}

func TestPropertyRemoveMissingIsNoop(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		z, err := NewZoo("prop", 8)
		if err != nil {
			t.Fatal(err)
		}
		n := rapid.IntRange(0, 8).Draw(t, "n")
		for i := 0; i < n; i++ {
			require.NoError(t, z.Add(drawAnimal(t, fmt.Sprintf("r%d", i))))
		}
		before := z.Animals()
		require.ErrorIs(t, z.Remove("no-such-animal"), ErrNotFound)
		require.Equal(t, before, z.Animals())
	})
}
