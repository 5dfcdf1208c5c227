package animal

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
)

// Hunter is implemented by kinds that stalk prey (lions, eagles).
type Hunter interface {
	Hunt(w io.Writer)
}

// Swimmer is implemented by kinds at home in the water (penguins).
type Swimmer interface {
	Swim(w io.Writer)
	Dive(w io.Writer)
}

// Flyer is implemented by every bird; whether it actually leaves the ground
// depends on the kind and its traits.
type Flyer interface {
	Fly(w io.Writer)
}

// Talker is implemented by kinds that learn words (parrots).
type Talker interface {
	Talk(w io.Writer, rng *rand.Rand)
	Mimic(w io.Writer, phrase string)
	LearnWord(word string)
	Vocabulary() []string
}

type hunter struct{ a *Animal }
type swimmer struct{ a *Animal }
type flyer struct{ a *Animal }
type talker struct{ a *Animal }

// AsHunter returns the hunting capability, if the kind has one.
func (a *Animal) AsHunter() (Hunter, bool) {
	switch a.kind {
	case KindLion, KindEagle:
		return hunter{a}, true
	}
	return nil, false
}

// AsSwimmer returns the swimming capability, if the kind has one.
func (a *Animal) AsSwimmer() (Swimmer, bool) {
	if a.kind == KindPenguin {
		return swimmer{a}, true
	}
	return nil, false
}

// AsFlyer returns the flying capability of birds.
func (a *Animal) AsFlyer() (Flyer, bool) {
	if a.Group() == GroupBird {
		return flyer{a}, true
	}
	return nil, false
}

// AsTalker returns the talking capability, if the kind has one.
func (a *Animal) AsTalker() (Talker, bool) {
	if a.kind == KindParrot {
		return talker{a}, true
	}
	return nil, false
}

func (h hunter) Hunt(w io.Writer) {
	a := h.a
	if a.kind == KindEagle {
		fmt.Fprintf(w, "%s spots prey from %g meters away and prepares to strike!\n", a.name, a.traits.VisionRange)
		return
	}
	fmt.Fprintf(w, "%s is stalking prey with stealth and power...\n", a.name)
}

func (s swimmer) Swim(w io.Writer) {
	fmt.Fprintf(w, "%s swims gracefully at %g km/h!\n", s.a.name, s.a.traits.SwimSpeed)
}

func (s swimmer) Dive(w io.Writer) {
	fmt.Fprintf(w, "%s dives down to %g meters to catch fish!\n", s.a.name, s.a.traits.DivingDepth)
}

func (f flyer) Fly(w io.Writer) {
	a := f.a
	switch {
	case a.kind == KindEagle:
		fmt.Fprintf(w, "%s soars majestically at high altitudes!\n", a.name)
	case a.kind == KindPenguin:
		fmt.Fprintf(w, "%s cannot fly in the air, but flies through the water!\n", a.name)
	case a.traits.CanFly:
		fmt.Fprintf(w, "%s is soaring through the sky!\n", a.name)
	default:
		fmt.Fprintf(w, "%s cannot fly.\n", a.name)
	}
}

// Talk says one word of the vocabulary chosen with rng. A nil rng always
// picks the first word.
func (t talker) Talk(w io.Writer, rng *rand.Rand) {
	vocab := t.a.traits.Vocabulary
	if len(vocab) == 0 {
		return
	}
	i := 0
	if rng != nil {
		i = rng.Intn(len(vocab))
	}
	fmt.Fprintf(w, "%s says: %q\n", t.a.name, vocab[i])
}

func (t talker) Mimic(w io.Writer, phrase string) {
	fmt.Fprintf(w, "%s mimics: %q\n", t.a.name, phrase)
}

func (t talker) LearnWord(word string) {
	t.a.traits.Vocabulary = append(t.a.traits.Vocabulary, word)
}

func (t talker) Vocabulary() []string {
	return append([]string(nil), t.a.traits.Vocabulary...)
}

// SpecialCare runs the kind-specific care routine: each kind shows off its
// signature behaviours.
func (a *Animal) SpecialCare(w io.Writer, rng *rand.Rand) {
	fmt.Fprintf(w, "Special %s care for %s:\n", strings.ToLower(a.kind.String()), a.name)
	switch a.kind {
	case KindLion:
		fmt.Fprintf(w, "%s lets out a mighty ROAR that echoes across the savanna!\n", a.name)
		hunter{a}.Hunt(w)
	case KindEagle:
		fmt.Fprintf(w, "%s screeches powerfully: SCREEEECH!\n", a.name)
		fmt.Fprintf(w, "%s dives at incredible speed to catch its prey!\n", a.name)
	case KindPenguin:
		fmt.Fprintf(w, "%s waddles adorably on the ice!\n", a.name)
		swimmer{a}.Swim(w)
	case KindElephant:
		fmt.Fprintf(w, "%s raises trunk and trumpets loudly: PAAAHROOOO!\n", a.name)
		fmt.Fprintf(w, "%s sprays water with its trunk for a refreshing bath!\n", a.name)
	case KindMonkey:
		fmt.Fprintf(w, "%s is climbing trees with incredible agility!\n", a.name)
		fmt.Fprintf(w, "%s is playing and being mischievous!\n", a.name)
	case KindParrot:
		t := talker{a}
		t.Talk(w, rng)
		fmt.Fprintf(w, "%s's vocabulary: %s\n", a.name, strings.Join(t.Vocabulary(), ", "))
	default:
		fmt.Fprintln(w, "Providing general animal care.")
	}
}
