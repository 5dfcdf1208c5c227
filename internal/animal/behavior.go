package animal

import (
	"fmt"
	"io"
	"strings"
)

// behavior is one row of the per-kind dispatch table.
type behavior struct {
	group     Group
	sound     string
	eats      string
	foodRatio float64 // share of body weight eaten per day
	checkup   string
	verdict   func(a *Animal) (healthy bool, note string)
	describe  func(a *Animal, w io.Writer)
}

var behaviors = [kindMax]behavior{
	KindUnknown: {
		verdict:  func(a *Animal) (bool, string) { return true, "" },
		describe: func(*Animal, io.Writer) {},
	},
	KindLion: {
		group:     GroupMammal,
		sound:     "ROOOAAAR!",
		eats:      "fresh meat",
		foodRatio: 0.05,
		checkup:   "Checking teeth and mane condition...",
		verdict: func(a *Animal) (bool, string) {
			return true, "Lion " + a.name + " is in good health!"
		},
		describe: func(a *Animal, w io.Writer) {
			fmt.Fprintf(w, "Mane Size: %d cm\n", a.traits.ManeSize)
			fmt.Fprintf(w, "Pride Status: %s\n", choose(a.traits.Alpha, "Alpha", "Member"))
		},
	},
	KindElephant: {
		group:     GroupMammal,
		sound:     "PAAAHROOOO!",
		eats:      "hay, leaves, and fruits",
		foodRatio: 0.045,
		checkup:   "Checking trunk flexibility and foot health...",
		verdict: func(a *Animal) (bool, string) {
			return true, "Elephant " + a.name + " is healthy!"
		},
		describe: func(a *Animal, w io.Writer) {
			fmt.Fprintf(w, "Trunk Length: %g meters\n", a.traits.TrunkLength)
			fmt.Fprintf(w, "Tusk Length: %d cm\n", a.traits.TuskLength)
			fmt.Fprintf(w, "Has Ivory: %s\n", yesNo(a.traits.HasIvory))
		},
	},
	KindMonkey: {
		group:     GroupMammal,
		sound:     "Ooh ooh ah ah!",
		eats:      "bananas, fruits, and insects",
		foodRatio: 0.03,
		checkup:   "Checking agility and tail flexibility...",
		verdict: func(a *Animal) (bool, string) {
			return true, "Monkey " + a.name + " is energetic and healthy!"
		},
		describe: func(a *Animal, w io.Writer) {
			fmt.Fprintf(w, "Species: %s\n", a.traits.Variety)
			fmt.Fprintf(w, "Tail Length: %g cm\n", a.traits.TailLength)
			fmt.Fprintf(w, "Prehensile Tail: %s\n", yesNo(a.traits.Prehensile))
		},
	},
	KindEagle: {
		group:     GroupBird,
		sound:     "SCREEEECH!",
		eats:      "fresh fish and small mammals",
		foodRatio: 0.10,
		checkup:   "Checking talons and eyesight...",
		verdict: func(a *Animal) (bool, string) {
			return true, "Eagle " + a.name + " is ready to soar!"
		},
		describe: func(a *Animal, w io.Writer) {
			fmt.Fprintf(w, "Type: %s\n", choose(a.traits.Golden, "Golden Eagle", "Bald Eagle"))
			fmt.Fprintf(w, "Claw Length: %g cm\n", a.traits.ClawLength)
			fmt.Fprintf(w, "Vision Range: %g meters\n", a.traits.VisionRange)
		},
	},
	KindPenguin: {
		group:     GroupBird,
		sound:     "HONK HONK!",
		eats:      "fresh fish and krill",
		foodRatio: 0.10,
		checkup:   "Checking waterproofing of feathers and flipper strength...",
		verdict: func(a *Animal) (bool, string) {
			if a.weight < PenguinMinHealthyWeight {
				return false, a.name + " needs vitamin supplements!"
			}
			return true, "Penguin " + a.name + " is healthy!"
		},
		describe: func(a *Animal, w io.Writer) {
			fmt.Fprintf(w, "Species: %s\n", a.traits.Variety)
			fmt.Fprintf(w, "Swim Speed: %g km/h\n", a.traits.SwimSpeed)
			fmt.Fprintf(w, "Diving Depth: %g meters\n", a.traits.DivingDepth)
		},
	},
	KindParrot: {
		group:     GroupBird,
		sound:     "SQUAWK! SQUAWK!",
		eats:      "seeds, nuts, and fruits",
		foodRatio: 0.08,
		checkup:   "Checking beak condition and mental stimulation...",
		verdict: func(a *Animal) (bool, string) {
			return true, "Parrot " + a.name + " is bright and healthy!"
		},
		describe: func(a *Animal, w io.Writer) {
			fmt.Fprintf(w, "Plumage Color: %s\n", a.traits.PlumageColor)
			fmt.Fprintf(w, "Intelligence Level: %d/10\n", a.traits.Intelligence)
			fmt.Fprintf(w, "Vocabulary Size: %d words\n", len(a.traits.Vocabulary))
		},
	},
}

// PenguinMinHealthyWeight is the weight (kg) under which a penguin fails
// its checkup.
const PenguinMinHealthyWeight = 10.0

// FoodRatio returns the share of body weight the kind eats per day.
func FoodRatio(k Kind) float64 {
	if !k.Valid() {
		return 0
	}
	return behaviors[k].foodRatio
}

// MakeSound writes the animal's call.
func (a *Animal) MakeSound(w io.Writer) {
	fmt.Fprintf(w, "%s says: %s\n", a.name, behaviors[a.kind].sound)
}

// Eat writes what the animal is eating.
func (a *Animal) Eat(w io.Writer) {
	b := behaviors[a.kind]
	if a.kind == KindElephant {
		fmt.Fprintf(w, "%s is munching on %s.\n", a.name, b.eats)
		return
	}
	fmt.Fprintf(w, "%s is eating %s.\n", a.name, b.eats)
}

func (a *Animal) Sleep(w io.Writer) {
	fmt.Fprintf(w, "%s is sleeping peacefully... Zzz\n", a.name)
}

// Describe writes the full information sheet of the animal.
func (a *Animal) Describe(w io.Writer) {
	fmt.Fprintf(w, "\n=== %s ===\n", strings.ToUpper(a.kind.String()))
	fmt.Fprintf(w, "Name: %s\n", a.name)
	fmt.Fprintf(w, "Age: %d years\n", a.age)
	fmt.Fprintf(w, "Weight: %g kg\n", a.weight)
	fmt.Fprintf(w, "Health Status: %s\n", choose(a.healthy, "Healthy", "Needs Attention"))
	switch a.Group() {
	case GroupMammal:
		fmt.Fprintf(w, "Has Fur: %s\n", yesNo(a.traits.HasFur))
		if a.traits.HasFur {
			fmt.Fprintf(w, "Fur Color: %s\n", a.traits.FurColor)
		}
		fmt.Fprintf(w, "Gestation Period: %d days\n", a.traits.GestationDays)
	case GroupBird:
		fmt.Fprintf(w, "Wingspan: %g meters\n", a.traits.Wingspan)
		fmt.Fprintf(w, "Can Fly: %s\n", yesNo(a.traits.CanFly))
		fmt.Fprintf(w, "Beak Type: %s\n", a.traits.BeakType)
	}
	behaviors[a.kind].describe(a, w)
}

// PerformCheckup examines the animal, writes the notes and updates the
// health flag. The animal is assumed healthy unless its kind's verdict says
// otherwise.
func (a *Animal) PerformCheckup(w io.Writer) bool {
	b := behaviors[a.kind]
	fmt.Fprintf(w, "Performing checkup on %s...\n", a.name)
	switch b.group {
	case GroupMammal:
		fmt.Fprintln(w, "Checking fur condition and temperature...")
	case GroupBird:
		fmt.Fprintln(w, "Checking feather condition and wing strength...")
	}
	if b.checkup != "" {
		fmt.Fprintln(w, b.checkup)
	}
	healthy, note := b.verdict(a)
	if note != "" {
		fmt.Fprintln(w, note)
	}
	a.healthy = healthy
	return healthy
}

func yesNo(b bool) string {
	return choose(b, "Yes", "No")
}

func choose(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
