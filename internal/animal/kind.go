package animal

import (
	"strings"

	"golang.org/x/text/cases"
)

// Kind is the concrete variant of an animal. It is fixed at construction
// and selects the behaviour row used for every capability.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindLion
	KindElephant
	KindMonkey
	KindEagle
	KindPenguin
	KindParrot
	kindMax
)

// Group is the zoological class a kind belongs to.
type Group uint8

const (
	GroupMammal Group = iota + 1
	GroupBird
)

func (g Group) String() string {
	switch g {
	case GroupMammal:
		return "Mammal"
	case GroupBird:
		return "Bird"
	}
	return "Unknown"
}

var kindNames = [kindMax]string{
	KindUnknown:  "Unknown",
	KindLion:     "Lion",
	KindElephant: "Elephant",
	KindMonkey:   "Monkey",
	KindEagle:    "Eagle",
	KindPenguin:  "Penguin",
	KindParrot:   "Parrot",
}

func (k Kind) String() string {
	if k >= kindMax {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k > KindUnknown && k < kindMax
}

// Group returns the class of the kind (mammal or bird).
func (k Kind) Group() Group {
	if !k.Valid() {
		return 0
	}
	return behaviors[k].group
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindMax-1)
	for k := KindLion; k < kindMax; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind matches s against the known kind names, ignoring case and
// surrounding whitespace.
func ParseKind(s string) (Kind, bool) {
	folded := cases.Fold().String(strings.TrimSpace(s))
	if folded == "" {
		return KindUnknown, false
	}
	for k := KindLion; k < kindMax; k++ {
		if cases.Fold().String(kindNames[k]) == folded {
			return k, true
		}
	}
	return KindUnknown, false
}

// ParseSpeciesLabel accepts either a bare kind name or a decorated species
// label as produced by Animal.Species ("Penguin (Emperor)", "Golden Eagle").
// The returned variety is the decoration in parentheses, if any; golden is
// set for the "Golden Eagle" label.
func ParseSpeciesLabel(label string) (kind Kind, variety string, golden bool, ok bool) {
	label = strings.TrimSpace(label)
	if k, found := ParseKind(label); found {
		return k, "", false, true
	}
	if open := strings.Index(label, " ("); open > 0 && strings.HasSuffix(label, ")") {
		k, found := ParseKind(label[:open])
		if !found {
			return KindUnknown, "", false, false
		}
		return k, label[open+2 : len(label)-1], false, true
	}
	if rest, found := strings.CutPrefix(cases.Fold().String(label), "golden "); found {
		if k, ok := ParseKind(rest); ok && k == KindEagle {
			return KindEagle, "", true, true
		}
	}
	return KindUnknown, "", false, false
}
