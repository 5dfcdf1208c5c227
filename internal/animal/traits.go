package animal

// Traits holds the descriptive attributes of an animal. Only the fields
// relevant to the animal's kind are meaningful; the rest stay zero.
type Traits struct {
	// Mammals
	HasFur        bool   `yaml:"has_fur" json:"has_fur,omitempty"`
	FurColor      string `yaml:"fur_color" json:"fur_color,omitempty"`
	GestationDays int    `yaml:"gestation_days" json:"gestation_days,omitempty"`

	// Birds
	Wingspan float64 `yaml:"wingspan" json:"wingspan,omitempty"` // meters
	CanFly   bool    `yaml:"can_fly" json:"can_fly,omitempty"`
	BeakType string  `yaml:"beak_type" json:"beak_type,omitempty"`

	// Lion
	ManeSize int  `yaml:"mane_size" json:"mane_size,omitempty"` // cm
	Alpha    bool `yaml:"alpha" json:"alpha,omitempty"`

	// Elephant
	TrunkLength float64 `yaml:"trunk_length" json:"trunk_length,omitempty"` // meters
	TuskLength  int     `yaml:"tusk_length" json:"tusk_length,omitempty"`   // cm
	HasIvory    bool    `yaml:"has_ivory" json:"has_ivory,omitempty"`

	// Monkey
	TailLength float64 `yaml:"tail_length" json:"tail_length,omitempty"` // cm
	Prehensile bool    `yaml:"prehensile" json:"prehensile,omitempty"`

	// Monkey and penguin sub-species, shown in the species label.
	Variety string `yaml:"variety" json:"variety,omitempty"`

	// Eagle
	ClawLength  float64 `yaml:"claw_length" json:"claw_length,omitempty"`   // cm
	VisionRange float64 `yaml:"vision_range" json:"vision_range,omitempty"` // meters
	Golden      bool    `yaml:"golden" json:"golden,omitempty"`

	// Penguin
	SwimSpeed   float64 `yaml:"swim_speed" json:"swim_speed,omitempty"`     // km/h
	DivingDepth float64 `yaml:"diving_depth" json:"diving_depth,omitempty"` // meters

	// Parrot
	PlumageColor string   `yaml:"plumage_color" json:"plumage_color,omitempty"`
	Intelligence int      `yaml:"intelligence" json:"intelligence,omitempty"` // 1-10
	Vocabulary   []string `yaml:"vocabulary" json:"vocabulary,omitempty"`
}

// clone returns a copy that shares no slices with t.
func (t Traits) clone() Traits {
	if t.Vocabulary != nil {
		t.Vocabulary = append([]string(nil), t.Vocabulary...)
	}
	return t
}

// DefaultVocabulary is what every parrot knows on arrival.
var DefaultVocabulary = []string{"Hello!", "Pretty bird!"}
