package event

import "github.com/l1jgo/sanctuary/internal/animal"

// AnimalAdmitted is emitted when a registry takes ownership of an animal.
type AnimalAdmitted struct {
	Registry string
	Animal   *animal.Animal
}

// AnimalReleased is emitted after a registry destroyed an animal. The
// animal itself is no longer valid; only its identity is carried.
type AnimalReleased struct {
	Registry string
	Name     string
	Species  string
}

// HealthAlert is emitted when a checkup finds an animal in need of care.
type HealthAlert struct {
	Animal *animal.Animal
	Note   string
}
