package registry

import (
	"bytes"
	"testing"

	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/l1jgo/sanctuary/internal/core/event"
	"github.com/l1jgo/sanctuary/internal/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

type ZooSuite struct {
	suite.Suite
	factory *factory.Factory
	bus     *event.Bus
	zoo     *Zoo
}

func TestZooSuite(t *testing.T) {
	suite.Run(t, new(ZooSuite))
}

func (s *ZooSuite) SetupTest() {
	s.factory = factory.New(nil)
	s.bus = event.NewBus()
	z, err := NewZoo("City Zoo", 5, WithBus(s.bus), WithLogger(zaptest.NewLogger(s.T())))
	s.Require().NoError(err)
	s.zoo = z
}

func (s *ZooSuite) create(kind, name string, age int, weight float64) *animal.Animal {
	a, err := s.factory.Create(kind, name, age, weight)
	s.Require().NoError(err)
	return a
}

func (s *ZooSuite) populate() {
	for _, a := range []*animal.Animal{
		s.create("lion", "Simba", 5, 190),
		s.create("elephant", "Dumbo", 10, 5000),
		s.create("penguin", "Pingu", 3, 8),
	} {
		s.Require().NoError(s.zoo.Add(a))
	}
}

func (s *ZooSuite) TestCapacityScenario() {
	z, err := NewZoo("Tiny", 2)
	s.Require().NoError(err)
	s.Require().NoError(z.Add(s.create("lion", "A", 1, 100)))
	s.Require().NoError(z.Add(s.create("eagle", "B", 1, 5)))
	s.Equal(2, z.Count())

	err = z.Add(s.create("parrot", "C", 1, 1))
	s.ErrorIs(err, ErrCapacityExceeded)
	s.Equal(2, z.Count())
}

func (s *ZooSuite) TestFindScenario() {
	s.populate()
	simba, err := s.zoo.Find("Simba")
	s.Require().NoError(err)
	s.Equal("Simba", simba.Name())
	s.Equal("Lion", simba.Species())

	_, err = s.zoo.Find("Mufasa")
	s.ErrorIs(err, ErrNotFound)
}

func (s *ZooSuite) TestRemoveUnknownLeavesZooUnchanged() {
	s.populate()
	before := s.zoo.Animals()
	s.ErrorIs(s.zoo.Remove("Mufasa"), ErrNotFound)
	s.Equal(before, s.zoo.Animals())
}

func (s *ZooSuite) TestAddThenRemoveRestoresFood() {
	s.populate()
	before := s.zoo.TotalFoodRequirement()
	s.Require().NoError(s.zoo.Add(s.create("monkey", "George", 4, 12)))
	s.InDelta(before+12*0.03, s.zoo.TotalFoodRequirement(), 1e-9)
	s.Require().NoError(s.zoo.Remove("George"))
	s.InDelta(before, s.zoo.TotalFoodRequirement(), 1e-9)
}

func (s *ZooSuite) TestTotalFoodIsSumOfMembers() {
	s.populate()
	want := 190*0.05 + 5000*0.045 + 8*0.10
	s.InDelta(want, s.zoo.TotalFoodRequirement(), 1e-9)
}

func (s *ZooSuite) TestRejectsNilAndReleased() {
	s.ErrorIs(s.zoo.Add(nil), ErrInvalidArgument)

	a := s.create("lion", "Nala", 4, 130)
	a.Release()
	s.ErrorIs(s.zoo.Add(a), ErrInvalidArgument)
	s.Zero(s.zoo.Count())
}

func (s *ZooSuite) TestCountByKindMatchesLabelExactly() {
	s.populate()
	s.Require().NoError(s.zoo.Add(s.create("lion", "Nala", 4, 130)))
	s.Equal(2, s.zoo.CountByKind("Lion"))
	s.Equal(0, s.zoo.CountByKind("lion"))
	s.Equal(1, s.zoo.CountByKind("Penguin (Emperor)"))
	s.Equal(0, s.zoo.CountByKind("Penguin"))
}

func (s *ZooSuite) TestDisplayByKind() {
	s.populate()
	var buf bytes.Buffer
	s.zoo.DisplayByKind(&buf, "Lion")
	s.Contains(buf.String(), "=== Lions in the zoo ===")
	s.Contains(buf.String(), "Name: Simba")
	s.NotContains(buf.String(), "Dumbo")

	buf.Reset()
	s.zoo.DisplayByKind(&buf, "Parrot")
	s.Contains(buf.String(), "No Parrots found in the zoo.")
}

func (s *ZooSuite) TestDisplayAll() {
	var buf bytes.Buffer
	s.zoo.DisplayAll(&buf)
	s.Contains(buf.String(), "No animals in the zoo yet.")

	s.populate()
	buf.Reset()
	s.zoo.DisplayAll(&buf)
	out := buf.String()
	s.Contains(out, "=== Animals in City Zoo ===")
	s.Contains(out, "[3] \n=== PENGUIN ===")
	s.Contains(out, "Food required: 9.5 kg")
	s.Contains(out, "Total animals: 3")
}

func (s *ZooSuite) TestSoundsAndFeeding() {
	s.populate()
	var buf bytes.Buffer
	s.zoo.MakeAllSounds(&buf)
	s.zoo.FeedAll(&buf)
	out := buf.String()
	s.Contains(out, "Simba says: ROOOAAAR!")
	s.Contains(out, "Pingu says: HONK HONK!")
	s.Contains(out, "Dumbo is munching on hay, leaves, and fruits.")
}

func (s *ZooSuite) TestPerformCheckupsRaisesAlerts() {
	s.populate()
	var alerts []event.HealthAlert
	event.Subscribe(s.bus, func(e event.HealthAlert) { alerts = append(alerts, e) })

	var buf bytes.Buffer
	sick := s.zoo.PerformCheckups(&buf)
	s.Require().Len(sick, 1)
	s.Equal("Pingu", sick[0].Name())
	s.False(sick[0].Healthy())
	s.Contains(buf.String(), "Pingu needs vitamin supplements!")

	s.bus.Flush()
	s.Require().Len(alerts, 1)
	s.Same(sick[0], alerts[0].Animal)
}

func (s *ZooSuite) TestMembershipEvents() {
	var admitted []string
	var released []event.AnimalReleased
	event.Subscribe(s.bus, func(e event.AnimalAdmitted) { admitted = append(admitted, e.Animal.Name()) })
	event.Subscribe(s.bus, func(e event.AnimalReleased) { released = append(released, e) })

	s.populate()
	s.Require().NoError(s.zoo.Remove("Dumbo"))
	s.bus.Flush()

	s.Equal([]string{"Simba", "Dumbo", "Pingu"}, admitted)
	s.Equal([]event.AnimalReleased{{Registry: "City Zoo", Name: "Dumbo", Species: "Elephant"}}, released)
}

func (s *ZooSuite) TestRefsGoStaleOnRemove() {
	s.populate()
	ref, err := s.zoo.RefOf("Dumbo")
	s.Require().NoError(err)

	a, err := s.zoo.Resolve(ref)
	s.Require().NoError(err)
	s.Equal("Dumbo", a.Name())

	s.Require().NoError(s.zoo.Remove("Dumbo"))
	_, err = s.zoo.Resolve(ref)
	s.ErrorIs(err, ErrStaleRef)

	// the freed slot is reused without reviving the old ref
	s.Require().NoError(s.zoo.Add(s.create("eagle", "Freedom", 2, 4)))
	_, err = s.zoo.Resolve(ref)
	s.ErrorIs(err, ErrStaleRef)

	_, err = s.zoo.RefOf("Dumbo")
	s.ErrorIs(err, ErrNotFound)
}

func (s *ZooSuite) TestCloneSurvivesDestroyingOriginal() {
	s.populate()
	original := s.zoo.Animals()

	c := s.zoo.Clone()
	s.Equal("City Zoo_copy", c.Name())
	s.Equal(s.zoo.Capacity(), c.Capacity())
	s.Equal(s.zoo.Count(), c.Count())

	s.zoo.Close()
	for _, a := range original {
		s.True(a.Released())
	}

	s.Require().Equal(3, c.Count())
	for i, a := range c.Animals() {
		s.False(a.Released(), a.Name())
		s.NotSame(original[i], a)
		s.NotEqual(original[i].ID(), a.ID())
		s.Equal(original[i].Name(), a.Name())
	}
	simba, err := c.Find("Simba")
	s.Require().NoError(err)
	var buf bytes.Buffer
	simba.MakeSound(&buf)
	s.Equal("Simba says: ROOOAAAR!\n", buf.String())
}

func (s *ZooSuite) TestCloneIsIndependent() {
	s.populate()
	c := s.zoo.Clone()
	s.Require().NoError(c.Remove("Simba"))
	s.Equal(3, s.zoo.Count())

	a, err := c.Find("Pingu")
	s.Require().NoError(err)
	a.SetName("Pingo")
	_, err = s.zoo.Find("Pingu")
	s.NoError(err)
}

func (s *ZooSuite) TestCloseInvalidatesRefsAndStaysUsable() {
	s.populate()
	ref, err := s.zoo.RefOf("Simba")
	s.Require().NoError(err)

	s.zoo.Close()
	s.Zero(s.zoo.Count())
	_, err = s.zoo.Resolve(ref)
	s.ErrorIs(err, ErrStaleRef)

	s.Require().NoError(s.zoo.Add(s.create("parrot", "Polly", 5, 1.2)))
	s.Equal(1, s.zoo.Count())
}

func TestNewZooRejectsNonPositiveCapacity(t *testing.T) {
	_, err := NewZoo("nope", 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
