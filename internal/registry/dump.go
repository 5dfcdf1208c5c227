package registry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/l1jgo/sanctuary/internal/animal"
	"go.uber.org/zap"
)

// Builder creates animals from their dump fields. *factory.Factory
// satisfies it.
type Builder interface {
	Create(kind, name string, age int, weight float64) (*animal.Animal, error)
}

const dumpSep = "|"

// WriteTo writes the zoo in the line-oriented dump format: name, capacity
// and count on the first three lines, then one kind|name|age|weight|health
// line per animal.
func (z *Zoo) WriteTo(w io.Writer) (int64, error) {
	for _, a := range z.Animals() {
		if strings.ContainsAny(a.Name(), dumpSep+"\r\n") {
			return 0, fmt.Errorf("%w: name %q cannot be dumped", ErrInvalidArgument, a.Name())
		}
	}
	if strings.ContainsAny(z.pen.name, "\r\n") {
		return 0, fmt.Errorf("%w: zoo name %q cannot be dumped", ErrInvalidArgument, z.pen.name)
	}

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	fmt.Fprintln(bw, z.pen.name)
	fmt.Fprintln(bw, z.pen.capacity)
	fmt.Fprintln(bw, z.Count())
	for _, a := range z.Animals() {
		health := "0"
		if a.Healthy() {
			health = "1"
		}
		fmt.Fprintln(bw, strings.Join([]string{
			a.Species(),
			a.Name(),
			strconv.Itoa(a.Age()),
			strconv.FormatFloat(a.Weight(), 'g', -1, 64),
			health,
		}, dumpSep))
	}
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("%w: write %s: %w", ErrIO, z.pen.name, err)
	}
	return cw.n, nil
}

// Save writes the dump to path, replacing any existing file.
func (z *Zoo) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if _, err := z.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	z.log.Info("zoo saved", zap.String("zoo", z.pen.name), zap.String("path", path), zap.Int("animals", z.Count()))
	return nil
}

// LoadFrom replaces the zoo's name, capacity and animals with the dump read
// from r, creating each animal through b. Kind-specific traits are not part
// of the format and come back as species defaults, except the variety and
// golden marker carried by the species label. On any error the zoo is left
// unchanged.
func (z *Zoo) LoadFrom(r io.Reader, b Builder) error {
	d, err := decodeDump(r, b)
	if err != nil {
		return err
	}
	z.pen.Close()
	z.pen.name = d.name
	z.pen.capacity = d.capacity
	z.pen.members = z.pen.members[:0]
	for _, a := range d.animals {
		ref := z.pen.slots.Acquire()
		z.pen.members = append(z.pen.members, member[*animal.Animal]{ref: ref, value: a})
	}
	return nil
}

// Load reads the dump at path into the zoo. See LoadFrom.
func (z *Zoo) Load(path string, b Builder) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	if err := z.LoadFrom(f, b); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	z.log.Info("zoo loaded", zap.String("zoo", z.pen.name), zap.String("path", path), zap.Int("animals", z.Count()))
	return nil
}

type dump struct {
	name     string
	capacity int
	animals  []*animal.Animal
}

func decodeDump(r io.Reader, b Builder) (*dump, error) {
	sc := bufio.NewScanner(r)
	line := 0
	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("%w: %w", ErrIO, err)
			}
			return "", fmt.Errorf("%w: missing %s at line %d", ErrMalformedDump, what, line+1)
		}
		line++
		return strings.TrimRight(sc.Text(), "\r"), nil
	}
	header := func(what string) (int, error) {
		s, err := next(what)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: line %d: bad %s %q", ErrMalformedDump, line, what, s)
		}
		return n, nil
	}

	name, err := next("zoo name")
	if err != nil {
		return nil, err
	}
	capacity, err := header("capacity")
	if err != nil {
		return nil, err
	}
	if capacity == 0 {
		return nil, fmt.Errorf("%w: line %d: capacity must be positive", ErrMalformedDump, line)
	}
	count, err := header("count")
	if err != nil {
		return nil, err
	}
	if count > capacity {
		return nil, fmt.Errorf("%w: %d animals exceed capacity %d", ErrMalformedDump, count, capacity)
	}

	d := &dump{name: name, capacity: capacity, animals: make([]*animal.Animal, 0, count)}
	for len(d.animals) < count {
		s, err := next("animal")
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		a, err := decodeAnimal(s, b)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		d.animals = append(d.animals, a)
	}
	for sc.Scan() {
		line++
		if strings.TrimSpace(sc.Text()) != "" {
			return nil, fmt.Errorf("%w: line %d: more animals than the declared %d", ErrMalformedDump, line, count)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return d, nil
}

func decodeAnimal(s string, b Builder) (*animal.Animal, error) {
	fields := strings.Split(s, dumpSep)
	if len(fields) != 5 {
		return nil, fmt.Errorf("%w: want 5 fields, got %d", ErrMalformedDump, len(fields))
	}
	kind, variety, golden, ok := animal.ParseSpeciesLabel(fields[0])
	if !ok {
		return nil, fmt.Errorf("%w: unknown species %q", ErrMalformedDump, fields[0])
	}
	age, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: bad age %q", ErrMalformedDump, fields[2])
	}
	weight, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad weight %q", ErrMalformedDump, fields[3])
	}
	var healthy bool
	switch fields[4] {
	case "0":
	case "1":
		healthy = true
	default:
		return nil, fmt.Errorf("%w: bad health %q", ErrMalformedDump, fields[4])
	}

	a, err := b.Create(kind.String(), fields[1], age, weight)
	if err != nil {
		if errors.Is(err, animal.ErrInvalidAttributes) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDump, err)
		}
		return nil, err
	}
	if variety != "" || golden {
		a.UpdateTraits(func(t *animal.Traits) {
			if variety != "" {
				t.Variety = variety
			}
			t.Golden = golden
		})
	}
	a.SetHealthy(healthy)
	return a, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
