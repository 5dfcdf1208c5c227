package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/l1jgo/sanctuary/internal/registry"
	"go.uber.org/zap"
)

// ErrZooNotFound is returned when no zoo of that name was ever saved.
var ErrZooNotFound = errors.New("zoo not found")

// AnimalRow is one stored animal. Unlike the text dump it keeps the id and
// every trait.
type AnimalRow struct {
	ID       uuid.UUID
	ZooName  string
	Position int32
	Kind     string
	Name     string
	Age      int32
	Weight   float64
	Healthy  bool
	Traits   animal.Traits
}

// ZooSummary describes a saved zoo without loading its animals.
type ZooSummary struct {
	Name     string
	Capacity int
	Animals  int
	SavedAt  time.Time
}

type ZooRepo struct {
	db *DB
}

func NewZooRepo(db *DB) *ZooRepo {
	return &ZooRepo{db: db}
}

// Save replaces the stored copy of z with its current state.
func (r *ZooRepo) Save(ctx context.Context, z *registry.Zoo) error {
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO zoos (name, capacity, saved_at) VALUES ($1, $2, now())
			 ON CONFLICT (name) DO UPDATE SET capacity = EXCLUDED.capacity, saved_at = EXCLUDED.saved_at`,
			z.Name(), z.Capacity(),
		); err != nil {
			return fmt.Errorf("upsert zoo %s: %w", z.Name(), err)
		}

		// Stored animals are replaced wholesale.
		if _, err := tx.Exec(ctx, `DELETE FROM animals WHERE zoo_name = $1`, z.Name()); err != nil {
			return fmt.Errorf("clear zoo %s: %w", z.Name(), err)
		}

		for i, a := range z.Animals() {
			traits, err := json.Marshal(a.Traits())
			if err != nil {
				return fmt.Errorf("encode traits of %s: %w", a.Name(), err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO animals (id, zoo_name, position, kind, name, age, weight, healthy, traits)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				a.ID(), z.Name(), int32(i), a.Kind().String(), a.Name(),
				int32(a.Age()), a.Weight(), a.Healthy(), traits,
			); err != nil {
				return fmt.Errorf("insert %s: %w", a.Name(), err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save zoo %s: %w", z.Name(), err)
	}
	r.db.log.Debug("zoo saved to database", zap.String("zoo", z.Name()), zap.Int("animals", z.Count()))
	return nil
}

// LoadRows returns the stored animals of a zoo in position order.
func (r *ZooRepo) LoadRows(ctx context.Context, name string) (capacity int, rows []AnimalRow, err error) {
	var c int32
	err = r.db.Pool.QueryRow(ctx, `SELECT capacity FROM zoos WHERE name = $1`, name).Scan(&c)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil, fmt.Errorf("%w: %s", ErrZooNotFound, name)
	}
	if err != nil {
		return 0, nil, err
	}

	q, err := r.db.Pool.Query(ctx,
		`SELECT id, zoo_name, position, kind, name, age, weight, healthy, traits
		 FROM animals
		 WHERE zoo_name = $1
		 ORDER BY position`, name,
	)
	if err != nil {
		return 0, nil, err
	}
	defer q.Close()

	for q.Next() {
		var row AnimalRow
		var traits []byte
		if err := q.Scan(&row.ID, &row.ZooName, &row.Position, &row.Kind, &row.Name,
			&row.Age, &row.Weight, &row.Healthy, &traits); err != nil {
			return 0, nil, err
		}
		if err := json.Unmarshal(traits, &row.Traits); err != nil {
			return 0, nil, fmt.Errorf("decode traits of %s: %w", row.Name, err)
		}
		rows = append(rows, row)
	}
	return int(c), rows, q.Err()
}

// Load rebuilds a saved zoo, ids and traits included.
func (r *ZooRepo) Load(ctx context.Context, name string, opts ...registry.Option) (*registry.Zoo, error) {
	capacity, rows, err := r.LoadRows(ctx, name)
	if err != nil {
		return nil, err
	}
	z, err := registry.NewZoo(name, capacity, opts...)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		kind, ok := animal.ParseKind(row.Kind)
		if !ok {
			z.Close()
			return nil, fmt.Errorf("animal %s: unknown kind %q", row.ID, row.Kind)
		}
		a, err := animal.Restore(row.ID, kind, row.Name, int(row.Age), row.Weight, row.Healthy, row.Traits)
		if err != nil {
			z.Close()
			return nil, fmt.Errorf("animal %s: %w", row.ID, err)
		}
		if err := z.Add(a); err != nil {
			z.Close()
			return nil, fmt.Errorf("animal %s: %w", row.ID, err)
		}
	}
	return z, nil
}

// List summarises every saved zoo, most recently saved first.
func (r *ZooRepo) List(ctx context.Context) ([]ZooSummary, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT z.name, z.capacity, count(a.id), z.saved_at
		 FROM zoos z LEFT JOIN animals a ON a.zoo_name = z.name
		 GROUP BY z.name, z.capacity, z.saved_at
		 ORDER BY z.saved_at DESC, z.name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ZooSummary
	for rows.Next() {
		var s ZooSummary
		var capacity int32
		var count int64
		if err := rows.Scan(&s.Name, &capacity, &count, &s.SavedAt); err != nil {
			return nil, err
		}
		s.Capacity = int(capacity)
		s.Animals = int(count)
		result = append(result, s)
	}
	return result, rows.Err()
}

// Delete removes a saved zoo and its animals.
func (r *ZooRepo) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM zoos WHERE name = $1`, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrZooNotFound, name)
	}
	return nil
}
