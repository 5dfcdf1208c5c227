package system

import (
	"context"
	"errors"
	"time"

	coresys "github.com/l1jgo/sanctuary/internal/core/system"
	"github.com/l1jgo/sanctuary/internal/registry"
	"go.uber.org/zap"
)

// ZooSaver stores a zoo. *persist.ZooRepo implements it.
type ZooSaver interface {
	Save(ctx context.Context, z *registry.Zoo) error
}

// PersistenceSystem saves the zoo at the end of every day: to the text
// dump when a path is set, and to the database when a saver is set.
// Phase 5 (Persist).
type PersistenceSystem struct {
	zoo      *registry.Zoo
	dumpPath string
	saver    ZooSaver
	timeout  time.Duration
	log      *zap.Logger
}

func NewPersistenceSystem(zoo *registry.Zoo, dumpPath string, saver ZooSaver, timeout time.Duration, log *zap.Logger) *PersistenceSystem {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PersistenceSystem{
		zoo:      zoo,
		dumpPath: dumpPath,
		saver:    saver,
		timeout:  timeout,
		log:      log,
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

// Update tries both targets even when the first one fails.
func (s *PersistenceSystem) Update(ctx context.Context, day int) error {
	var errs []error
	if s.dumpPath != "" {
		if err := s.zoo.Save(s.dumpPath); err != nil {
			s.log.Error("dump save failed", zap.Int("day", day), zap.Error(err))
			errs = append(errs, err)
		}
	}
	if s.saver != nil {
		saveCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		if err := s.saver.Save(saveCtx, s.zoo); err != nil {
			s.log.Error("database save failed", zap.Int("day", day), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
