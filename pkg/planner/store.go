package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/peterbourgon/diskv/v3"
	log "github.com/sirupsen/logrus"
	"github.com/teachplan/teachplan/internal/utils"
)

// StorageKey is the fixed key the whole DataModel is stored under.
const StorageKey = "lessonPlannerData-v2"

var ErrNoSavedModel = errors.New("no saved planner data")

// Store persists the whole DataModel as a single record under StorageKey.
type Store interface {
	Load(ctx context.Context) (DataModel, error)
	Save(ctx context.Context, model DataModel) error
}

// DiskvStore keeps the serialized model in a local diskv directory.
type DiskvStore struct {
	d     *diskv.Diskv
	clock utils.Clock
}

func NewDiskvStore(basePath string, clock utils.Clock) *DiskvStore {
	return &DiskvStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		clock: clock,
	}
}

// Load reads and parses the saved model. Returns ErrNoSavedModel when
// nothing has been saved yet; a corrupt blob surfaces as a parse error.
// Both cases are recovered by falling back to Bootstrap defaults.
func (s *DiskvStore) Load(ctx context.Context) (DataModel, error) {
	data, err := s.d.Read(StorageKey)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DataModel{}, ErrNoSavedModel
		}
		return DataModel{}, fmt.Errorf("could not read planner data: %w", err)
	}

	var model DataModel
	if err := json.Unmarshal(data, &model); err != nil {
		return DataModel{}, fmt.Errorf("could not parse planner data: %w", err)
	}
	return model, nil
}

// Save serializes the full model, stamps lastSavedAt with the current
// time, and writes it back under StorageKey. Unconditional, no
// debouncing.
func (s *DiskvStore) Save(ctx context.Context, model DataModel) error {
	model.LastSavedAt = s.clock.Now().Format(time.RFC3339)

	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("could not serialize planner data: %w", err)
	}
	if err := s.d.Write(StorageKey, data); err != nil {
		return fmt.Errorf("could not write planner data: %w", err)
	}
	return nil
}

// LoadOrBootstrap returns the saved model, or fresh Bootstrap defaults
// when nothing is saved or the saved blob is unreadable. A read failure
// is non-fatal.
func LoadOrBootstrap(ctx context.Context, store Store, newID IDGenerator) DataModel {
	model, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSavedModel) {
			log.Warnf("falling back to default planner data: %v", err)
		}
		return Bootstrap(newID)
	}
	return model
}
