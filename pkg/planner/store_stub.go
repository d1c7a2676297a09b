package planner

import (
	"context"
)

// StubStore is an in-memory Store for tests. It records every saved
// snapshot so tests can assert exactly one save per mutation.
type StubStore struct {
	Saved     []DataModel
	LoadModel DataModel
	LoadErr   error
	SaveErr   error
}

func NewStubStore() *StubStore {
	return &StubStore{LoadErr: ErrNoSavedModel}
}

func (s *StubStore) Load(ctx context.Context) (DataModel, error) {
	if s.LoadErr != nil {
		return DataModel{}, s.LoadErr
	}
	return s.LoadModel, nil
}

func (s *StubStore) Save(ctx context.Context, model DataModel) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saved = append(s.Saved, model)
	return nil
}

func (s *StubStore) LastSaved() (DataModel, bool) {
	if len(s.Saved) == 0 {
		return DataModel{}, false
	}
	return s.Saved[len(s.Saved)-1], true
}

func (s *StubStore) Cleanup() {
	s.Saved = nil
}
