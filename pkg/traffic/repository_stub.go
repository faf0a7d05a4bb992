package traffic

import "context"

type RepositoryStub struct {
	snapshot *Snapshot
	stored   []Snapshot
	loadErr  error
	storeErr error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) SetSnapshot(snapshot Snapshot) {
	s.snapshot = &snapshot
}

func (s *RepositoryStub) SetLoadErr(err error) {
	s.loadErr = err
}

func (s *RepositoryStub) SetStoreErr(err error) {
	s.storeErr = err
}

// Stored returns every snapshot passed to Store, in order.
func (s *RepositoryStub) Stored() []Snapshot {
	return s.stored
}

func (s *RepositoryStub) Load(ctx context.Context) (Snapshot, error) {
	if s.loadErr != nil {
		return Snapshot{}, s.loadErr
	}
	if s.snapshot == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	return *s.snapshot, nil
}

func (s *RepositoryStub) LoadOrInit(ctx context.Context) (Snapshot, error) {
	if s.loadErr != nil {
		return Snapshot{}, s.loadErr
	}
	if s.snapshot == nil {
		return Snapshot{Daily: []DailyRecord{}, Annotations: []Annotation{}}, nil
	}
	return *s.snapshot, nil
}

func (s *RepositoryStub) Store(ctx context.Context, snapshot Snapshot) error {
	if s.storeErr != nil {
		return s.storeErr
	}
	s.snapshot = &snapshot
	s.stored = append(s.stored, snapshot)
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.snapshot = nil
	s.stored = nil
	s.loadErr = nil
	s.storeErr = nil
}
