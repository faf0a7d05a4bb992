package fetch

import (
	"context"

	"github.com/per2jensen/clonepulse/pkg/badge"
	"github.com/per2jensen/clonepulse/pkg/github"
)

type clientStub struct {
	payload  github.ClonesPayload
	err      error
	lastUser string
	lastRepo string
	calls    int
}

func (s *clientStub) FetchClones(ctx context.Context, user string, repo string, token string) (github.ClonesPayload, error) {
	s.calls++
	s.lastUser = user
	s.lastRepo = repo
	if s.err != nil {
		return github.ClonesPayload{}, s.err
	}
	return s.payload, nil
}

func (s *clientStub) reset() {
	s.payload = github.ClonesPayload{}
	s.err = nil
	s.lastUser = ""
	s.lastRepo = ""
	s.calls = 0
}

type badgeRecorder struct {
	badges map[string]badge.Badge
	err    error
}

func newBadgeRecorder() *badgeRecorder {
	return &badgeRecorder{badges: make(map[string]badge.Badge)}
}

func (r *badgeRecorder) Write(name string, b badge.Badge) error {
	if r.err != nil {
		return r.err
	}
	r.badges[name] = b
	return nil
}

func (r *badgeRecorder) reset() {
	r.badges = make(map[string]badge.Badge)
	r.err = nil
}
