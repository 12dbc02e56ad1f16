package statement

import (
	"context"
	"time"

	"github.com/dinar-dev/dinar/internal/log"
	"github.com/dinar-dev/dinar/internal/model"
)

// DefaultFetchLimit bounds concurrent per-ID user fetches during resolution.
const DefaultFetchLimit = 4

// Service runs the statement pipeline. It holds only collaborators; every
// Build call works on a fresh snapshot of its inputs, so concurrent passes
// never share state.
type Service struct {
	fetcher    UserFetcher
	fetchLimit int
	logger     *log.Logger
	now        func() time.Time // overridable in tests
}

// NewService creates a pipeline service. fetchLimit values below 1 fall back
// to DefaultFetchLimit.
func NewService(fetcher UserFetcher, fetchLimit int, logger *log.Logger) *Service {
	if fetchLimit < 1 {
		fetchLimit = DefaultFetchLimit
	}
	return &Service{
		fetcher:    fetcher,
		fetchLimit: fetchLimit,
		logger:     logger.WithComponent(log.ComponentStatement),
		now:        time.Now,
	}
}

// Build runs the full pipeline: resolve actors (fetching unknown IDs through
// the collaborator), classify every transaction relative to viewer, then
// apply the criteria.
func (s *Service) Build(ctx context.Context, txns []model.Transaction, users []model.User, viewer string, c Criteria) []Entry {
	res := Resolve(txns, users)
	res.FetchMissing(ctx, s.fetcher, s.fetchLimit, s.logger)

	now := s.now()
	entries := make([]Entry, len(txns))
	for i, tx := range txns {
		entries[i] = Classify(tx, res, viewer, now)
	}
	return Filter(entries, c)
}

// Find returns the entry with the given transaction ID.
func Find(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
