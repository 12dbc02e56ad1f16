// Package statement turns raw transactions into display-ready statement
// entries: actor resolution, income/expense classification, amount and date
// formatting, and client-side filtering. It is the single pipeline every
// command renders through.
package statement

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dinar-dev/dinar/internal/log"
	"github.com/dinar-dev/dinar/internal/model"
)

// UserFetcher fetches a single user by ID. Satisfied by *api.Client.
type UserFetcher interface {
	UserByID(ctx context.Context, id string) (model.User, error)
}

// Resolution is the resolved actor map for one pipeline pass. It is rebuilt
// from scratch on every pass, never patched incrementally.
type Resolution struct {
	mu        sync.Mutex
	byID      map[string]string // user ID -> canonical username
	usernames map[string]string // lower-cased username -> canonical casing
	missing   []model.ActorRef
}

// Resolve indexes the known-user set and collects every from/to ref across
// txns that is neither a known username (case-insensitive) nor a known ID.
// Missing refs are deduplicated, keep their original casing, and keep
// first-seen order.
func Resolve(txns []model.Transaction, known []model.User) *Resolution {
	r := &Resolution{
		byID:      make(map[string]string, len(known)),
		usernames: make(map[string]string, len(known)),
	}
	for _, u := range known {
		if u.ID != "" {
			r.byID[u.ID] = u.Username
		}
		if u.Username != "" {
			r.usernames[strings.ToLower(u.Username)] = u.Username
		}
	}

	seen := make(map[model.ActorRef]bool)
	collect := func(ref model.ActorRef) {
		if ref == "" || seen[ref] {
			return
		}
		if _, ok := r.usernames[strings.ToLower(ref)]; ok {
			return
		}
		if _, ok := r.byID[ref]; ok {
			return
		}
		seen[ref] = true
		r.missing = append(r.missing, ref)
	}
	for _, tx := range txns {
		collect(tx.From)
		collect(tx.To)
	}
	return r
}

// Missing returns the refs that could not be resolved from the known-user
// set.
func (r *Resolution) Missing() []model.ActorRef {
	return r.missing
}

// FetchMissing resolves each missing ref through fetcher with at most limit
// requests in flight. An individual failure — 404, 500, transport — is logged
// and dropped, never retried: an unknown actor degrades to echoing its raw
// ref. Merge order is irrelevant, so the bounded fan-out is safe.
func (r *Resolution) FetchMissing(ctx context.Context, fetcher UserFetcher, limit int, logger *log.Logger) {
	if len(r.missing) == 0 || fetcher == nil {
		return
	}
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for _, ref := range r.missing {
		g.Go(func() error {
			u, err := fetcher.UserByID(ctx, ref)
			if err != nil {
				logger.Warn("dropping unresolvable actor",
					log.FieldRef, ref, log.FieldError, err)
				return nil
			}
			r.merge(ref, u)
			return nil
		})
	}
	_ = g.Wait() // nothing ever errors; Wait just joins the fan-out
}

func (r *Resolution) merge(ref model.ActorRef, u model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID != "" {
		r.byID[u.ID] = u.Username
	}
	if u.ID != ref {
		r.byID[ref] = u.Username
	}
	if u.Username != "" {
		r.usernames[strings.ToLower(u.Username)] = u.Username
	}
}

// Lookup resolves ref to a display username. It is total: an ID hit wins,
// then a case-insensitive username hit (returning the stored casing), and
// failing both the raw ref is echoed back.
func (r *Resolution) Lookup(ref model.ActorRef) string {
	if ref == "" {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if name, ok := r.byID[ref]; ok && name != "" {
		return name
	}
	if name, ok := r.usernames[strings.ToLower(ref)]; ok {
		return name
	}
	return ref
}
