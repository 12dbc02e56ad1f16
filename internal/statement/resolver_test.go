package statement

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinar-dev/dinar/internal/log"
	"github.com/dinar-dev/dinar/internal/model"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, slog.LevelError)
}

// fakeFetcher serves canned users and failures, recording every call.
type fakeFetcher struct {
	mu    sync.Mutex
	users map[string]model.User
	calls []string
}

func (f *fakeFetcher) UserByID(_ context.Context, id string) (model.User, error) {
	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return model.User{}, errors.New("status 404")
}

func transfer(id, from, to string) model.Transaction {
	return model.Transaction{ID: id, Type: model.TypeTransfer, From: from, To: to, CreatedAt: time.Now()}
}

func TestResolveMissing(t *testing.T) {
	known := []model.User{
		{ID: "u1", Username: "bob"},
		{ID: "u2", Username: "Alice"},
	}
	txns := []model.Transaction{
		transfer("t1", "u1", "alice"),   // known ID, known username (case-insensitive)
		transfer("t2", "BOB", "u99"),    // known username upper-cased, unknown ID
		transfer("t3", "u99", "U42"),    // duplicate unknown, new unknown
		{ID: "t4", Type: model.TypeDeposit}, // no actors at all
	}

	res := Resolve(txns, known)

	assert.Equal(t, []model.ActorRef{"u99", "U42"}, res.Missing(),
		"missing refs dedupe, keep original casing and first-seen order")
}

func TestLookupKnownID(t *testing.T) {
	res := Resolve(nil, []model.User{{ID: "u1", Username: "bob"}})
	assert.Equal(t, "bob", res.Lookup("u1"))
}

func TestLookupCaseInsensitiveUsername(t *testing.T) {
	res := Resolve(nil, []model.User{{ID: "u1", Username: "Bob"}})
	assert.Equal(t, "Bob", res.Lookup("bob"), "stored casing wins in output")
	assert.Equal(t, "Bob", res.Lookup("BOB"))
}

func TestLookupEchoesUnknown(t *testing.T) {
	res := Resolve(nil, []model.User{{ID: "u1", Username: "bob"}})
	assert.Equal(t, "u99", res.Lookup("u99"))
	assert.Equal(t, "mallory", res.Lookup("mallory"))
	assert.Equal(t, "", res.Lookup(""))
}

func TestFetchMissingResolves(t *testing.T) {
	fetcher := &fakeFetcher{users: map[string]model.User{
		"u99": {ID: "u99", Username: "dave"},
	}}
	txns := []model.Transaction{transfer("t1", "u99", "bob")}
	res := Resolve(txns, []model.User{{ID: "u1", Username: "bob"}})
	require.Equal(t, []model.ActorRef{"u99"}, res.Missing())

	res.FetchMissing(context.Background(), fetcher, 4, testLogger())

	assert.Equal(t, "dave", res.Lookup("u99"))
	assert.Equal(t, "dave", res.Lookup("DAVE"), "fetched username joins the case-insensitive set")
}

func TestFetchMissingSwallowsFailures(t *testing.T) {
	fetcher := &fakeFetcher{users: map[string]model.User{
		"u50": {ID: "u50", Username: "erin"},
	}}
	txns := []model.Transaction{
		transfer("t1", "u99", "u50"), // u99 will 404, u50 resolves
	}
	res := Resolve(txns, nil)
	require.Len(t, res.Missing(), 2)

	res.FetchMissing(context.Background(), fetcher, 4, testLogger())

	assert.Equal(t, "u99", res.Lookup("u99"), "failed fetch degrades to echoing the raw ref")
	assert.Equal(t, "erin", res.Lookup("u50"), "one failure does not abort the others")
}

func TestFetchMissingNoRetry(t *testing.T) {
	fetcher := &fakeFetcher{}
	res := Resolve([]model.Transaction{transfer("t1", "u99", "")}, nil)

	res.FetchMissing(context.Background(), fetcher, 4, testLogger())

	assert.Equal(t, []string{"u99"}, fetcher.calls, "a failed per-ID fetch is attempted exactly once")
}

func TestFetchMissingNothingToDo(t *testing.T) {
	fetcher := &fakeFetcher{}
	res := Resolve(nil, []model.User{{ID: "u1", Username: "bob"}})

	res.FetchMissing(context.Background(), fetcher, 4, testLogger())

	assert.Empty(t, fetcher.calls)
}
