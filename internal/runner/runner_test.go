package runner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobmarket-scraper/internal/database"
	"go-jobmarket-scraper/internal/models"
	"go-jobmarket-scraper/internal/scraper"
)

type fakeBoard struct {
	links       map[string][]string
	discoverErr map[string]error
	extractErr  map[string]error
}

func (b *fakeBoard) Name() string { return "Fake" }

func (b *fakeBoard) Discover(ctx context.Context, role string) ([]string, error) {
	return b.links[role], b.discoverErr[role]
}

func (b *fakeBoard) DetailRequest(url string) scraper.FetchRequest {
	return scraper.FetchRequest{URL: url}
}

// Extract reads "title|salary|location" from the fake page body.
func (b *fakeBoard) Extract(html, url string) (models.RawListing, error) {
	if err := b.extractErr[url]; err != nil {
		return models.RawListing{}, err
	}
	parts := strings.Split(html, "|")
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return models.RawListing{Title: parts[0], SalaryText: parts[1], LocationText: parts[2], PostedText: "Today"}, nil
}

type fakeFetcher struct {
	pages    map[string]string
	failures map[string]error
	calls    []string
	onFetch  func()
}

func (f *fakeFetcher) Fetch(ctx context.Context, req scraper.FetchRequest) (string, error) {
	f.calls = append(f.calls, req.URL)
	if f.onFetch != nil {
		f.onFetch()
	}
	if err := f.failures[req.URL]; err != nil {
		return "", err
	}
	return f.pages[req.URL], nil
}

type memStore struct {
	jobs      []models.NormalizedJob
	schemaErr error
	upsertErr map[string]error
}

func (m *memStore) EnsureSchema(ctx context.Context) error { return m.schemaErr }

func (m *memStore) Upsert(ctx context.Context, job *models.NormalizedJob) (bool, error) {
	if err := m.upsertErr[job.URL]; err != nil {
		return false, err
	}
	for _, j := range m.jobs {
		if j.URL == job.URL {
			return false, nil
		}
	}
	m.jobs = append(m.jobs, *job)
	return true, nil
}

func (m *memStore) GetByURL(ctx context.Context, url string) (*models.NormalizedJob, error) {
	for _, j := range m.jobs {
		if j.URL == url {
			return &j, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memStore) List(ctx context.Context) ([]models.NormalizedJob, error) { return m.jobs, nil }
func (m *memStore) Count(ctx context.Context) (int, error)                   { return len(m.jobs), nil }
func (m *memStore) Close() error                                             { return nil }

type memSeen map[string]bool

func (s memSeen) IsSeen(url string) bool { return s[url] }
func (s memSeen) Add(urls ...string) {
	for _, u := range urls {
		s[u] = true
	}
}

var fixedNow = time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)

func newTestRunner(board *fakeBoard, fetcher *fakeFetcher, store *memStore) *Runner {
	r := New(board, fetcher, store, 0)
	r.Now = func() time.Time { return fixedNow }
	return r
}

func TestRun_InsertsNormalizedJobs(t *testing.T) {
	board := &fakeBoard{links: map[string][]string{
		"Data Analyst": {"u1", "u2"},
	}}
	fetcher := &fakeFetcher{pages: map[string]string{
		"u1": "Analyst|10-15 Lacs P.A.|Jobs in Bengaluru, India",
		"u2": "Junior Analyst|Not disclosed|Remote",
	}}
	store := &memStore{}

	summary, err := newTestRunner(board, fetcher, store).Run(context.Background(), []string{"Data Analyst"})
	require.NoError(t, err)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, Counts{Discovered: 2, Inserted: 2}, summary.Total)

	require.Len(t, store.jobs, 2)
	first := store.jobs[0]
	assert.Equal(t, "Data Analyst", first.Role)
	assert.Equal(t, "u1", first.URL)
	require.NotNil(t, first.AvgSalary)
	assert.Equal(t, int64(1250000), *first.AvgSalary)
	assert.Equal(t, "Bengaluru", first.CleanLocation)
	require.NotNil(t, first.PostedDate)
	assert.Equal(t, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), *first.PostedDate)

	assert.Nil(t, store.jobs[1].AvgSalary)
	assert.Equal(t, "Remote", store.jobs[1].CleanLocation)
}

func TestRun_FailuresAreCountedAndRunContinues(t *testing.T) {
	board := &fakeBoard{
		links:      map[string][]string{"Data Analyst": {"u1", "u2", "u3", "u4"}},
		extractErr: map[string]error{"u2": errors.New("bad html")},
	}
	fetcher := &fakeFetcher{
		pages:    map[string]string{"u2": "x", "u3": "x", "u4": "Ok"},
		failures: map[string]error{"u1": errors.New("timeout")},
	}
	store := &memStore{upsertErr: map[string]error{"u3": errors.New("disk full")}}

	summary, err := newTestRunner(board, fetcher, store).Run(context.Background(), []string{"Data Analyst"})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total.Failed)
	assert.Equal(t, 1, summary.Total.Inserted)

	require.Len(t, summary.Failures, 3)
	assert.Equal(t, scraper.StageFetch, summary.Failures[0].Stage)
	assert.Equal(t, scraper.StageExtract, summary.Failures[1].Stage)
	assert.Equal(t, scraper.StageStore, summary.Failures[2].Stage)

	var listingErr *scraper.ListingError
	require.ErrorAs(t, summary.Failures[0].Err, &listingErr)
	assert.Equal(t, "u1", listingErr.URL)
}

func TestRun_DuplicateAcrossRoles(t *testing.T) {
	board := &fakeBoard{links: map[string][]string{
		"Data Analyst":   {"u1"},
		"Data Scientist": {"u1", "u2"},
	}}
	fetcher := &fakeFetcher{pages: map[string]string{"u1": "A", "u2": "B"}}
	store := &memStore{}

	summary, err := newTestRunner(board, fetcher, store).Run(context.Background(), []string{"Data Analyst", "Data Scientist"})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Role("Data Analyst").Inserted)
	assert.Equal(t, 1, summary.Role("Data Scientist").Duplicates)
	assert.Equal(t, 1, summary.Role("Data Scientist").Inserted)
	assert.Equal(t, 2, summary.Total.Inserted)

	require.Len(t, store.jobs, 2)
	assert.Equal(t, "Data Analyst", store.jobs[0].Role, "first role to store a listing keeps it")
}

func TestRun_SeenListingsSkipped(t *testing.T) {
	board := &fakeBoard{links: map[string][]string{"Data Analyst": {"u1", "u2"}}}
	fetcher := &fakeFetcher{pages: map[string]string{"u1": "A", "u2": "B"}}
	store := &memStore{}

	r := newTestRunner(board, fetcher, store)
	seen := memSeen{"u1": true}
	r.Seen = seen

	summary, err := r.Run(context.Background(), []string{"Data Analyst"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total.Skipped)
	assert.Equal(t, 1, summary.Total.Inserted)
	assert.Equal(t, []string{"u2"}, fetcher.calls)
	assert.True(t, seen["u2"])
}

func TestRun_SchemaFailureIsFatal(t *testing.T) {
	board := &fakeBoard{links: map[string][]string{"Data Analyst": {"u1"}}}
	fetcher := &fakeFetcher{}
	store := &memStore{schemaErr: errors.New("read-only")}

	summary, err := newTestRunner(board, fetcher, store).Run(context.Background(), []string{"Data Analyst"})
	assert.Error(t, err)
	assert.Nil(t, summary)
	assert.Empty(t, fetcher.calls)
}

func TestRun_DiscoveryErrorKeepsPartialLinks(t *testing.T) {
	pageErr := &scraper.PageError{Role: "Data Analyst", Page: 2, Err: errors.New("503")}
	board := &fakeBoard{
		links:       map[string][]string{"Data Analyst": {"u1"}, "Data Engineer": {"u2"}},
		discoverErr: map[string]error{"Data Analyst": pageErr},
	}
	fetcher := &fakeFetcher{pages: map[string]string{"u1": "A", "u2": "B"}}
	store := &memStore{}

	summary, err := newTestRunner(board, fetcher, store).Run(context.Background(), []string{"Data Analyst", "Data Engineer"})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total.Inserted)
	require.Len(t, summary.PageErrors, 1)
	assert.ErrorIs(t, summary.PageErrors[0], pageErr)
}

func TestRun_CancelStopsBetweenListings(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	board := &fakeBoard{links: map[string][]string{"Data Analyst": {"u1", "u2", "u3"}}}
	fetcher := &fakeFetcher{pages: map[string]string{"u1": "A", "u2": "B", "u3": "C"}}
	fetcher.onFetch = cancel
	store := &memStore{}

	summary, err := newTestRunner(board, fetcher, store).Run(ctx, []string{"Data Analyst", "Data Engineer"})
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, []string{"u1"}, fetcher.calls)
	assert.Equal(t, 1, summary.Total.Inserted)
	assert.Nil(t, summary.Role("Data Engineer"))
}

func TestRun_ProgressHooks(t *testing.T) {
	board := &fakeBoard{links: map[string][]string{"Data Analyst": {"u1", "u2"}}}
	fetcher := &fakeFetcher{pages: map[string]string{"u1": "A", "u2": "B"}}

	r := newTestRunner(board, fetcher, &memStore{})
	var discovered int
	var results []Status
	r.OnDiscover = func(role string, n int) { discovered += n }
	r.OnResult = func(res Result) { results = append(results, res.Status) }

	_, err := r.Run(context.Background(), []string{"Data Analyst"})
	require.NoError(t, err)
	assert.Equal(t, 2, discovered)
	assert.Equal(t, []Status{StatusInserted, StatusInserted}, results)
}
