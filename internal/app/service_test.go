package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/samvad-hq/samvad-comments/internal/config"
	"github.com/samvad-hq/samvad-comments/internal/storage"
	"github.com/samvad-hq/samvad-comments/pkg/comments"
	"github.com/samvad-hq/samvad-comments/pkg/publishers"
)

// fakeAPI returns preset results or an error.
type fakeAPI struct {
	list    []comments.Comment
	created comments.Comment
	updated comments.Comment
	err     error
}

func (f *fakeAPI) List(context.Context) ([]comments.Comment, error) { return f.list, f.err }
func (f *fakeAPI) Create(context.Context, comments.Comment) (comments.Comment, error) {
	return f.created, f.err
}
func (f *fakeAPI) Update(context.Context, comments.Comment) (comments.Comment, error) {
	return f.updated, f.err
}

// fakePublisher records published events and can inject errors.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishers.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	if f.err != nil {
		return 0, f.err
	}
	return 1, nil
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "snap.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestServiceCreateArchivesAndPublishes(t *testing.T) {
	api := &fakeAPI{created: comments.NewWithID(1, "n", "t")}
	pub := &fakePublisher{}
	store := newTestStore(t)
	svc := NewService(api, store, pub, "https://c", nil)

	got, err := svc.Create(context.Background(), comments.New("n", "t"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got != api.created {
		t.Fatalf("Create = %v", got)
	}
	if len(pub.events) != 1 || pub.events[0].Type != publishers.EventCommentCreated || pub.events[0].BaseURI != "https://c" {
		t.Fatalf("events = %+v", pub.events)
	}

	snap, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap) != 1 || snap[0] != api.created {
		t.Fatalf("snapshot = %v", snap)
	}
}

func TestServiceUpdatePublishFailureDoesNotFail(t *testing.T) {
	api := &fakeAPI{updated: comments.NewWithID(2, "n", "t2")}
	pub := &fakePublisher{err: errors.New("queue down")}
	svc := NewService(api, nil, pub, "", nil)

	got, err := svc.Update(context.Background(), comments.NewWithID(2, "n", "t2"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got != api.updated {
		t.Fatalf("Update = %v", got)
	}
	if len(pub.events) != 1 || pub.events[0].Type != publishers.EventCommentUpdated {
		t.Fatalf("events = %+v", pub.events)
	}
}

func TestServicePropagatesClientErrorsWithoutSideEffects(t *testing.T) {
	bad := &comments.BadResponseError{Body: "nope", StatusCode: 500}
	pub := &fakePublisher{}
	store := newTestStore(t)
	svc := NewService(&fakeAPI{err: bad}, store, pub, "", nil)

	if _, err := svc.Create(context.Background(), comments.New("n", "t")); !errors.Is(err, bad) {
		t.Fatalf("Create err = %v", err)
	}
	if _, err := svc.List(context.Background()); !errors.Is(err, comments.ErrBadResponse) {
		t.Fatalf("List err = %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("no events expected on failure")
	}
	if snap, _ := svc.Snapshot(); len(snap) != 0 {
		t.Fatalf("no snapshot expected on failure, got %v", snap)
	}
}

func TestServiceListArchives(t *testing.T) {
	api := &fakeAPI{list: []comments.Comment{
		comments.NewWithID(3, "c", "3"),
		comments.NewWithID(1, "a", "1"),
	}}
	svc := NewService(api, newTestStore(t), nil, "", nil)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0] != api.list[0] {
		t.Fatalf("List must keep server order, got %v", got)
	}
	snap, _ := svc.Snapshot()
	if len(snap) != 2 || snap[0] != api.list[1] {
		t.Fatalf("snapshot = %v", snap)
	}
}

func TestNewWiresRestyClientAndPublishers(t *testing.T) {
	var hooks int
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hooks++
		w.WriteHeader(http.StatusOK)
	}))
	defer hook.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/comment" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":8,"name":"n","text":"t"}`))
	}))
	defer api.Close()

	dir := t.TempDir()
	pubFile := filepath.Join(dir, "publishers.yaml")
	raw := "publishers:\n  - id: hook\n    type: http\n    http:\n      url: " + hook.URL + "\n"
	if err := os.WriteFile(pubFile, []byte(raw), 0o600); err != nil {
		t.Fatalf("write publishers: %v", err)
	}

	cfg := &config.Config{
		BaseURI:            api.URL + "/v1/",
		HTTPTimeoutSeconds: 2,
		OutputFormat:       config.OutputJSON,
		PublishersFile:     pubFile,
		SnapshotPath:       filepath.Join(dir, "snap.db"),
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	svc, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer svc.Close()

	got, err := svc.Create(context.Background(), comments.New("n", "t"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got != comments.NewWithID(8, "n", "t") {
		t.Fatalf("Create = %v", got)
	}
	if hooks != 1 {
		t.Fatalf("webhook called %d times", hooks)
	}
}

func TestNewRequiresBaseURI(t *testing.T) {
	if _, err := New(context.Background(), &config.Config{HTTPTimeoutSeconds: 1}, nil); err == nil {
		t.Fatalf("expected error without base uri")
	}
}
