package indexsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hirepath/hirepath/internal/domain"
)

type fakeEntityStore struct {
	jobs  map[domain.EntityID]*domain.Job
	users map[domain.EntityID]*domain.User
}

func (f *fakeEntityStore) GetJobByID(ctx context.Context, id domain.EntityID) (*domain.Job, error) {
	if j, ok := f.jobs[id]; ok {
		return j, nil
	}
	return nil, fmt.Errorf("job %d: %w", id, domain.ErrNotFound)
}

func (f *fakeEntityStore) GetUserByID(ctx context.Context, id domain.EntityID) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
}

func (f *fakeEntityStore) ListJobIDs(ctx context.Context) ([]domain.EntityID, error) {
	ids := make([]domain.EntityID, 0, len(f.jobs))
	for id := range f.jobs {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeEntityStore) ListCandidateIDs(ctx context.Context) ([]domain.EntityID, error) {
	ids := make([]domain.EntityID, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	return ids, nil
}

type upsertCall struct {
	kind     domain.Kind
	id       domain.EntityID
	content  string
	metadata map[string]string
}

type fakeIndex struct {
	ensured   bool
	upserts   []upsertCall
	deletes   []string
	upsertErr error
}

func (f *fakeIndex) EnsureIndexes(ctx context.Context) error {
	f.ensured = true
	return nil
}

func (f *fakeIndex) Upsert(ctx context.Context, kind domain.Kind, id domain.EntityID, content string, metadata map[string]string) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, upsertCall{kind: kind, id: id, content: content, metadata: metadata})
	return nil
}

func (f *fakeIndex) Delete(ctx context.Context, kind domain.Kind, id domain.EntityID) error {
	f.deletes = append(f.deletes, string(kind)+":"+id.String())
	return nil
}

func TestHandleUpsertsJob(t *testing.T) {
	store := &fakeEntityStore{jobs: map[domain.EntityID]*domain.Job{
		3: {ID: 3, Title: "Go Developer", Description: "backend services", Skills: []string{"go", "sql"}, Location: "Pune"},
	}}
	index := &fakeIndex{}
	svc := New(store, index, zap.NewNop())

	err := svc.Handle(context.Background(), domain.ReindexEvent{Kind: domain.KindJobs, ID: 3})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(index.upserts) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(index.upserts))
	}
	call := index.upserts[0]
	if call.kind != domain.KindJobs || call.id != 3 {
		t.Errorf("upsert target = %s %d", call.kind, call.id)
	}
	for _, want := range []string{"Go Developer", "backend services", "go, sql"} {
		if !strings.Contains(call.content, want) {
			t.Errorf("content %q missing %q", call.content, want)
		}
	}
	if call.metadata["title"] != "Go Developer" {
		t.Errorf("metadata title = %q", call.metadata["title"])
	}
}

func TestHandleUpsertsCandidate(t *testing.T) {
	store := &fakeEntityStore{users: map[domain.EntityID]*domain.User{
		7: {
			ID: 7, Type: domain.UserTypeJobseeker, Name: "Asha",
			Location: "Bangalore", ExperienceLevel: "4 years",
			Education: "BTech", Skills: []string{"python"},
		},
	}}
	index := &fakeIndex{}
	svc := New(store, index, zap.NewNop())

	err := svc.Handle(context.Background(), domain.ReindexEvent{Kind: domain.KindCandidates, ID: 7})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(index.upserts) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(index.upserts))
	}
	content := index.upserts[0].content
	for _, want := range []string{"Asha", "Bangalore", "4 years", "BTech", "python"} {
		if !strings.Contains(content, want) {
			t.Errorf("content %q missing %q", content, want)
		}
	}
}

func TestHandleDeleteEvent(t *testing.T) {
	index := &fakeIndex{}
	svc := New(&fakeEntityStore{}, index, zap.NewNop())

	err := svc.Handle(context.Background(), domain.ReindexEvent{Kind: domain.KindJobs, ID: 9, Deleted: true})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(index.deletes) != 1 || index.deletes[0] != "jobs:9" {
		t.Errorf("deletes = %v", index.deletes)
	}
}

func TestHandleMissingEntityDeletesDerivedRecord(t *testing.T) {
	index := &fakeIndex{}
	svc := New(&fakeEntityStore{}, index, zap.NewNop())

	err := svc.Handle(context.Background(), domain.ReindexEvent{Kind: domain.KindJobs, ID: 42})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(index.deletes) != 1 || index.deletes[0] != "jobs:42" {
		t.Errorf("deletes = %v", index.deletes)
	}
}

func TestHandleNonJobseekerDeletesDerivedRecord(t *testing.T) {
	store := &fakeEntityStore{users: map[domain.EntityID]*domain.User{
		5: {ID: 5, Type: domain.UserTypeRecruiter, Name: "Rec"},
	}}
	index := &fakeIndex{}
	svc := New(store, index, zap.NewNop())

	err := svc.Handle(context.Background(), domain.ReindexEvent{Kind: domain.KindCandidates, ID: 5})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(index.upserts) != 0 {
		t.Error("recruiter must not be indexed as a candidate")
	}
	if len(index.deletes) != 1 {
		t.Errorf("deletes = %v", index.deletes)
	}
}

func TestHandleRejectsUnknownKind(t *testing.T) {
	svc := New(&fakeEntityStore{}, &fakeIndex{}, zap.NewNop())

	if err := svc.Handle(context.Background(), domain.ReindexEvent{Kind: "payments", ID: 1}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestResyncSweepsBothKinds(t *testing.T) {
	store := &fakeEntityStore{
		jobs: map[domain.EntityID]*domain.Job{
			1: {ID: 1, Title: "A"},
			2: {ID: 2, Title: "B"},
		},
		users: map[domain.EntityID]*domain.User{
			3: {ID: 3, Type: domain.UserTypeJobseeker, Name: "C"},
		},
	}
	index := &fakeIndex{}
	svc := New(store, index, zap.NewNop())

	if err := svc.Resync(context.Background()); err != nil {
		t.Fatalf("Resync() error = %v", err)
	}
	if !index.ensured {
		t.Error("expected EnsureIndexes call")
	}
	if len(index.upserts) != 3 {
		t.Errorf("expected 3 upserts, got %d", len(index.upserts))
	}
}

func TestResyncReportsPerEntityFailures(t *testing.T) {
	store := &fakeEntityStore{
		jobs: map[domain.EntityID]*domain.Job{1: {ID: 1, Title: "A"}},
	}
	index := &fakeIndex{upsertErr: errors.New("embed down")}
	svc := New(store, index, zap.NewNop())

	if err := svc.Resync(context.Background()); err == nil {
		t.Fatal("expected aggregated failure error")
	}
}

func TestJobEmbeddingTextSkipsEmptyParts(t *testing.T) {
	text := JobEmbeddingText(&domain.Job{Title: "DevOps"})
	if text != "DevOps" {
		t.Errorf("text = %q, want just the title", text)
	}
}
