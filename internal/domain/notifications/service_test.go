package notifications

import (
	"context"
	"sort"
	"testing"
	"time"
)

type fakeRepo struct {
	items []Notification
}

func (f *fakeRepo) Create(_ context.Context, n Notification) error {
	f.items = append(f.items, n)
	return nil
}

func (f *fakeRepo) ListLatest(_ context.Context, barangayID string, limit int) ([]Notification, error) {
	out := []Notification{}
	for _, n := range f.items {
		if n.BarangayID == barangayID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) MarkRead(_ context.Context, barangayID, id string) error {
	for i, n := range f.items {
		if n.BarangayID == barangayID && n.ID == id {
			f.items[i].IsRead = true
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeRepo) MarkAllRead(_ context.Context, barangayID string) error {
	for i, n := range f.items {
		if n.BarangayID == barangayID {
			f.items[i].IsRead = true
		}
	}
	return nil
}

func TestAddWithoutTenantIsNoOp(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	svc.Add(context.Background(), "", "Titulo", "Mensaje", TypeInfo)

	if len(repo.items) != 0 {
		t.Fatalf("se persistió un aviso sin tenant: %+v", repo.items)
	}
}

func TestAddDefaultsTitleAndType(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	svc.Add(context.Background(), "bgy-1", "  ", "Mensaje", Type("loud"))

	if len(repo.items) != 1 {
		t.Fatalf("items = %d", len(repo.items))
	}
	if repo.items[0].Title != "Notice" || repo.items[0].Type != TypeInfo {
		t.Fatalf("aviso = %+v", repo.items[0])
	}
}

func TestListCapsAtTwenty(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		base = base.Add(time.Minute)
		return base
	}

	for i := 0; i < 25; i++ {
		svc.Add(context.Background(), "bgy-1", "Titulo", "Mensaje", TypeInfo)
	}

	items, err := svc.List(context.Background(), "bgy-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 20 {
		t.Fatalf("len = %d, want 20", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Timestamp.After(items[i-1].Timestamp) {
			t.Fatal("la lista no está ordenada del más reciente al más antiguo")
		}
	}
}

func TestMarkAllRead(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	svc.Add(context.Background(), "bgy-1", "A", "m", TypeInfo)
	svc.Add(context.Background(), "bgy-1", "B", "m", TypeWarning)
	svc.Add(context.Background(), "bgy-2", "C", "m", TypeInfo)

	if err := svc.MarkAllRead(context.Background(), "bgy-1"); err != nil {
		t.Fatalf("mark all: %v", err)
	}

	for _, n := range repo.items {
		if n.BarangayID == "bgy-1" && !n.IsRead {
			t.Fatalf("aviso sin leer: %+v", n)
		}
		if n.BarangayID == "bgy-2" && n.IsRead {
			t.Fatal("se marcó un aviso de otro barangay")
		}
	}
}
