package announcements

import (
	"context"
	"sort"
	"testing"
	"time"
)

type fakeRepo struct {
	items map[string]Announcement
	// nombres simula la tabla de usuarios para el join del listado.
	nombres map[string][2]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:   map[string]Announcement{},
		nombres: map[string][2]string{},
	}
}

func (f *fakeRepo) Create(_ context.Context, a Announcement) error {
	f.items[a.ID] = a
	return nil
}

func (f *fakeRepo) ListByBarangay(_ context.Context, barangayID string) ([]Announcement, error) {
	out := []Announcement{}
	for _, a := range f.items {
		if a.BarangayID != barangayID {
			continue
		}
		if autor, ok := f.nombres[a.AuthorID]; ok {
			a.AuthorName = autor[0]
			a.AuthorRole = autor[1]
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DatePosted.After(out[j].DatePosted) })
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, barangayID, id string) (Announcement, error) {
	a, ok := f.items[id]
	if !ok || a.BarangayID != barangayID {
		return Announcement{}, ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) Delete(_ context.Context, barangayID, id string) error {
	a, ok := f.items[id]
	if !ok || a.BarangayID != barangayID {
		return ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) IncrementLikes(_ context.Context, barangayID, id string) (int, error) {
	a, ok := f.items[id]
	if !ok || a.BarangayID != barangayID {
		return 0, ErrNotFound
	}
	a.Likes++
	f.items[id] = a
	return a.Likes, nil
}

func newTestService(repo *fakeRepo) *Service {
	s := NewService(repo, nil, nil)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		base = base.Add(time.Minute)
		return base
	}
	return s
}

func validInput() CreateInput {
	return CreateInput{
		Title:    "Rabies vaccination drive",
		Content:  "Free anti-rabies shots this Saturday at the covered court.",
		Category: CategoryHealth,
	}
}

func TestCreateResolvesLinkPreview(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := validInput()
	in.Link = "https://www.youtube.com/watch?v=abc"
	a, err := svc.Create(context.Background(), "bgy-1", "user-1", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.LinkPreview == nil || a.LinkPreview.Domain != "youtube.com" {
		t.Fatalf("preview = %+v", a.LinkPreview)
	}
}

func TestCreateRejectsBadCategory(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := validInput()
	in.Category = Category("Gossip")
	if _, err := svc.Create(context.Background(), "bgy-1", "user-1", in); err != ErrInvalidInput {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestListNewestFirstWithAuthorFallback(t *testing.T) {
	repo := newFakeRepo()
	repo.nombres["user-1"] = [2]string{"Maria Reyes", "Admin"}
	svc := newTestService(repo)

	first, _ := svc.Create(context.Background(), "bgy-1", "user-1", validInput())
	second, _ := svc.Create(context.Background(), "bgy-1", "user-borrado", validInput())

	items, err := svc.List(context.Background(), "bgy-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatal("el orden no es del más reciente al más antiguo")
	}
	if items[0].AuthorName != "Unknown" || items[0].AuthorRole != "Staff" {
		t.Fatalf("fallback de autor = %q/%q", items[0].AuthorName, items[0].AuthorRole)
	}
	if items[1].AuthorName != "Maria Reyes" || items[1].AuthorRole != "Admin" {
		t.Fatalf("autor resuelto = %q/%q", items[1].AuthorName, items[1].AuthorRole)
	}
}

func TestLikeIncrements(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	a, _ := svc.Create(context.Background(), "bgy-1", "user-1", validInput())

	for want := 1; want <= 3; want++ {
		likes, err := svc.Like(context.Background(), "bgy-1", a.ID)
		if err != nil {
			t.Fatalf("like: %v", err)
		}
		if likes != want {
			t.Fatalf("likes = %d, want %d", likes, want)
		}
	}
}

func TestDeleteIsTenantScoped(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	a, _ := svc.Create(context.Background(), "bgy-1", "user-1", validInput())

	if err := svc.Delete(context.Background(), "bgy-2", a.ID); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), "bgy-1", a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
