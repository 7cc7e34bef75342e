package notifications

import (
	"context"
	"sync"
	"testing"
	"time"

	"barangay-pet-registry/internal/platform/bus"
)

// lockedRepo envuelve fakeRepo para el watcher, que escribe desde otra
// goroutine.
type lockedRepo struct {
	mu sync.Mutex
	fakeRepo
}

func (r *lockedRepo) Create(ctx context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fakeRepo.Create(ctx, n)
}

func (r *lockedRepo) snapshot() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

func TestWatchBusTranslatesDomainSignals(t *testing.T) {
	repo := &lockedRepo{}
	b := bus.New()
	svc := NewService(repo, b)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.WatchBus(ctx, b)

	// darle tiempo al Subscribe antes de publicar
	waitFor(t, func() bool {
		b.Publish(bus.Event{Kind: bus.KindStrays, BarangayID: "bgy-1"})
		return len(repo.snapshot()) > 0
	})

	items := repo.snapshot()
	n := items[0]
	if n.BarangayID != "bgy-1" {
		t.Fatalf("barangay = %q", n.BarangayID)
	}
	if n.Type != TypeWarning {
		t.Fatalf("type = %q, want warning", n.Type)
	}
	if n.Title == "" {
		t.Fatal("el aviso quedó sin título")
	}
}

func TestWatchBusIgnoresUnwatchedKinds(t *testing.T) {
	repo := &lockedRepo{}
	b := bus.New()
	svc := NewService(repo, b)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.WatchBus(ctx, b)

	// KindNotifications no debe realimentarse; KindOwners tampoco avisa
	b.Publish(bus.Event{Kind: bus.KindNotifications, BarangayID: "bgy-1"})
	b.Publish(bus.Event{Kind: bus.KindOwners, BarangayID: "bgy-1"})

	// luego una señal observada: si llegó, las anteriores ya se procesaron
	waitFor(t, func() bool {
		b.Publish(bus.Event{Kind: bus.KindIncidents, BarangayID: "bgy-1"})
		return len(repo.snapshot()) > 0
	})

	for _, n := range repo.snapshot() {
		if n.Title != watchedKinds[bus.KindIncidents].title {
			t.Fatalf("aviso inesperado: %+v", n)
		}
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condición no alcanzada a tiempo")
}
