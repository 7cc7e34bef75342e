package bus

import "sync"

// Kind identifica qué familia de datos cambió. Los listeners pueden
// refrescar solo lo que les interesa en vez de re-fetch total.
type Kind string

const (
	KindPets          Kind = "pets"
	KindOwners        Kind = "owners"
	KindVaccinations  Kind = "vaccinations"
	KindIncidents     Kind = "incidents"
	KindStrays        Kind = "strays"
	KindUsers         Kind = "users"
	KindSettings      Kind = "settings"
	KindNotifications Kind = "notifications"
	KindAnnouncements Kind = "announcements"
)

// Event es la señal de cambio. No lleva payload: los interesados
// re-consultan su propia vista (poll-on-signal).
type Event struct {
	Kind       Kind
	BarangayID string
}

// Bus es un pub/sub en proceso. Publish nunca bloquea: si el canal de
// un subscriber está lleno, el evento se descarta para ese subscriber
// (el próximo refresh lo cubre).
type Bus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func New() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe retorna el canal de eventos y una función para darse de baja.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++

	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			// subscriber lento: se descarta
		}
	}
}
