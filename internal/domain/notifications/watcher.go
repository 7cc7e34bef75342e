package notifications

import (
	"context"

	"barangay-pet-registry/internal/platform/bus"
)

// feedEntry define qué señales del bus merecen un aviso en el feed.
// Los eventos no llevan payload, así que el texto es genérico; el panel
// re-consulta la vista que le interese al recibir la señal.
type feedEntry struct {
	title   string
	message string
	typ     Type
}

var watchedKinds = map[bus.Kind]feedEntry{
	bus.KindStrays: {
		title:   "Stray report activity",
		message: "A stray report was filed or updated.",
		typ:     TypeWarning,
	},
	bus.KindIncidents: {
		title:   "Bite incident activity",
		message: "A bite incident record changed.",
		typ:     TypeWarning,
	},
	bus.KindAnnouncements: {
		title:   "Announcement activity",
		message: "The announcement board changed.",
		typ:     TypeInfo,
	},
}

// WatchBus consume señales de cambio de otros dominios y las vuelve
// avisos del feed. Corre hasta que se cancele el ctx o el bus cierre
// el canal. KindNotifications no está en la tabla: sin eso habría
// feedback (cada Add publica su propia señal).
func (s *Service) WatchBus(ctx context.Context, b *bus.Bus) {
	events, cancel := b.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case e, open := <-events:
			if !open {
				return
			}
			entry, ok := watchedKinds[e.Kind]
			if !ok {
				continue
			}
			s.Add(ctx, e.BarangayID, entry.title, entry.message, entry.typ)
		}
	}
}
