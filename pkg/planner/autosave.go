package planner

import (
	log "github.com/sirupsen/logrus"
	"github.com/teachplan/teachplan/internal/event_bus"
)

// SubscribeAutosave wires the persistence side of the planner: every
// model-changed event is written to the store with the post-mutation
// snapshot. Write failures are logged and never propagated back into the
// mutation that triggered them; the store keeps the last successful
// save. Returns an unsubscribe function.
func SubscribeAutosave(bus *event_bus.EventBus, store Store) (unsubscribe func()) {
	return bus.Subscribe(event_bus.EventTypeModelChanged, func(e event_bus.Event) error {
		model, ok := e.Data.(DataModel)
		if !ok {
			log.Errorf("autosave: unexpected event payload %T", e.Data)
			return nil
		}
		if err := store.Save(e.Context(), model); err != nil {
			log.Errorf("autosave failed: %v", err)
		}
		return nil
	})
}
