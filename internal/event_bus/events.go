package event_bus

// EventTypeModelChanged is published after every successful planner
// mutation, including wholesale replacement. Data carries the
// post-mutation model snapshot (a planner.DataModel).
const EventTypeModelChanged EventType = "planner.model.changed"
