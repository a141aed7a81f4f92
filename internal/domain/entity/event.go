package entity

import "time"

// EventStatus estado del ciclo de vida de un evento.
type EventStatus string

// Estados válidos para Event.
const (
	EventStatusPlanned    EventStatus = "planned"
	EventStatusInProgress EventStatus = "in-progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

// eventTransitions: planned → in-progress → completed; cancelled desde planned o in-progress.
var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusPlanned:    {EventStatusInProgress, EventStatusCancelled},
	EventStatusInProgress: {EventStatusCompleted, EventStatusCancelled},
}

// Valid indica si el estado pertenece al enumerado.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusPlanned, EventStatusInProgress, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// IsTerminal indica si el estado ya no admite transiciones.
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusCompleted || s == EventStatusCancelled
}

// Event representa un evento del calendario al que se asignan productos.
type Event struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Date      time.Time   `json:"date"`           // fecha de calendario (medianoche UTC)
	Time      *string     `json:"time,omitempty"` // hora opcional HH:MM
	Status    EventStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	CreatedBy string      `json:"createdBy"` // referencia débil a User; vacío si no había sesión
}

// AcceptsAllocations indica si el evento admite nuevas asignaciones.
func (e *Event) AcceptsAllocations() bool {
	return !e.Status.IsTerminal()
}

// CanTransitionTo valida el cambio de estado según la máquina de estados del evento.
func (e *Event) CanTransitionTo(next EventStatus) bool {
	for _, s := range eventTransitions[e.Status] {
		if s == next {
			return true
		}
	}
	return false
}
