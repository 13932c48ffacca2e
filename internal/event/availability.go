package event

// Availability is the outcome of the registration gate for one event.
type Availability string

const (
	// Open means a new registration may proceed.
	Open Availability = "open"
	// ClosedByOrganizer means the organizer switched registration off.
	// This verdict wins even when the event is also at capacity.
	ClosedByOrganizer Availability = "closed_by_organizer"
	// Full means every seat is taken.
	Full Availability = "full"
)

// CanRegister applies the availability rules to an event and its current
// registration count. Capacity <= 0 means the event has no seat limit.
func CanRegister(e *Event, registeredCount int64) Availability {
	if !e.RegistrationOpen {
		return ClosedByOrganizer
	}
	if e.Capacity > 0 && registeredCount >= int64(e.Capacity) {
		return Full
	}
	return Open
}
