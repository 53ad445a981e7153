package reservations

// Reservation statuses. A reservation starts pending; confirmed and
// cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// CanTransition reports whether the lifecycle allows moving from one status
// to another. Only pending moves anywhere; requests out of a terminal state
// are rejected, never silently ignored.
func CanTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusConfirmed || to == StatusCancelled
}
