package booking

const adultAge = 18

// Guest is one occupant on the booking form.
type Guest struct {
	FullName string
	Age      int
}

// HasAdult reports whether at least one guest is of legal booking age. The
// same predicate gates the form submit and runs again right before the
// booking is persisted, so a stale UI state cannot sneak a minor-only party
// through.
func HasAdult(guests []Guest) bool {
	for _, g := range guests {
		if g.Age >= adultAge {
			return true
		}
	}
	return false
}
