package ballbreaker

// contactKey identifies a ball/target overlap.
type contactKey struct {
	BallID   int
	TargetID int
}

// contactTracker records ongoing overlaps so a hit fires once per contact
// instead of once per substep. The simulation is single-threaded, so no
// locking is needed.
type contactTracker struct {
	active map[contactKey]struct{}
}

func newContactTracker() *contactTracker {
	return &contactTracker{active: make(map[contactKey]struct{})}
}

// Begin registers a contact and reports whether it is new.
func (t *contactTracker) Begin(key contactKey) bool {
	if _, ok := t.active[key]; ok {
		return false
	}
	t.active[key] = struct{}{}
	return true
}

// End removes a contact.
func (t *contactTracker) End(key contactKey) {
	delete(t.active, key)
}

// ForgetBall drops every contact of a ball that left play.
func (t *contactTracker) ForgetBall(ballID int) {
	for key := range t.active {
		if key.BallID == ballID {
			delete(t.active, key)
		}
	}
}

// Clear drops all contacts.
func (t *contactTracker) Clear() {
	clear(t.active)
}
