package services

func (a *authService) Subscribe() (<-chan Snapshot, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.nextID
	a.nextID++
	ch := make(chan Snapshot, 1)
	ch <- a.sess.snapshot()
	a.subs[id] = ch

	var cancelled bool
	cancel := func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if cancelled {
			return
		}
		cancelled = true
		delete(a.subs, id)
		close(ch)
	}
	return ch, cancel
}

// publishLocked hands the current snapshot to every subscriber, replacing
// any snapshot the subscriber has not read yet. Callers hold a.mu.
func (a *authService) publishLocked() {
	if len(a.subs) == 0 {
		return
	}
	snap := a.sess.snapshot()
	for _, ch := range a.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
