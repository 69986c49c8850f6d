package engine

// TimerID identifies a scheduled timer within a session.
type TimerID int

type timer struct {
	id        TimerID
	gen       uint64
	remaining float64
	period    float64 // 0 for one-shot
	fn        func(s *Session)
	cancelled bool
}

// Timers holds delayed and repeating callbacks measured in simulated time.
// Every timer remembers the session generation it was created in and is
// discarded, unfired, once the session has been reset.
type Timers struct {
	list   []*timer
	nextID TimerID
}

func (t *Timers) add(gen uint64, delay, period float64, fn func(s *Session)) TimerID {
	t.nextID++
	t.list = append(t.list, &timer{id: t.nextID, gen: gen, remaining: delay, period: period, fn: fn})
	return t.nextID
}

// Cancel stops a timer. Unknown IDs are ignored.
func (t *Timers) Cancel(id TimerID) {
	for _, tm := range t.list {
		if tm.id == id {
			tm.cancelled = true
		}
	}
}

// Pending returns the number of live timers.
func (t *Timers) Pending() int {
	n := 0
	for _, tm := range t.list {
		if !tm.cancelled {
			n++
		}
	}
	return n
}

// clear drops every timer.
func (t *Timers) clear() {
	t.list = nil
}

// advance moves every timer forward by dt and fires the due ones. Timers
// created by a callback start counting on the next advance. A callback may
// cancel any timer, itself included; the list is compacted afterwards.
func (t *Timers) advance(s *Session, dt float64) {
	due := t.list
	for _, tm := range due {
		if tm.cancelled || tm.gen != s.generation {
			tm.cancelled = true
			continue
		}
		tm.remaining -= dt
		if tm.remaining > 0 || !s.Running() {
			continue
		}
		if tm.period == 0 {
			tm.cancelled = true
		}
		tm.fn(s)
		if !tm.cancelled {
			tm.remaining += tm.period
			if tm.remaining <= 0 {
				tm.remaining = tm.period
			}
		}
	}
	t.compact()
}

// compact drops cancelled timers, keeping creation order.
func (t *Timers) compact() {
	kept := t.list[:0]
	for _, tm := range t.list {
		if !tm.cancelled {
			kept = append(kept, tm)
		}
	}
	clear(t.list[len(kept):])
	t.list = kept
}

type timersSnapshot struct {
	list   []timer
	nextID TimerID
}

func (t *Timers) snapshot() timersSnapshot {
	snap := timersSnapshot{list: make([]timer, len(t.list)), nextID: t.nextID}
	for i, tm := range t.list {
		snap.list[i] = *tm
	}
	return snap
}

func (t *Timers) restore(snap timersSnapshot) {
	t.list = make([]*timer, len(snap.list))
	for i := range snap.list {
		tm := snap.list[i]
		t.list[i] = &tm
	}
	t.nextID = snap.nextID
}
