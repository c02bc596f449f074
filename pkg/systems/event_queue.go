package systems

import "container/heap"

// ScheduledEvent runs once the simulation clock reaches its fire time.
// Callbacks must re-check the liveness of anything they captured.
type ScheduledEvent func(now float64)

type queuedEvent struct {
	at  float64
	seq uint64
	fn  ScheduledEvent
}

type eventHeap []queuedEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(queuedEvent)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = queuedEvent{}
	*h = old[:n-1]
	return item
}

// EventQueue holds delayed simulation effects ordered by fire time. Events
// with the same fire time run in scheduling order.
type EventQueue struct {
	events eventHeap
	seq    uint64
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Schedule queues fn to run at simulation time at.
func (q *EventQueue) Schedule(at float64, fn ScheduledEvent) {
	q.seq++
	heap.Push(&q.events, queuedEvent{at: at, seq: q.seq, fn: fn})
}

// Update runs every event due at or before now. Events scheduled by a
// callback for a time <= now also run in this call.
func (q *EventQueue) Update(now float64) int {
	ran := 0
	for len(q.events) > 0 && q.events[0].at <= now {
		ev := heap.Pop(&q.events).(queuedEvent)
		ev.fn(now)
		ran++
	}
	return ran
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Clear drops every pending event.
func (q *EventQueue) Clear() {
	q.events = nil
}
