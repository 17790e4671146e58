package store

import "sync"

// notifier is the observer registry behind live queries. Subscriptions are
// keyed by the set of tables a query reads; a write to any of those tables
// signals the subscription. Signals are coalesced: a pending signal that has
// not been consumed yet absorbs later ones.
type notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscription
}

// subscription is one live query's invalidation channel.
type subscription struct {
	id     int
	tables map[string]struct{}
	ch     chan struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]*subscription)}
}

// subscribe registers interest in the given tables.
func (n *notifier) subscribe(tables ...string) *subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	sub := &subscription{
		id:     n.nextID,
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan struct{}, 1),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}
	n.nextID++
	n.subs[sub.id] = sub
	return sub
}

// unsubscribe removes a subscription. Safe to call more than once.
func (n *notifier) unsubscribe(sub *subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs, sub.id)
}

// notify signals every subscription watching any of the given tables.
// The send never blocks: the buffered slot holds at most one pending signal.
func (n *notifier) notify(tables ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, sub := range n.subs {
		for _, t := range tables {
			if _, ok := sub.tables[t]; !ok {
				continue
			}
			select {
			case sub.ch <- struct{}{}:
			default:
			}
			break
		}
	}
}
