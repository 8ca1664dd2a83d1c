// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"sync"

	"github.com/google/uuid"
)

// Subscriber receives decrypted telemetry fanned out by the server. A
// subscriber that cannot accept a record (closed, or its buffer is full) is
// evicted from the set; other subscribers are unaffected.
type Subscriber struct {
	id  uuid.UUID
	set *subscriberSet

	mu     sync.Mutex
	closed bool
	ch     chan Telemetry
}

// Telemetry returns the channel records are delivered on. It is closed when
// the subscriber is closed or evicted.
func (s *Subscriber) Telemetry() <-chan Telemetry {
	return s.ch
}

// Close unsubscribes and closes the telemetry channel. Safe to call more
// than once and concurrently with an ongoing fan-out.
func (s *Subscriber) Close() {
	s.set.remove(s.id)
	s.close()
}

func (s *Subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// deliver attempts a non-blocking delivery. false means the subscriber is
// gone or saturated and should be evicted.
func (s *Subscriber) deliver(t Telemetry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- t:
		return true
	default:
		return false
	}
}

// subscriberSet is the concurrently mutated set of telemetry subscribers,
// keyed by subscriber identity.
type subscriberSet struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscriber
}

func newSubscriberSet() *subscriberSet {
	return &subscriberSet{
		subs: map[uuid.UUID]*Subscriber{},
	}
}

func (ss *subscriberSet) add() *Subscriber {
	sub := &Subscriber{
		id:  uuid.New(),
		set: ss,
		ch:  make(chan Telemetry, subscriberBuffer),
	}

	ss.mu.Lock()
	ss.subs[sub.id] = sub
	ss.mu.Unlock()

	return sub
}

func (ss *subscriberSet) remove(id uuid.UUID) {
	ss.mu.Lock()
	delete(ss.subs, id)
	ss.mu.Unlock()
}

// snapshot returns a stable copy for fan-out iteration, so concurrent
// connects and disconnects neither skip nor double-deliver.
func (ss *subscriberSet) snapshot() []*Subscriber {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	subs := make([]*Subscriber, 0, len(ss.subs))
	for _, sub := range ss.subs {
		subs = append(subs, sub)
	}

	return subs
}

func (ss *subscriberSet) len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	return len(ss.subs)
}
