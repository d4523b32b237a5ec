package ui

import (
	"sync"
	"time"
)

type MessageKind string

const (
	KindError   MessageKind = "error"
	KindSuccess MessageKind = "success"
)

// DefaultMessageTTL is how long a message stays visible.
const DefaultMessageTTL = 5 * time.Second

type Message struct {
	Text string
	Kind MessageKind
}

// Banner shows one transient message at a time. Each new message restarts the
// dismissal timer; an identical message leaves the running timer alone.
type Banner struct {
	mu       sync.Mutex
	ttl      time.Duration
	current  Message
	timer    *time.Timer
	gen      uint64
	onExpire func(Message)
}

// NewBanner creates a banner whose messages expire after ttl. onExpire, if set,
// is called outside the banner's lock with the message that just expired.
func NewBanner(ttl time.Duration, onExpire func(Message)) *Banner {
	if ttl <= 0 {
		ttl = DefaultMessageTTL
	}
	return &Banner{ttl: ttl, onExpire: onExpire}
}

// Show replaces the visible message. An empty text hides the banner.
func (b *Banner) Show(m Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if m == b.current {
		return
	}

	b.stopLocked()
	b.current = m
	if m.Text == "" {
		return
	}

	gen := b.gen
	b.timer = time.AfterFunc(b.ttl, func() { b.expire(gen) })
}

// Current returns the visible message, if any.
func (b *Banner) Current() (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.current.Text != ""
}

// Close cancels any pending dismissal. The banner stays usable.
func (b *Banner) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopLocked()
}

func (b *Banner) stopLocked() {
	b.gen++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Banner) expire(gen uint64) {
	b.mu.Lock()
	if gen != b.gen {
		// superseded by a newer message or cancelled
		b.mu.Unlock()
		return
	}
	expired := b.current
	b.current = Message{}
	b.timer = nil
	b.mu.Unlock()

	if b.onExpire != nil {
		b.onExpire(expired)
	}
}
