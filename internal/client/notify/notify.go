// Package notify keeps the short-lived operator notifications ("toasts").
// A toast is shown once when pushed and stays listable until its TTL runs
// out.
package notify

import (
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/dmitrijs2005/swms/internal/common"
)

// DefaultTTL matches the dashboard's toast lifetime.
const DefaultTTL = 2500 * time.Millisecond

type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Error   Kind = "error"
)

type Toast struct {
	ID      string
	Kind    Kind
	Message string
	At      time.Time
}

// Sink receives every toast as it is pushed.
type Sink func(Toast)

type Notifier struct {
	items *cache.Cache
	ttl   time.Duration
	sink  Sink
	now   func() time.Time
}

// New returns a Notifier whose toasts expire after ttl (DefaultTTL when ttl
// is not positive). sink may be nil.
func New(ttl time.Duration, sink Sink) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{
		items: cache.New(ttl, 2*ttl),
		ttl:   ttl,
		sink:  sink,
		now:   time.Now,
	}
}

func (n *Notifier) Push(kind Kind, msg string) Toast {
	t := Toast{ID: common.NewID("toast"), Kind: kind, Message: msg, At: n.now()}
	n.items.Set(t.ID, t, n.ttl)
	if n.sink != nil {
		n.sink(t)
	}
	return t
}

func (n *Notifier) Info(msg string) Toast    { return n.Push(Info, msg) }
func (n *Notifier) Success(msg string) Toast { return n.Push(Success, msg) }
func (n *Notifier) Error(msg string) Toast   { return n.Push(Error, msg) }

// Remove dismisses a toast before it expires.
func (n *Notifier) Remove(id string) {
	n.items.Delete(id)
}

// Active lists unexpired toasts, oldest first.
func (n *Notifier) Active() []Toast {
	items := n.items.Items()
	out := make([]Toast, 0, len(items))
	for _, it := range items {
		if t, ok := it.Object.(Toast); ok {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At.Equal(out[j].At) {
			return out[i].ID < out[j].ID
		}
		return out[i].At.Before(out[j].At)
	})
	return out
}

func (n *Notifier) TTL() time.Duration { return n.ttl }
