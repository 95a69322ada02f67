package codec

import (
	"sync/atomic"

	"github.com/aretw0/introspection"
)

// DropReason explains why a cell was excluded from a decoded document.
type DropReason string

const (
	DropNotObject       DropReason = "not_object"
	DropMissingCode     DropReason = "missing_code"
	DropMissingKind     DropReason = "missing_kind"
	DropEmptySource     DropReason = "empty_source"
	DropInvalidLanguage DropReason = "invalid_language"
)

// Drop records one excluded cell. Index is the position in the input.
type Drop struct {
	Index  int        `json:"index" yaml:"index"`
	Reason DropReason `json:"reason" yaml:"reason"`
}

// DefaultReason explains why a decode returned the starter document.
type DefaultReason string

const (
	DefaultEmptyInput DefaultReason = "empty_input"
	DefaultNoCells    DefaultReason = "no_valid_cells"
)

// Report summarizes one decode.
type Report struct {
	Total         int           `json:"total" yaml:"total"`
	Kept          int           `json:"kept" yaml:"kept"`
	Dropped       []Drop        `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	Defaulted     bool          `json:"defaulted" yaml:"defaulted"`
	DefaultReason DefaultReason `json:"default_reason,omitempty" yaml:"default_reason,omitempty"`
}

// Clean reports whether every input cell survived and no fallback happened.
func (r Report) Clean() bool {
	return len(r.Dropped) == 0 && !r.Defaulted
}

// Observer is notified of cells dropped during decode.
// Implementations must be safe for concurrent use.
type Observer interface {
	OnDrop(Drop)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Drop)

// OnDrop implements Observer.
func (f ObserverFunc) OnDrop(d Drop) {
	f(d)
}

// Observers fans a drop out to every non-nil observer.
func Observers(obs ...Observer) Observer {
	var out multiObserver
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) OnDrop(d Drop) {
	for _, o := range m {
		o.OnDrop(d)
	}
}

// DropCounter counts dropped cells by reason.
type DropCounter struct {
	notObject       atomic.Int64
	missingCode     atomic.Int64
	missingKind     atomic.Int64
	emptySource     atomic.Int64
	invalidLanguage atomic.Int64
}

// OnDrop implements Observer.
func (c *DropCounter) OnDrop(d Drop) {
	switch d.Reason {
	case DropNotObject:
		c.notObject.Add(1)
	case DropMissingCode:
		c.missingCode.Add(1)
	case DropMissingKind:
		c.missingKind.Add(1)
	case DropEmptySource:
		c.emptySource.Add(1)
	case DropInvalidLanguage:
		c.invalidLanguage.Add(1)
	}
}

// DropCounterState exposes the counters for observability.
type DropCounterState struct {
	Total    int64                `json:"total"`
	ByReason map[DropReason]int64 `json:"by_reason"`
}

// Snapshot returns the current counts.
func (c *DropCounter) Snapshot() DropCounterState {
	byReason := map[DropReason]int64{
		DropNotObject:       c.notObject.Load(),
		DropMissingCode:     c.missingCode.Load(),
		DropMissingKind:     c.missingKind.Load(),
		DropEmptySource:     c.emptySource.Load(),
		DropInvalidLanguage: c.invalidLanguage.Load(),
	}
	var total int64
	for _, n := range byReason {
		total += n
	}
	return DropCounterState{Total: total, ByReason: byReason}
}

// State implements introspection.Introspectable.
func (c *DropCounter) State() any {
	return c.Snapshot()
}

// ComponentType implements introspection.Component.
func (c *DropCounter) ComponentType() string {
	return "drop-counter"
}

var _ introspection.Introspectable = (*DropCounter)(nil)
var _ introspection.Component = (*DropCounter)(nil)
var _ Observer = (*DropCounter)(nil)
