// Package registry keeps the dice known to the process, shared between the HTTP
// service, the terminal editor and the table watcher.
package registry

import (
	"sync"

	"github.com/df-mc/atomic"
	"github.com/smell-of-curry/dieface/dieface/author"
	"github.com/smell-of-curry/dieface/dieface/die"
	"github.com/smell-of-curry/dieface/dieface/table"
)

// Entry is a named die. Readers get immutable snapshots; edits are applied to a
// copy and swapped in as a whole.
type Entry struct {
	conf     atomic.Value[table.Config]
	d        atomic.Value[*die.Die]
	revision atomic.Int64

	mu sync.Mutex
}

// NewEntry ...
func NewEntry(conf table.Config) (*Entry, error) {
	d, err := conf.Die()
	if err != nil {
		return nil, err
	}
	e := &Entry{}
	e.conf.Store(conf)
	e.d.Store(d)
	return e, nil
}

// Identifier ...
func (e *Entry) Identifier() string {
	return e.conf.Load().Identifier
}

// Name ...
func (e *Entry) Name() string {
	return e.conf.Load().Name
}

// Die returns the current snapshot. It must not be modified.
func (e *Entry) Die() *die.Die {
	return e.d.Load()
}

// Revision counts the changes made to the entry since it was created.
func (e *Entry) Revision() int64 {
	return e.revision.Load()
}

// Config returns the table config of the current snapshot.
func (e *Entry) Config() table.Config {
	return e.conf.Load().WithDie(e.Die())
}

// Update runs f on an editor over a copy of the die. The copy replaces the
// current die only if f succeeds.
func (e *Entry) Update(f func(ed *author.Editor) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ed := author.NewEditor(e.Die().Clone())
	if err := f(ed); err != nil {
		return err
	}
	e.d.Store(ed.Die())
	e.revision.Inc()
	return nil
}

// Replace swaps in a die built from conf, such as one reloaded from disk. The
// identifier of conf is ignored.
func (e *Entry) Replace(conf table.Config) error {
	d, err := conf.Die()
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	conf.Identifier = e.Identifier()
	e.conf.Store(conf)
	e.d.Store(d)
	e.revision.Inc()
	return nil
}
