package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/smell-of-curry/dieface/dieface/table"
)

// entries ...
var entries sync.Map

// Register ...
func Register(e *Entry) {
	entries.Store(e.Identifier(), e)
}

// Remove ...
func Remove(identifier string) {
	entries.Delete(identifier)
}

// FromIdentifier ...
func FromIdentifier(identifier string) *Entry {
	if e, ok := entries.Load(identifier); ok {
		return e.(*Entry)
	}
	return nil
}

// All ...
func All() map[string]*Entry {
	result := make(map[string]*Entry)
	entries.Range(func(key, value any) bool {
		result[key.(string)] = value.(*Entry)
		return true
	})
	return result
}

// Identifiers returns the registered identifiers in sorted order.
func Identifiers() []string {
	ids := lo.Keys(All())
	slices.Sort(ids)
	return ids
}

// Load registers an entry for conf, or replaces the die of the entry already
// registered under its identifier.
func Load(conf table.Config) (*Entry, error) {
	if e := FromIdentifier(conf.Identifier); e != nil {
		return e, e.Replace(conf)
	}
	e, err := NewEntry(conf)
	if err != nil {
		return nil, err
	}
	Register(e)
	return e, nil
}

// LoadAll registers every config. Configs that fail to build are logged and
// skipped; the number of failures is reported as an error.
func LoadAll(log *slog.Logger, cfgs []table.Config) error {
	var failed int
	for _, cfg := range cfgs {
		if _, err := Load(cfg); err != nil {
			log.Error("failed to load side table", "identifier", cfg.Identifier, "path", cfg.Path(), "error", err)
			failed++
			continue
		}
		log.Debug("Loaded side table", "identifier", cfg.Identifier, "sides", len(cfg.Sides), "preset", cfg.Preset)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d side tables failed to load", failed, len(cfgs))
	}
	return nil
}
