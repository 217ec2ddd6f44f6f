// Package reference holds the read-only lookup lists the employee form
// offers in its selectors.
package reference

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/csg33k/hrnet/internal/domain"
)

//go:embed states.yaml
var statesYAML []byte

// StateList is an ordered, immutable list of region abbreviations.
type StateList struct {
	states []domain.State
	index  map[string]int
}

type stateFile struct {
	States []domain.State `yaml:"states"`
}

// LoadStates decodes a states document and rejects blank or duplicate
// abbreviations.
func LoadStates(r io.Reader) (*StateList, error) {
	var doc stateFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode states: %w", err)
	}
	if len(doc.States) == 0 {
		return nil, errors.New("decode states: empty list")
	}
	l := &StateList{
		states: doc.States,
		index:  make(map[string]int, len(doc.States)),
	}
	for i, s := range doc.States {
		if s.Abbreviation == "" || s.Name == "" {
			return nil, fmt.Errorf("decode states: entry %d is incomplete", i)
		}
		if _, dup := l.index[s.Abbreviation]; dup {
			return nil, fmt.Errorf("decode states: duplicate abbreviation %q", s.Abbreviation)
		}
		l.index[s.Abbreviation] = i
	}
	return l, nil
}

var (
	statesOnce sync.Once
	states     *StateList
)

// States returns the embedded list. It panics if the embedded file is broken,
// which can only happen at build time.
func States() *StateList {
	statesOnce.Do(func() {
		l, err := LoadStates(bytes.NewReader(statesYAML))
		if err != nil {
			panic(err)
		}
		states = l
	})
	return states
}

// All returns a copy of the list in display order.
func (l *StateList) All() []domain.State {
	out := make([]domain.State, len(l.states))
	copy(out, l.states)
	return out
}

// Len is the number of entries.
func (l *StateList) Len() int { return len(l.states) }

// Contains reports whether abbreviation is in the list. Matching is exact.
func (l *StateList) Contains(abbreviation string) bool {
	_, ok := l.index[abbreviation]
	return ok
}

// Name returns the display name for abbreviation.
func (l *StateList) Name(abbreviation string) (string, bool) {
	i, ok := l.index[abbreviation]
	if !ok {
		return "", false
	}
	return l.states[i].Name, true
}
