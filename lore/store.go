// Package lore holds the per-channel, moderator-settable text fields the bot
// repeats on request, such as the Amnesiac's ability for the current game.
//
// A Store is created over the fixed set of channels the bot joins. Every
// (channel, field) cell starts unset and can only move to a set value; there
// is no clear operation. Values live for the lifetime of the process.
package lore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Field names one lore field. The value is the command stem used in chat.
type Field string

const (
	Amnesiac    Field = "amne"
	Yaggababble Field = "yag"
	Wizard      Field = "wish"
	Djinn       Field = "djinn"
)

// Fields returns every known field.
func Fields() []Field { return []Field{Amnesiac, Yaggababble, Wizard, Djinn} }

// Label is the human name used in replies, e.g. "Amnesiac Ability".
func (f Field) Label() string {
	switch f {
	case Amnesiac:
		return "Amnesiac Ability"
	case Yaggababble:
		return "Yaggababble Phrase"
	case Wizard:
		return "Wizard's Wish"
	case Djinn:
		return "Djinn's Rule"
	default:
		return string(f)
	}
}

// Noun is what an unset field is missing, e.g. "ability".
func (f Field) Noun() string {
	switch f {
	case Amnesiac:
		return "ability"
	case Yaggababble:
		return "phrase"
	case Wizard:
		return "wish"
	case Djinn:
		return "rule"
	default:
		return "value"
	}
}

var (
	// ErrPermissionDenied is returned by Set when the caller is not a moderator.
	ErrPermissionDenied = errors.New("only moderators can set lore fields")
	// ErrEmptyValue is returned by Set when the value is blank.
	ErrEmptyValue = errors.New("lore value is empty")
)

// UnknownChannelError reports a channel outside the configured set.
type UnknownChannelError struct{ Channel string }

func (e *UnknownChannelError) Error() string {
	return fmt.Sprintf("unknown channel %q", e.Channel)
}

// UnknownFieldError reports a field outside the store's field set.
type UnknownFieldError struct{ Field Field }

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown lore field %q", string(e.Field))
}

// cell is one (channel, field) value. set=false is the unset state; an empty
// string is never stored.
type cell struct {
	value string
	set   bool
}

// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	channels []string
	cells    map[string]map[Field]*cell
}

// NewStore initialises every field of every channel to unset. With no fields
// given, Fields() is used.
func NewStore(channels []string, fields ...Field) *Store {
	if len(fields) == 0 {
		fields = Fields()
	}
	s := &Store{cells: make(map[string]map[Field]*cell, len(channels))}
	for _, ch := range channels {
		ch = NormalizeChannel(ch)
		if ch == "" {
			continue
		}
		if _, dup := s.cells[ch]; dup {
			continue
		}
		row := make(map[Field]*cell, len(fields))
		for _, f := range fields {
			row[f] = &cell{}
		}
		s.cells[ch] = row
		s.channels = append(s.channels, ch)
	}
	return s
}

// NormalizeChannel lower-cases a channel name and strips a leading '#'.
func NormalizeChannel(ch string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ch), "#"))
}

// Channels returns the configured channels in configuration order.
func (s *Store) Channels() []string {
	out := make([]string, len(s.channels))
	copy(out, s.channels)
	return out
}

func (s *Store) lookup(channel string, field Field) (*cell, error) {
	row, ok := s.cells[NormalizeChannel(channel)]
	if !ok {
		return nil, &UnknownChannelError{Channel: channel}
	}
	c, ok := row[field]
	if !ok {
		return nil, &UnknownFieldError{Field: field}
	}
	return c, nil
}

// Get returns the field's value. ok is false while the field is unset.
func (s *Store) Get(channel string, field Field) (value string, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.lookup(channel, field)
	if err != nil {
		return "", false, err
	}
	return c.value, c.set, nil
}

// Set stores value for the field. The moderator check runs before anything
// else, so a denied call never inspects or stores value. Surrounding
// whitespace is trimmed; a blank value yields ErrEmptyValue.
func (s *Store) Set(channel string, field Field, value string, isModerator bool) error {
	if !isModerator {
		return ErrPermissionDenied
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.lookup(channel, field)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrEmptyValue
	}
	c.value = value
	c.set = true
	return nil
}

// Snapshot returns the set fields of a channel, keyed by field.
func (s *Store) Snapshot(channel string) (map[Field]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.cells[NormalizeChannel(channel)]
	if !ok {
		return nil, &UnknownChannelError{Channel: channel}
	}
	out := make(map[Field]string, len(row))
	for f, c := range row {
		if c.set {
			out[f] = c.value
		}
	}
	return out, nil
}
