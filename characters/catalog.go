package characters

import (
	"fmt"
	"os"
	"strings"
)

// Row is one raw dataset record as read from, or written to, the CSV file.
type Row struct {
	Name   string
	Rule   string
	Flavor string
	Type   string
	Link   string
}

// Character is a loaded catalog entry. Rule and Flavor may hold the "N/A"
// placeholder written by the builder when the wiki page had no such text;
// it is shown to users as-is.
type Character struct {
	Name   string
	Type   Type
	Rule   string
	Flavor string
	Link   string
}

// Icon returns the wiki URL of the character's token icon.
func (c Character) Icon() string {
	return "https://wiki.bloodontheclocktower.com/File:Icon_" + lower(c.Name) + ".png"
}

// Catalog is the ordered, immutable set of characters loaded at startup.
type Catalog struct {
	characters []Character
}

// Load builds a catalog from rows in order. It stops at the first malformed
// row and returns a *MalformedRowError naming the row and field. Rows with
// the same name are all kept.
func Load(rows []Row) (*Catalog, error) {
	out := make([]Character, 0, len(rows))
	for i, r := range rows {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, &MalformedRowError{Row: i + 1, Field: "name", Value: r.Name}
		}
		t, err := ParseType(r.Type)
		if err != nil {
			return nil, &MalformedRowError{Row: i + 1, Field: "type", Value: r.Type, Err: err}
		}
		out = append(out, Character{
			Name:   name,
			Type:   t,
			Rule:   r.Rule,
			Flavor: r.Flavor,
			Link:   r.Link,
		})
	}
	return &Catalog{characters: out}, nil
}

// LoadFile reads the CSV dataset at path and loads it.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // G304: dataset path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("open characters file: %w", err)
	}
	defer func() { _ = f.Close() }()
	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c, err := Load(rows)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// Len returns the number of loaded characters.
func (c *Catalog) Len() int { return len(c.characters) }

// All returns the characters in load order. The slice is a copy.
func (c *Catalog) All() []Character {
	out := make([]Character, len(c.characters))
	copy(out, c.characters)
	return out
}
