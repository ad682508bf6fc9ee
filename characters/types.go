package characters

import (
	"fmt"
	"strings"
)

// Type is the character type. Values are the canonical spellings stored in
// the dataset.
type Type string

const (
	Townsfolk Type = "Townsfolk"
	Outsider  Type = "Outsider"
	Minion    Type = "Minion"
	Demon     Type = "Demon"
	Traveller Type = "Traveller"
	Fabled    Type = "Fabled"
	Loric     Type = "Loric"
)

// Types lists every character type in display order.
func Types() []Type {
	return []Type{Townsfolk, Outsider, Minion, Demon, Traveller, Fabled, Loric}
}

func (t Type) String() string { return string(t) }

// typeSpellings maps every spelling seen in the wiki (page infoboxes and
// category names) to its canonical type. Keys are lower case.
var typeSpellings = map[string]Type{
	"townsfolk":  Townsfolk,
	"townsfolks": Townsfolk,
	"outsider":   Outsider,
	"outsiders":  Outsider,
	"minion":     Minion,
	"minions":    Minion,
	"demon":      Demon,
	"demons":     Demon,
	"traveller":  Traveller,
	"travellers": Traveller,
	"traveler":   Traveller,
	"travelers":  Traveller,
	"fabled":     Fabled,
	"loric":      Loric,
	"lorics":     Loric,
}

// ParseType returns the canonical type for s. Matching ignores case and
// surrounding whitespace.
func ParseType(s string) (Type, error) {
	if t, ok := typeSpellings[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown character type %q", s)
}
