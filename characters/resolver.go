package characters

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// compactCutset holds the characters dropped from a name to form its compact
// alias, e.g. "Fortune Teller" -> "FortuneTeller", "Lil' Monsta" -> "LilMonsta".
const compactCutset = " .`'-!"

// Aliases returns every string that resolves to c: the lower, upper and
// capitalized forms of its name and of its compact name.
func (c Character) Aliases() []string {
	compact := strings.Map(func(r rune) rune {
		if strings.ContainsRune(compactCutset, r) {
			return -1
		}
		return r
	}, c.Name)
	return []string{
		lower(c.Name),
		upper(c.Name),
		capitalize(c.Name),
		lower(compact),
		upper(compact),
		capitalize(compact),
	}
}

// Resolver maps chat input to catalog characters by exact alias match.
// It is read-only after construction.
type Resolver struct {
	byAlias map[string]Character
}

// NewResolver indexes every alias of every character in catalog order. When
// two characters share an alias the first one loaded keeps it.
func NewResolver(c *Catalog) *Resolver {
	r := &Resolver{byAlias: make(map[string]Character, len(c.characters)*6)}
	for _, ch := range c.characters {
		for _, a := range ch.Aliases() {
			if _, taken := r.byAlias[a]; taken {
				continue
			}
			r.byAlias[a] = ch
		}
	}
	return r
}

// Resolve lower-cases input and looks it up. The caller strips any command
// prefix. A miss returns false; it is not an error.
func (r *Resolver) Resolve(input string) (Character, bool) {
	if input == "" {
		return Character{}, false
	}
	ch, ok := r.byAlias[lower(input)]
	return ch, ok
}

// Casers are not safe for concurrent use, so each call builds its own.
func lower(s string) string { return cases.Lower(language.Und).String(s) }

func upper(s string) string { return cases.Upper(language.Und).String(s) }

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return upper(s[:size]) + lower(s[size:])
}
