// Package characters holds the Blood on the Clocktower character catalog the
// bot answers lookups from.
//
// The catalog is loaded once at startup from the CSV produced by
// cmd/buildcharacters (columns name, rule, flavor, type, link). Loading aborts
// on the first malformed row so a partially loaded catalog never serves
// lookups. A Resolver built over the catalog maps every alias of every
// character (case variants of the name and of its compact form) to the
// character, keeping the first-loaded character when two aliases collide.
package characters
