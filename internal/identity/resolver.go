package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrAliasCollision is returned when one alias is claimed by two canonical
// entries. First-match resolution would silently depend on map order, so the
// table is rejected instead.
var ErrAliasCollision = errors.New("identity: alias mapped to multiple canonical slugs")

var (
	rankPattern   = regexp.MustCompile(`#\d+\s*`)   // "#12 LSU"
	recordPattern = regexp.MustCompile(`\(\d+-\d+\)`) // "(41-15)"
	spacePattern  = regexp.MustCompile(`\s+`)
)

// Resolver maps free-text team names from any source to canonical slugs.
// Lookup is a precomputed hash map built once from the alias table; the
// zero value is not usable, construct with NewResolver.
type Resolver struct {
	aliases map[string]string
}

// NewResolver builds a Resolver from an alias table (canonical slug → list
// of aliases). Every canonical slug is registered as an alias of itself, so
// slugs always resolve to themselves. Aliases are indexed in both spaced and
// underscored forms. An alias claimed by two canonical entries fails with
// ErrAliasCollision.
func NewResolver(table map[string][]string) (*Resolver, error) {
	aliases := make(map[string]string)

	register := func(alias, canonical string) error {
		for _, key := range []string{clean(alias), underscore(clean(alias))} {
			if key == "" {
				continue
			}
			if existing, ok := aliases[key]; ok && existing != canonical {
				return fmt.Errorf("%w: %q claimed by %q and %q", ErrAliasCollision, key, existing, canonical)
			}
			aliases[key] = canonical
		}
		return nil
	}

	for canonical, list := range table {
		if err := register(canonical, canonical); err != nil {
			return nil, err
		}
		for _, alias := range list {
			if err := register(alias, canonical); err != nil {
				return nil, err
			}
		}
	}

	return &Resolver{aliases: aliases}, nil
}

// Normalize resolves a raw team name to its canonical slug. The input is
// cleaned (lowercased, ranking and record decorations stripped, whitespace
// collapsed) and looked up in the alias map; unmatched names fall back to
// the cleaned form with whitespace runs replaced by underscores. Total over
// all inputs and idempotent: Normalize(Normalize(x)) == Normalize(x).
func (r *Resolver) Normalize(name string) string {
	cleaned := clean(name)

	if canonical, ok := r.aliases[cleaned]; ok {
		return canonical
	}

	slug := underscore(cleaned)
	if canonical, ok := r.aliases[slug]; ok {
		return canonical
	}

	return slug
}

// clean lowercases and strips the decorations schedule pages attach to team
// names: ranking prefixes ("#12 "), win-loss records ("(41-15)"), and
// irregular whitespace.
func clean(name string) string {
	name = strings.ToLower(name)
	name = rankPattern.ReplaceAllString(name, "")
	name = recordPattern.ReplaceAllString(name, "")
	name = spacePattern.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

func underscore(cleaned string) string {
	return strings.ReplaceAll(cleaned, " ", "_")
}
