// Package filter turns optional query arguments into SQL predicates.
//
// Each filter type binds its fields to named predicate builders. Where
// composes the builders of the supplied fields with AND; a filter with no
// supplied field yields a nil predicate, which squirrel ignores.
package filter

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Table aliases the repositories select from.
const (
	CustomerAlias = "c"
	ProductAlias  = "p"
	OrderAlias    = "o"
)

type predicate[F any] struct {
	name  string
	build func(F) sq.Sqlizer
}

func where[F any](f F, preds []predicate[F]) sq.Sqlizer {
	var and sq.And
	for _, p := range preds {
		if expr := p.build(f); expr != nil {
			and = append(and, expr)
		}
	}
	if len(and) == 0 {
		return nil
	}
	return and
}

func applied[F any](f F, preds []predicate[F]) []string {
	var names []string
	for _, p := range preds {
		if p.build(f) != nil {
			names = append(names, p.name)
		}
	}
	return names
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// containsFold is a case-insensitive substring match. Empty input means
// the argument was not supplied.
func containsFold(column string, v *string) sq.Sqlizer {
	if v == nil || *v == "" {
		return nil
	}
	return sq.ILike{column: "%" + escapeLike(*v) + "%"}
}

func startsWith(column string, v *string) sq.Sqlizer {
	if v == nil || *v == "" {
		return nil
	}
	return sq.Like{column: escapeLike(*v) + "%"}
}

func gte[T any](column string, v *T) sq.Sqlizer {
	if v == nil {
		return nil
	}
	return sq.GtOrEq{column: *v}
}

func lte[T any](column string, v *T) sq.Sqlizer {
	if v == nil {
		return nil
	}
	return sq.LtOrEq{column: *v}
}

func eq[T any](column string, v *T) sq.Sqlizer {
	if v == nil {
		return nil
	}
	return sq.Eq{column: *v}
}

func col(alias, name string) string {
	return alias + "." + name
}
