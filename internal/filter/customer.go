package filter

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

// CustomerFilter narrows the customer listing. Nil fields are not applied.
type CustomerFilter struct {
	Name         *string
	Email        *string
	CreatedAtGte *time.Time
	CreatedAtLte *time.Time
	// PhonePattern matches phones starting with this literal prefix.
	PhonePattern *string
}

var customerPredicates = []predicate[CustomerFilter]{
	{"name", func(f CustomerFilter) sq.Sqlizer { return containsFold(col(CustomerAlias, "name"), f.Name) }},
	{"email", func(f CustomerFilter) sq.Sqlizer { return containsFold(col(CustomerAlias, "email"), f.Email) }},
	{"createdAtGte", func(f CustomerFilter) sq.Sqlizer { return gte(col(CustomerAlias, "created_at"), f.CreatedAtGte) }},
	{"createdAtLte", func(f CustomerFilter) sq.Sqlizer { return lte(col(CustomerAlias, "created_at"), f.CreatedAtLte) }},
	{"phonePattern", func(f CustomerFilter) sq.Sqlizer { return startsWith(col(CustomerAlias, "phone"), f.PhonePattern) }},
}

// Where returns the AND of the supplied predicates, or nil.
func (f CustomerFilter) Where() sq.Sqlizer {
	return where(f, customerPredicates)
}

// Applied lists the names of the supplied predicates.
func (f CustomerFilter) Applied() []string {
	return applied(f, customerPredicates)
}
