package user

import (
	"sort"
	"strings"
)

// SortKey selects the field a view is ordered by.
type SortKey string

// Supported sort keys.
const (
	SortByName      SortKey = "name"
	SortByEmail     SortKey = "email"
	SortByRole      SortKey = "role"
	SortByCreatedAt SortKey = "createdAt"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Supported sort directions.
const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// RoleFilterAll is the sentinel role filter matching every record.
const RoleFilterAll = "all"

// ViewQuery describes the displayed subset of a collection: an optional
// search term, an optional role filter, and a sort key with direction.
// The zero value sorts by name ascending with no filtering.
type ViewQuery struct {
	Search string
	Role   string
	SortBy SortKey
	Order  SortOrder
}

// Apply runs the view pipeline over users: search filter, then role filter,
// then a stable sort. It returns a new slice and never mutates its input;
// identical inputs always produce identical output.
func (q ViewQuery) Apply(users []User) []User {
	out := make([]User, 0, len(users))

	// The term matches as typed; surrounding whitespace is significant.
	term := strings.ToLower(q.Search)
	for _, u := range users {
		if term != "" && !matchesTerm(u, term) {
			continue
		}
		if q.Role != "" && q.Role != RoleFilterAll && string(u.Role) != q.Role {
			continue
		}
		out = append(out, u)
	}

	key := q.SortBy
	if key == "" {
		key = SortByName
	}
	desc := q.Order == OrderDesc

	sort.SliceStable(out, func(i, j int) bool {
		less := lessByKey(out[i], out[j], key)
		if desc {
			return lessByKey(out[j], out[i], key)
		}
		return less
	})

	return out
}

// matchesTerm reports whether the lowercased term occurs in the record's
// name, email, or role.
func matchesTerm(u User, term string) bool {
	return strings.Contains(strings.ToLower(u.Name), term) ||
		strings.Contains(strings.ToLower(u.Email), term) ||
		strings.Contains(strings.ToLower(string(u.Role)), term)
}

// lessByKey compares two records on key, case-insensitively for text fields
// and chronologically for creation time. Equal values are never "less", so a
// stable sort preserves the relative input order of ties.
func lessByKey(a, b User, key SortKey) bool {
	switch key {
	case SortByEmail:
		return strings.ToLower(a.Email) < strings.ToLower(b.Email)
	case SortByRole:
		return strings.ToLower(string(a.Role)) < strings.ToLower(string(b.Role))
	case SortByCreatedAt:
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}
