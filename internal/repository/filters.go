package repository

import (
	"github.com/bookdragons/storefront/internal/domain"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// NormalizeLimit clamps a requested page size to [1, MaxListLimit]
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// BookFilter selects books. Empty slices and nil pointers match everything;
// GenreIDs matches a book carrying at least one of the listed genres.
type BookFilter struct {
	IDs        []int64
	Slugs      []string
	Featured   *bool
	AuthorIDs  []int64
	GenreIDs   []int64
	AgeRatings []domain.AgeRating
	Limit      int
}

// Matches reports whether the book satisfies every condition of the filter
func (f BookFilter) Matches(b *domain.Book) bool {
	if len(f.IDs) > 0 && !containsInt64(f.IDs, b.ID) {
		return false
	}
	if len(f.Slugs) > 0 && !containsString(f.Slugs, b.Slug) {
		return false
	}
	if f.Featured != nil && b.Featured != *f.Featured {
		return false
	}
	if len(f.AuthorIDs) > 0 && !containsInt64(f.AuthorIDs, b.AuthorID) {
		return false
	}
	if len(f.GenreIDs) > 0 && !intersectsInt64(f.GenreIDs, b.GenreIDs) {
		return false
	}
	if len(f.AgeRatings) > 0 {
		found := false
		for _, r := range b.AgeRatings {
			for _, want := range f.AgeRatings {
				if r == want {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// AuthorFilter selects authors
type AuthorFilter struct {
	IDs           []int64
	Slugs         []string
	Nationalities []string
	Limit         int
}

// Matches reports whether the author satisfies every condition of the filter
func (f AuthorFilter) Matches(a *domain.Author) bool {
	if len(f.IDs) > 0 && !containsInt64(f.IDs, a.ID) {
		return false
	}
	if len(f.Slugs) > 0 && !containsString(f.Slugs, a.Slug) {
		return false
	}
	if len(f.Nationalities) > 0 {
		if a.Nationality == nil || !containsString(f.Nationalities, *a.Nationality) {
			return false
		}
	}
	return true
}

// GenreFilter selects genres
type GenreFilter struct {
	IDs   []int64
	Slugs []string
	Limit int
}

// Matches reports whether the genre satisfies every condition of the filter
func (f GenreFilter) Matches(g *domain.Genre) bool {
	if len(f.IDs) > 0 && !containsInt64(f.IDs, g.ID) {
		return false
	}
	if len(f.Slugs) > 0 && !containsString(f.Slugs, g.Slug) {
		return false
	}
	return true
}

func containsInt64(list []int64, v int64) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func intersectsInt64(a, b []int64) bool {
	for _, x := range a {
		if containsInt64(b, x) {
			return true
		}
	}
	return false
}
