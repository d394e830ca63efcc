package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookdragons/storefront/internal/domain"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultListLimit, NormalizeLimit(-3))
	assert.Equal(t, 25, NormalizeLimit(25))
	assert.Equal(t, MaxListLimit, NormalizeLimit(1000))
}

func TestBookFilter_Matches(t *testing.T) {
	book := &domain.Book{
		ID:         3,
		Slug:       "naiv-super",
		AuthorID:   4,
		GenreIDs:   []int64{4, 5},
		AgeRatings: []domain.AgeRating{domain.AgeRatingYouth, domain.AgeRatingAdult},
		Featured:   false,
	}
	yes, no := true, false

	tests := []struct {
		name   string
		filter BookFilter
		want   bool
	}{
		{"empty filter", BookFilter{}, true},
		{"id", BookFilter{IDs: []int64{1, 3}}, true},
		{"other id", BookFilter{IDs: []int64{1}}, false},
		{"slug", BookFilter{Slugs: []string{"naiv-super"}}, true},
		{"featured true", BookFilter{Featured: &yes}, false},
		{"featured false", BookFilter{Featured: &no}, true},
		{"author", BookFilter{AuthorIDs: []int64{4}}, true},
		{"any genre", BookFilter{GenreIDs: []int64{1, 5}}, true},
		{"no genre", BookFilter{GenreIDs: []int64{1, 2}}, false},
		{"age rating", BookFilter{AgeRatings: []domain.AgeRating{domain.AgeRatingAdult}}, true},
		{"other age rating", BookFilter{AgeRatings: []domain.AgeRating{domain.AgeRatingChildren}}, false},
		{"all conditions", BookFilter{IDs: []int64{3}, AuthorIDs: []int64{4}, GenreIDs: []int64{5}, Featured: &no}, true},
		{"one failing condition", BookFilter{IDs: []int64{3}, AuthorIDs: []int64{1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(book))
		})
	}
}

func TestAuthorFilter_Matches(t *testing.T) {
	norsk := "Norsk"
	author := &domain.Author{ID: 4, Slug: "erlend-loe", Nationality: &norsk}

	assert.True(t, AuthorFilter{Nationalities: []string{"Norsk"}}.Matches(author))
	assert.False(t, AuthorFilter{Nationalities: []string{"Britisk"}}.Matches(author))
	assert.False(t, AuthorFilter{Nationalities: []string{"Norsk"}}.Matches(&domain.Author{ID: 9}))
	assert.False(t, AuthorFilter{Slugs: []string{"jo-nesbo"}}.Matches(author))
}

func TestGenreFilter_Matches(t *testing.T) {
	genre := &domain.Genre{ID: 2, Slug: "krim"}

	assert.True(t, GenreFilter{}.Matches(genre))
	assert.True(t, GenreFilter{Slugs: []string{"krim"}}.Matches(genre))
	assert.False(t, GenreFilter{IDs: []int64{1}}.Matches(genre))
}

func TestAPIKey(t *testing.T) {
	hash, err := HashAPIKey("secret-key")
	assert.NoError(t, err)
	assert.True(t, VerifyAPIKey("secret-key", hash))
	assert.False(t, VerifyAPIKey("other-key", hash))
	assert.Len(t, APIKeyLookup("secret-key"), 64)
	assert.Equal(t, APIKeyLookup("secret-key"), APIKeyLookup("secret-key"))
}
