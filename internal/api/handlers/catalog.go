package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// ListResponse is the envelope for every collection listing
type ListResponse struct {
	Docs      interface{} `json:"docs"`
	TotalDocs int         `json:"totalDocs"`
	Limit     int         `json:"limit"`
}

// BookResponse represents a book. Author and Genres hold ids at depth 0
// and documents at depth 1 or more.
type BookResponse struct {
	ID            int64              `json:"id"`
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	Author        interface{}        `json:"author"`
	Genres        interface{}        `json:"genres"`
	AgeRatings    []domain.AgeRating `json:"ageRating"`
	Price         int64              `json:"price"`
	ISBN          string             `json:"isbn"`
	PublishedYear *int               `json:"publishedYear,omitempty"`
	Stock         int                `json:"stock"`
	InStock       bool               `json:"inStock"`
	CoverImage    *string            `json:"coverImage,omitempty"`
	Featured      bool               `json:"featured"`
	CreatedAt     string             `json:"createdAt"`
	UpdatedAt     string             `json:"updatedAt"`
}

// AuthorResponse represents an author; Books is only set on detail reads
type AuthorResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Bio         string         `json:"bio"`
	Photo       *string        `json:"photo,omitempty"`
	BirthYear   *int           `json:"birthYear,omitempty"`
	Nationality *string        `json:"nationality,omitempty"`
	Books       []BookResponse `json:"books,omitempty"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

type GenreResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func authorResponse(a *domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:          a.ID,
		Name:        a.Name,
		Slug:        a.Slug,
		Bio:         a.Bio,
		Photo:       a.PhotoURL,
		BirthYear:   a.BirthYear,
		Nationality: a.Nationality,
		CreatedAt:   formatTime(a.CreatedAt),
		UpdatedAt:   formatTime(a.UpdatedAt),
	}
}

func genreResponse(g *domain.Genre) GenreResponse {
	return GenreResponse{
		ID:          g.ID,
		Name:        g.Name,
		Slug:        g.Slug,
		Description: g.Description,
		CreatedAt:   formatTime(g.CreatedAt),
		UpdatedAt:   formatTime(g.UpdatedAt),
	}
}

// bookResponses builds book documents, loading authors and genres when depth > 0
func bookResponses(ctx context.Context, repos *repository.Repositories, books []*domain.Book, depth int) ([]BookResponse, error) {
	authors := map[int64]AuthorResponse{}
	genres := map[int64]GenreResponse{}

	if depth > 0 && len(books) > 0 {
		var authorIDs, genreIDs []int64
		for _, b := range books {
			authorIDs = append(authorIDs, b.AuthorID)
			genreIDs = append(genreIDs, b.GenreIDs...)
		}

		found, _, err := repos.Author.List(ctx, repository.AuthorFilter{IDs: authorIDs, Limit: repository.MaxListLimit})
		if err != nil {
			return nil, err
		}
		for _, a := range found {
			authors[a.ID] = authorResponse(a)
		}
		if len(genreIDs) > 0 {
			foundGenres, _, err := repos.Genre.List(ctx, repository.GenreFilter{IDs: genreIDs, Limit: repository.MaxListLimit})
			if err != nil {
				return nil, err
			}
			for _, g := range foundGenres {
				genres[g.ID] = genreResponse(g)
			}
		}
	}

	out := make([]BookResponse, len(books))
	for i, b := range books {
		resp := BookResponse{
			ID:            b.ID,
			Title:         b.Title,
			Slug:          b.Slug,
			Description:   b.Description,
			Author:        b.AuthorID,
			AgeRatings:    b.AgeRatings,
			Price:         b.Price,
			ISBN:          b.ISBN,
			PublishedYear: b.PublishedYear,
			Stock:         b.Stock,
			InStock:       b.InStock(),
			CoverImage:    b.CoverImageURL,
			Featured:      b.Featured,
			CreatedAt:     formatTime(b.CreatedAt),
			UpdatedAt:     formatTime(b.UpdatedAt),
		}
		if resp.AgeRatings == nil {
			resp.AgeRatings = []domain.AgeRating{}
		}

		if depth > 0 {
			if a, ok := authors[b.AuthorID]; ok {
				resp.Author = a
			}
			expanded := make([]GenreResponse, 0, len(b.GenreIDs))
			for _, id := range b.GenreIDs {
				if g, ok := genres[id]; ok {
					expanded = append(expanded, g)
				}
			}
			resp.Genres = expanded
		} else {
			ids := b.GenreIDs
			if ids == nil {
				ids = []int64{}
			}
			resp.Genres = ids
		}
		out[i] = resp
	}
	return out, nil
}

// HandleListBooks handles GET /api/books
func HandleListBooks(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := parseListQuery(c.Request.URL.Query(), "id", "slug", "featured", "author", "genres", "ageRating")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if q.MatchNone {
			c.JSON(http.StatusOK, ListResponse{Docs: []interface{}{}, TotalDocs: 0, Limit: q.Limit})
			return
		}

		filter := repository.BookFilter{Slugs: q.Where["slug"], Limit: q.Limit}
		if filter.IDs, err = q.int64s("id"); err == nil {
			if filter.AuthorIDs, err = q.int64s("author"); err == nil {
				if filter.GenreIDs, err = q.int64s("genres"); err == nil {
					filter.Featured, err = q.boolean("featured")
				}
			}
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		for _, v := range q.Where["ageRating"] {
			rating := domain.AgeRating(v)
			if !rating.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"message": "unknown age rating: " + v})
				return
			}
			filter.AgeRatings = append(filter.AgeRatings, rating)
		}

		books, total, err := repos.Book.List(c.Request.Context(), filter)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		docs, err := bookResponses(c.Request.Context(), repos, books, q.Depth)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{Docs: docs, TotalDocs: total, Limit: q.Limit})
	}
}

// HandleGetBook handles GET /api/books/:slug
func HandleGetBook(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := parseListQuery(c.Request.URL.Query())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		book, err := repos.Book.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		docs, err := bookResponses(c.Request.Context(), repos, []*domain.Book{book}, q.Depth)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, docs[0])
	}
}

// HandleListAuthors handles GET /api/authors
func HandleListAuthors(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := parseListQuery(c.Request.URL.Query(), "id", "slug", "nationality")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if q.MatchNone {
			c.JSON(http.StatusOK, ListResponse{Docs: []interface{}{}, TotalDocs: 0, Limit: q.Limit})
			return
		}
		ids, err := q.int64s("id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		authors, total, err := repos.Author.List(c.Request.Context(), repository.AuthorFilter{
			IDs:           ids,
			Slugs:         q.Where["slug"],
			Nationalities: q.Where["nationality"],
			Limit:         q.Limit,
		})
		if err != nil {
			writeError(c, logger, err)
			return
		}

		docs := make([]AuthorResponse, len(authors))
		for i, a := range authors {
			docs[i] = authorResponse(a)
		}
		c.JSON(http.StatusOK, ListResponse{Docs: docs, TotalDocs: total, Limit: q.Limit})
	}
}

// HandleGetAuthor handles GET /api/authors/:slug. At depth 1 or more the
// author's books are included.
func HandleGetAuthor(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := parseListQuery(c.Request.URL.Query())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		author, err := repos.Author.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		resp := authorResponse(author)

		if q.Depth > 0 {
			books, _, err := repos.Book.List(c.Request.Context(), repository.BookFilter{
				AuthorIDs: []int64{author.ID},
				Limit:     repository.MaxListLimit,
			})
			if err != nil {
				writeError(c, logger, err)
				return
			}
			resp.Books, err = bookResponses(c.Request.Context(), repos, books, 0)
			if err != nil {
				writeError(c, logger, err)
				return
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleListGenres handles GET /api/genres
func HandleListGenres(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := parseListQuery(c.Request.URL.Query(), "id", "slug")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if q.MatchNone {
			c.JSON(http.StatusOK, ListResponse{Docs: []interface{}{}, TotalDocs: 0, Limit: q.Limit})
			return
		}
		ids, err := q.int64s("id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		genres, total, err := repos.Genre.List(c.Request.Context(), repository.GenreFilter{
			IDs:   ids,
			Slugs: q.Where["slug"],
			Limit: q.Limit,
		})
		if err != nil {
			writeError(c, logger, err)
			return
		}

		docs := make([]GenreResponse, len(genres))
		for i, g := range genres {
			docs[i] = genreResponse(g)
		}
		c.JSON(http.StatusOK, ListResponse{Docs: docs, TotalDocs: total, Limit: q.Limit})
	}
}

// HandleGetGenre handles GET /api/genres/:slug
func HandleGetGenre(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		genre, err := repos.Genre.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, genreResponse(genre))
	}
}
