// Package seed loads the demo catalog.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository"
)

type authorSeed struct {
	name, slug, nationality, bio string
	birthYear                    int
}

type bookSeed struct {
	title, slug, isbn, description string
	author                         int
	genres                         []int
	ageRatings                     []domain.AgeRating
	price                          int64
	stock, publishedYear           int
	featured                       bool
}

var authors = []authorSeed{
	{"J.K. Rowling", "jk-rowling", "Britisk", "Joanne Rowling, bedre kjent som J.K. Rowling, er en britisk forfatter best kjent for Harry Potter-serien.", 1965},
	{"Stephen King", "stephen-king", "Amerikansk", "Stephen King er en amerikansk forfatter av skrekk- og fantasy-bøker. Han har skrevet over 60 bøker.", 1947},
	{"Agatha Christie", "agatha-christie", "Britisk", "Agatha Christie var en britisk krimforfatter kjent for sine detektivromaner med Hercule Poirot og Miss Marple.", 1890},
	{"Erlend Loe", "erlend-loe", "Norsk", "Erlend Loe er en norsk forfatter kjent for sin humoristiske og absurde stil.", 1969},
	{"Jo Nesbø", "jo-nesbo", "Norsk", "Jo Nesbø er en norsk forfatter og musiker, best kjent for krimromanene om Harry Hole.", 1960},
}

var genres = []domain.Genre{
	{Name: "Fantasy", Slug: "fantasy", Description: "Bøker med magi, mytologi og fantastiske verdener."},
	{Name: "Krim", Slug: "krim", Description: "Spennende kriminalromaner og detektivhistorier."},
	{Name: "Skrekk", Slug: "skrekk", Description: "Skrekkromaner som gir deg gåsehud."},
	{Name: "Humor", Slug: "humor", Description: "Morsomme og underholdende bøker."},
	{Name: "Ungdom", Slug: "ungdom", Description: "Bøker skrevet for ungdom."},
}

var (
	children = domain.AgeRatingChildren
	youth    = domain.AgeRatingYouth
	adult    = domain.AgeRatingAdult
)

var books = []bookSeed{
	{"Harry Potter og De Vises Stein", "harry-potter-og-de-vises-stein", "9788203220011",
		"Den første boken i Harry Potter-serien. Harry oppdager at han er en trollmann og begynner på Galtvort høyere skole for hekseri og trolldom.",
		0, []int{0}, []domain.AgeRating{children, youth}, 299, 15, 1997, true},
	{"The Shining", "the-shining", "9780307743657",
		"En skrekkroman om en familie som flytter inn i et isolert hotell om vinteren, hvor faren gradvis blir gal.",
		1, []int{2}, []domain.AgeRating{adult}, 349, 8, 1977, true},
	{"Mord på Orientekspressen", "mord-pa-orientekspressen", "9788203220028",
		"En klassisk krimroman hvor Hercule Poirot løser et mord om bord på Orientekspressen.",
		2, []int{1}, []domain.AgeRating{adult}, 279, 12, 1934, true},
	{"Naiv. Super.", "naiv-super", "9788203220035",
		"En humoristisk roman om en mann som sliter med livet og finner trøst i enkle ting.",
		3, []int{3, 4}, []domain.AgeRating{youth, adult}, 249, 20, 1996, false},
	{"Flaggermusmannen", "flaggermusmannen", "9788203220042",
		"Den første boken i Harry Hole-serien. En norsk politimann jakter på en seriemorder i Australia.",
		4, []int{1}, []domain.AgeRating{adult}, 399, 10, 1997, false},
	{"Harry Potter og Mysteriekammeret", "harry-potter-og-mysteriekammeret", "9788203220059",
		"Den andre boken i Harry Potter-serien. Harry må finne ut hvem som har åpnet Mysteriekammeret.",
		0, []int{0}, []domain.AgeRating{children, youth}, 299, 18, 1998, false},
	{"It", "it", "9780307743664",
		"En skrekkroman om en gruppe venner som møter en ond klovn som terroriserer deres hjemby.",
		1, []int{2}, []domain.AgeRating{adult}, 449, 6, 1986, false},
	{"Døden på Nilen", "doden-pa-nilen", "9788203220066",
		"En klassisk krimroman hvor Hercule Poirot løser et mord om bord på en båt på Nilen.",
		2, []int{1}, []domain.AgeRating{adult}, 279, 14, 1937, false},
}

// Summary counts what Load created
type Summary struct {
	Authors int
	Genres  int
	Books   int
}

// Load creates the demo authors, genres and books
func Load(ctx context.Context, repos *repository.Repositories, logger *zap.Logger) (*Summary, error) {
	authorIDs := make([]int64, len(authors))
	for i, a := range authors {
		nationality := a.nationality
		birthYear := a.birthYear
		author := &domain.Author{
			Name:        a.name,
			Slug:        a.slug,
			Bio:         a.bio,
			Nationality: &nationality,
			BirthYear:   &birthYear,
		}
		if err := repos.Author.Create(ctx, author); err != nil {
			return nil, fmt.Errorf("create author %s: %w", a.slug, err)
		}
		authorIDs[i] = author.ID
		logger.Debug("Created author", zap.String("slug", a.slug), zap.Int64("id", author.ID))
	}

	genreIDs := make([]int64, len(genres))
	for i := range genres {
		genre := genres[i]
		if err := repos.Genre.Create(ctx, &genre); err != nil {
			return nil, fmt.Errorf("create genre %s: %w", genre.Slug, err)
		}
		genreIDs[i] = genre.ID
	}

	for _, b := range books {
		publishedYear := b.publishedYear
		book := &domain.Book{
			Title:         b.title,
			Slug:          b.slug,
			Description:   b.description,
			AuthorID:      authorIDs[b.author],
			AgeRatings:    b.ageRatings,
			Price:         b.price,
			ISBN:          b.isbn,
			PublishedYear: &publishedYear,
			Stock:         b.stock,
			Featured:      b.featured,
		}
		for _, g := range b.genres {
			book.GenreIDs = append(book.GenreIDs, genreIDs[g])
		}
		if err := repos.Book.Create(ctx, book); err != nil {
			return nil, fmt.Errorf("create book %s: %w", b.slug, err)
		}
	}

	summary := &Summary{Authors: len(authors), Genres: len(genres), Books: len(books)}
	logger.Info("Seeded demo catalog",
		zap.Int("authors", summary.Authors),
		zap.Int("genres", summary.Genres),
		zap.Int("books", summary.Books),
	)
	return summary, nil
}
