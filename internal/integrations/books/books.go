// Package books recommends wellbeing titles from Amazon or a built-in list.
package books

import (
	"context"
	"strings"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/models"
)

// DefaultKeywords is searched when the caller supplies none.
const DefaultKeywords = "mindfulness self-help"

type Provider interface {
	Search(ctx context.Context, keywords string) ([]models.Book, error)
}

var mockBooks = []models.Book{
	{
		ID:       "mock-1",
		Title:    "The Power of Now",
		Author:   "Eckhart Tolle",
		ImageURL: "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?auto=format&fit=crop&w=300&q=80",
		Rating:   4.7,
		Format:   constants.FormatBook,
		URL:      "https://www.amazon.com/Power-Now-Guide-Spiritual-Enlightenment/dp/1577314808",
		Price:    "$14.99",
	},
	{
		ID:       "mock-2",
		Title:    "Atomic Habits",
		Author:   "James Clear",
		ImageURL: "https://images.unsplash.com/photo-1506784365847-bbad939e9335?auto=format&fit=crop&w=300&q=80",
		Rating:   4.8,
		Format:   constants.FormatAudiobook,
		URL:      "https://www.amazon.com/Atomic-Habits-Proven-Build-Break/dp/0735211299",
		Price:    "$18.99",
	},
	{
		ID:       "mock-3",
		Title:    "Think Like a Monk",
		Author:   "Jay Shetty",
		ImageURL: "https://images.unsplash.com/photo-1602934585418-f588bea4215c?auto=format&fit=crop&w=300&q=80",
		Rating:   4.6,
		Format:   constants.FormatBook,
		URL:      "https://www.amazon.com/Think-Like-Monk-Train-Purpose/dp/1982134488",
		Price:    "$16.99",
	},
	{
		ID:       "mock-4",
		Title:    "The Happiness of Pursuit",
		Author:   "Chris Guillebeau",
		ImageURL: "https://images.unsplash.com/photo-1531747056595-07f6cbbe10ad?auto=format&fit=crop&w=300&q=80",
		Rating:   4.5,
		Format:   constants.FormatAudiobook,
		URL:      "https://www.amazon.com/Happiness-Pursuit-Finding-Quest-Change/dp/0385348843",
		Price:    "$15.99",
	},
	{
		ID:       "mock-5",
		Title:    "Mindfulness for Beginners",
		Author:   "Jon Kabat-Zinn",
		ImageURL: "https://images.unsplash.com/photo-1490730141103-6cac27aaab94?auto=format&fit=crop&w=300&q=80",
		Rating:   4.6,
		Format:   constants.FormatBook,
		URL:      "https://www.amazon.com/Mindfulness-Beginners-Reclaiming-Present-Moment/dp/1622036674",
		Price:    "$13.99",
	},
	{
		ID:       "mock-6",
		Title:    "The Mind Illuminated",
		Author:   "Culadasa",
		ImageURL: "https://images.unsplash.com/photo-1519681393784-d120267933ba?auto=format&fit=crop&w=300&q=80",
		Rating:   4.8,
		Format:   constants.FormatAudiobook,
		URL:      "https://www.amazon.com/Mind-Illuminated-Meditation-Integrating-Mindfulness/dp/1501156985",
		Price:    "$19.99",
	},
}

// Static always returns the built-in recommendations.
type Static struct{}

func (Static) Search(context.Context, string) ([]models.Book, error) {
	return append([]models.Book(nil), mockBooks...), nil
}

// Fallback serves the static list whenever the primary provider fails.
type Fallback struct {
	Primary Provider
}

func (f Fallback) Search(ctx context.Context, keywords string) ([]models.Book, error) {
	books, err := f.Primary.Search(ctx, keywords)
	if err != nil {
		logger.Warn("Book search failed, using built-in list", "keywords", keywords, "error", err)
		return Static{}.Search(ctx, keywords)
	}
	return books, nil
}

func normalizeKeywords(keywords string) string {
	keywords = strings.Join(strings.Fields(keywords), " ")
	if keywords == "" {
		return DefaultKeywords
	}
	return keywords
}
