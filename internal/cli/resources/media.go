package resources

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/julianstephens/mindfulpath/internal/cli"
	"github.com/julianstephens/mindfulpath/internal/integrations/books"
	"github.com/julianstephens/mindfulpath/internal/models"
	"github.com/julianstephens/mindfulpath/internal/music"
)

type MusicCmd struct {
	Mood    string `short:"m" help:"Only list tracks for this mood."`
	Shuffle bool   `help:"Shuffle the playlist."`
}

func (c *MusicCmd) Run(ctx *cli.Context) error {
	var tracks []models.Track
	switch {
	case c.Mood != "":
		tracks = music.ByMood(c.Mood)
	case c.Shuffle:
		tracks = music.Shuffle(rand.New(rand.NewSource(time.Now().UnixNano())))
	default:
		tracks = music.All()
	}
	if len(tracks) == 0 {
		ctx.Printf("No tracks for mood %q. Available moods: %s\n", c.Mood, strings.Join(music.Moods(), ", "))
		return nil
	}
	for _, t := range tracks {
		ctx.Printf("%s - %s (%d:%02d) [%s]\n", t.Name, t.ArtistName, t.Duration/60, t.Duration%60, strings.Join(t.Moods, ", "))
		ctx.Printf("  %s\n", t.AudioURL)
	}
	return nil
}

type BooksCmd struct {
	Keywords []string `arg:"" optional:"" help:"Search keywords (default: mindfulness self-help)."`
}

func (c *BooksCmd) Run(ctx *cli.Context) error {
	keywords := strings.Join(c.Keywords, " ")
	if keywords == "" {
		keywords = books.DefaultKeywords
	}
	results, err := ctx.Integrations.Books.Search(context.Background(), keywords)
	if err != nil {
		return fmt.Errorf("book search failed: %w", err)
	}
	if len(results) == 0 {
		ctx.Println("No books found")
		return nil
	}
	for _, b := range results {
		ctx.Printf("%s by %s\n", b.Title, b.Author)
		ctx.Printf("  %s  ★ %.1f  %s\n", b.Format, b.Rating, b.Price)
		ctx.Printf("  %s\n", b.URL)
	}
	return nil
}

type TranslateCmd struct {
	Lang string   `short:"l" required:"" help:"Target language code (e.g. hi, ta, es)."`
	Text []string `arg:"" help:"Text to translate. Each argument is translated separately."`
}

func (c *TranslateCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr := ctx.Integrations.Translator
	if len(c.Text) == 1 {
		out, err := tr.Translate(bg, c.Text[0], c.Lang)
		if err != nil {
			return err
		}
		ctx.Println(out)
		return nil
	}
	out, err := tr.BatchTranslate(bg, c.Text, c.Lang)
	if err != nil {
		return err
	}
	for _, line := range out {
		ctx.Println(line)
	}
	return nil
}
