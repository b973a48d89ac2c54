package books

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/models"
)

const searchResponse = `{
  "SearchResult": {
    "Items": [
      {
        "ASIN": "B001",
        "DetailPageURL": "https://www.amazon.com/dp/B001",
        "ItemInfo": {
          "Title": {"DisplayValue": "Wherever You Go, There You Are"},
          "ByLineInfo": {"Contributors": [
            {"Name": "Some Narrator", "Role": "Narrator"},
            {"Name": "Jon Kabat-Zinn", "Role": "Author"}
          ]},
          "Classifications": {"Binding": {"DisplayValue": "Audible Audiobook"}}
        },
        "Images": {"Primary": {"Medium": {"URL": "https://m.media-amazon.com/b001.jpg"}}},
        "Offers": {"Listings": [{"Price": {"DisplayAmount": "$12.50"}}]},
        "CustomerReviews": {"StarRating": {"Value": 4.6}}
      },
      {
        "ASIN": "B002",
        "DetailPageURL": "https://www.amazon.com/dp/B002",
        "ItemInfo": {
          "Title": {"DisplayValue": "Radical Acceptance"},
          "ByLineInfo": {"Contributors": [{"Name": "Tara Brach", "Role": "Author"}]},
          "Classifications": {"Binding": {"DisplayValue": "Paperback"}}
        }
      }
    ]
  }
}`

func setupAmazon(t *testing.T, handler http.HandlerFunc) (*Amazon, func()) {
	srv := httptest.NewServer(handler)
	a := NewAmazon(AmazonConfig{
		Endpoint:   srv.URL + "/paapi5/searchitems",
		AccessKey:  "AKIDEXAMPLE",
		SecretKey:  "secret",
		PartnerTag: "mindful-20",
		Region:     "us-east-1",
		Timeout:    time.Second,
	})
	return a, srv.Close
}

func TestAmazonSearch(t *testing.T) {
	a, cleanup := setupAmazon(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("X-Amz-Target"); got != paapiTarget {
			t.Errorf("X-Amz-Target = %q", got)
		}
		if got := r.Header.Get("Content-Encoding"); got != "amz-1.0" {
			t.Errorf("Content-Encoding = %q", got)
		}
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/") ||
			!strings.Contains(authz, "/us-east-1/ProductAdvertisingAPI/aws4_request") {
			t.Errorf("Authorization = %q", authz)
		}
		if r.Header.Get("X-Amz-Date") == "" {
			t.Error("X-Amz-Date header missing")
		}

		var req searchItemsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Keywords != "mindfulness meditation" || req.SearchIndex != "Books" ||
			req.PartnerTag != "mindful-20" || req.PartnerType != "Associates" ||
			req.Marketplace != "www.amazon.com" {
			t.Errorf("unexpected request: %+v", req)
		}
		w.Write([]byte(searchResponse))
	})
	defer cleanup()

	got, err := a.Search(context.Background(), "  mindfulness   meditation ")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}

	want := []models.Book{
		{
			ID:       "B001",
			Title:    "Wherever You Go, There You Are",
			Author:   "Jon Kabat-Zinn",
			ImageURL: "https://m.media-amazon.com/b001.jpg",
			Rating:   4.6,
			Format:   constants.FormatAudiobook,
			URL:      "https://www.amazon.com/dp/B001",
			Price:    "$12.50",
		},
		{
			ID:     "B002",
			Title:  "Radical Acceptance",
			Author: "Tara Brach",
			Format: constants.FormatBook,
			URL:    "https://www.amazon.com/dp/B002",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search() mismatch (-want +got):\n%s", diff)
	}
}

func TestAmazonSearchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusTooManyRequests, `{"__type":"TooManyRequestsException"}`},
		{"api error", http.StatusOK, `{"Errors":[{"Code":"InvalidPartnerTag","Message":"bad tag"}]}`},
		{"malformed body", http.StatusOK, `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, cleanup := setupAmazon(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			defer cleanup()

			if _, err := a.Search(context.Background(), "calm"); err == nil {
				t.Error("Search() expected error")
			}
		})
	}
}

func TestAmazonMissingCredentials(t *testing.T) {
	a := NewAmazon(AmazonConfig{Endpoint: "http://127.0.0.1:1", AccessKey: "a"})
	if _, err := a.Search(context.Background(), "calm"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("error = %v, want ErrMissingCredentials", err)
	}
}

func TestStaticSearch(t *testing.T) {
	got, err := Static{}.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	if got[0].ID != "mock-1" || got[0].Title != "The Power of Now" {
		t.Errorf("first book = %+v", got[0])
	}

	// Callers must not be able to mutate the shared list.
	got[0].Title = "changed"
	again, _ := Static{}.Search(context.Background(), "")
	if again[0].Title != "The Power of Now" {
		t.Error("Static list was mutated through a returned slice")
	}
}

type failing struct{ calls int }

func (f *failing) Search(context.Context, string) ([]models.Book, error) {
	f.calls++
	return nil, errors.New("boom")
}

func TestFallback(t *testing.T) {
	primary := &failing{}
	got, err := Fallback{Primary: primary}.Search(context.Background(), "calm")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if primary.calls != 1 {
		t.Errorf("primary calls = %d, want 1", primary.calls)
	}
	want, _ := Static{}.Search(context.Background(), "")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "amazon_books:search:mindfulness self-help"},
		{"Stress  Relief", "amazon_books:search:stress relief"},
	}
	for _, tt := range tests {
		if got := CacheKey(tt.in); got != tt.want {
			t.Errorf("CacheKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type counting struct{ calls int }

func (c *counting) Search(ctx context.Context, keywords string) ([]models.Book, error) {
	c.calls++
	return Static{}.Search(ctx, keywords)
}

func TestCachedIntegration(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("ParseURL() failed: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	next := &counting{}
	c := NewCached(next, client, time.Minute)
	if _, err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	first, err := c.Search(ctx, "cache test")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	second, err := c.Search(ctx, "Cache  Test")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if next.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", next.calls)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached result mismatch (-want +got):\n%s", diff)
	}

	ttl, err := client.TTL(ctx, CacheKey("cache test")).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, %v", ttl, err)
	}

	if n, err := c.Clear(ctx); err != nil || n < 1 {
		t.Errorf("Clear() = %d, %v", n, err)
	}
}

func TestCachedUnavailableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	next := &counting{}
	got, err := NewCached(next, client, 0).Search(context.Background(), "calm")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(got) != 6 || next.calls != 1 {
		t.Errorf("got %d books after %d upstream calls", len(got), next.calls)
	}
}
