package books

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/integrations/httpapi"
	"github.com/julianstephens/mindfulpath/internal/models"
)

const (
	paapiService = "ProductAdvertisingAPI"
	paapiTarget  = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems"
)

var ErrMissingCredentials = errors.New("amazon access key, secret key and partner tag are required")

// AmazonConfig holds Product Advertising API credentials
type AmazonConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	PartnerTag string
	Region     string
	Timeout    time.Duration
}

// Amazon searches the Books index of the Product Advertising API 5.0.
type Amazon struct {
	cfg    AmazonConfig
	client *httpapi.Client
	signer *v4.Signer
	now    func() time.Time
}

func NewAmazon(cfg AmazonConfig) *Amazon {
	a := &Amazon{cfg: cfg, signer: v4.NewSigner(), now: time.Now}
	a.client = httpapi.New("amazon", cfg.Endpoint, cfg.Timeout)
	a.client.Header.Set("X-Amz-Target", paapiTarget)
	a.client.Header.Set("Content-Encoding", "amz-1.0")
	a.client.Sign = a.sign
	return a
}

func (a *Amazon) sign(req *http.Request, body []byte) error {
	sum := sha256.Sum256(body)
	creds := aws.Credentials{AccessKeyID: a.cfg.AccessKey, SecretAccessKey: a.cfg.SecretKey}
	return a.signer.SignHTTP(req.Context(), creds, req, hex.EncodeToString(sum[:]), paapiService, a.cfg.Region, a.now())
}

type searchItemsRequest struct {
	Keywords    string   `json:"Keywords"`
	SearchIndex string   `json:"SearchIndex"`
	Resources   []string `json:"Resources"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	ItemCount   int      `json:"ItemCount"`
}

type displayValue struct {
	DisplayValue string `json:"DisplayValue"`
}

type searchItemsResponse struct {
	SearchResult struct {
		Items []struct {
			ASIN          string `json:"ASIN"`
			DetailPageURL string `json:"DetailPageURL"`
			ItemInfo      struct {
				Title      displayValue `json:"Title"`
				ByLineInfo struct {
					Contributors []struct {
						Name string `json:"Name"`
						Role string `json:"Role"`
					} `json:"Contributors"`
				} `json:"ByLineInfo"`
				Classifications struct {
					Binding displayValue `json:"Binding"`
				} `json:"Classifications"`
			} `json:"ItemInfo"`
			Images struct {
				Primary struct {
					Medium struct {
						URL string `json:"URL"`
					} `json:"Medium"`
				} `json:"Primary"`
			} `json:"Images"`
			Offers struct {
				Listings []struct {
					Price struct {
						DisplayAmount string `json:"DisplayAmount"`
					} `json:"Price"`
				} `json:"Listings"`
			} `json:"Offers"`
			CustomerReviews struct {
				StarRating struct {
					Value float64 `json:"Value"`
				} `json:"StarRating"`
			} `json:"CustomerReviews"`
		} `json:"Items"`
	} `json:"SearchResult"`
	Errors []struct {
		Code    string `json:"Code"`
		Message string `json:"Message"`
	} `json:"Errors"`
}

// marketplaces maps PA-API regions to their default marketplace.
var marketplaces = map[string]string{
	"us-east-1": "www.amazon.com",
	"eu-west-1": "www.amazon.co.uk",
	"us-west-2": "www.amazon.co.jp",
}

func (a *Amazon) marketplace() string {
	if m, ok := marketplaces[a.cfg.Region]; ok {
		return m
	}
	return "www.amazon.com"
}

func (a *Amazon) Search(ctx context.Context, keywords string) ([]models.Book, error) {
	if a.cfg.AccessKey == "" || a.cfg.SecretKey == "" || a.cfg.PartnerTag == "" {
		return nil, ErrMissingCredentials
	}

	req := searchItemsRequest{
		Keywords:    normalizeKeywords(keywords),
		SearchIndex: "Books",
		Resources: []string{
			"ItemInfo.Title",
			"ItemInfo.ByLineInfo",
			"ItemInfo.Classifications",
			"Images.Primary.Medium",
			"Offers.Listings.Price",
			"CustomerReviews.StarRating",
		},
		PartnerTag:  a.cfg.PartnerTag,
		PartnerType: "Associates",
		Marketplace: a.marketplace(),
		ItemCount:   10,
	}

	var resp searchItemsResponse
	if err := a.client.Do(ctx, http.MethodPost, "", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("amazon search failed: %s: %s", resp.Errors[0].Code, resp.Errors[0].Message)
	}

	books := make([]models.Book, 0, len(resp.SearchResult.Items))
	for _, item := range resp.SearchResult.Items {
		book := models.Book{
			ID:       item.ASIN,
			Title:    item.ItemInfo.Title.DisplayValue,
			ImageURL: item.Images.Primary.Medium.URL,
			Rating:   item.CustomerReviews.StarRating.Value,
			Format:   constants.FormatBook,
			URL:      item.DetailPageURL,
		}
		for _, c := range item.ItemInfo.ByLineInfo.Contributors {
			if c.Role == "Author" || book.Author == "" {
				book.Author = c.Name
				if c.Role == "Author" {
					break
				}
			}
		}
		if strings.Contains(strings.ToLower(item.ItemInfo.Classifications.Binding.DisplayValue), "audio") {
			book.Format = constants.FormatAudiobook
		}
		if len(item.Offers.Listings) > 0 {
			book.Price = item.Offers.Listings[0].Price.DisplayAmount
		}
		books = append(books, book)
	}
	return books, nil
}
