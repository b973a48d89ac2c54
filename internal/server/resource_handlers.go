package server

import (
	"errors"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/mindfulpath/internal/directory"
	"github.com/julianstephens/mindfulpath/internal/integrations/books"
	"github.com/julianstephens/mindfulpath/internal/integrations/geocode"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/models"
	"github.com/julianstephens/mindfulpath/internal/music"
)

type supportQuery struct {
	Country string `form:"country" binding:"max=64"`
	Region  string `form:"region" binding:"max=64"`
}

type supportResponse struct {
	Organizations []models.Organization      `json:"organizations"`
	Emergency     directory.EmergencyNumbers `json:"emergency"`
}

type musicQuery struct {
	Mood    string `form:"mood" binding:"max=32"`
	Shuffle bool   `form:"shuffle"`
}

type booksQuery struct {
	Keywords string `form:"keywords" binding:"max=200"`
}

type geocodeQuery struct {
	Q   string   `form:"q" binding:"required_without_all=Lat Lng,max=200"`
	Lat *float64 `form:"lat" binding:"omitempty,latitude"`
	Lng *float64 `form:"lng" binding:"omitempty,longitude"`
}

type translateRequest struct {
	Text       string   `json:"text" binding:"required_without=Texts"`
	Texts      []string `json:"texts" binding:"omitempty,max=50,dive,required"`
	TargetLang string   `json:"targetLang" binding:"required,min=2,max=10"`
}

type translateResponse struct {
	TranslatedText  string   `json:"translatedText,omitempty"`
	TranslatedTexts []string `json:"translatedTexts,omitempty"`
}

func (s *Server) getSupport(c *gin.Context) {
	var q supportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.bindError(c, err)
		return
	}

	var orgs []models.Organization
	switch {
	case q.Region != "":
		orgs = directory.ByRegion(q.Region)
	case q.Country != "":
		orgs = directory.ByCountry(q.Country)
	default:
		orgs = directory.All()
	}

	country := q.Country
	if country == "" {
		country = "global"
	}
	success(c, supportResponse{Organizations: orgs, Emergency: directory.Emergency(country)})
}

func (s *Server) getMusic(c *gin.Context) {
	var q musicQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.bindError(c, err)
		return
	}
	switch {
	case q.Mood != "":
		success(c, music.ByMood(q.Mood))
	case q.Shuffle:
		success(c, music.Shuffle(rand.New(rand.NewSource(time.Now().UnixNano()))))
	default:
		success(c, music.All())
	}
}

func (s *Server) getTrack(c *gin.Context) {
	track, ok := music.Get(c.Param("id"))
	if !ok {
		notFound(c, "track not found")
		return
	}
	success(c, track)
}

func (s *Server) searchBooks(c *gin.Context) {
	var q booksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.bindError(c, err)
		return
	}
	if q.Keywords == "" {
		q.Keywords = books.DefaultKeywords
	}
	results, err := s.deps.Integrations.Books.Search(c.Request.Context(), q.Keywords)
	if err != nil {
		s.metrics.TrackError("integration")
		logger.Warn("Book search failed", "keywords", q.Keywords, "error", err)
		badGateway(c, "book search failed")
		return
	}
	success(c, results)
}

func (s *Server) geocode(c *gin.Context) {
	var q geocodeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.bindError(c, err)
		return
	}

	var (
		loc models.Location
		err error
	)
	g := s.deps.Integrations.Geocoder
	if q.Q != "" {
		loc, err = g.Forward(c.Request.Context(), q.Q)
	} else {
		if q.Lat == nil || q.Lng == nil {
			badRequest(c, "lat and lng are both required")
			return
		}
		loc, err = g.Reverse(c.Request.Context(), *q.Lat, *q.Lng)
	}
	if errors.Is(err, geocode.ErrNoResults) {
		notFound(c, err.Error())
		return
	}
	if err != nil {
		s.metrics.TrackError("integration")
		logger.Warn("Geocoding failed", "error", err)
		badGateway(c, "geocoding failed")
		return
	}
	success(c, loc)
}

func (s *Server) translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	tr := s.deps.Integrations.Translator
	ctx := c.Request.Context()
	if len(req.Texts) > 0 {
		out, err := tr.BatchTranslate(ctx, req.Texts, req.TargetLang)
		if err != nil {
			s.translateError(c, err)
			return
		}
		success(c, translateResponse{TranslatedTexts: out})
		return
	}
	out, err := tr.Translate(ctx, req.Text, req.TargetLang)
	if err != nil {
		s.translateError(c, err)
		return
	}
	success(c, translateResponse{TranslatedText: out})
}

func (s *Server) translateError(c *gin.Context, err error) {
	s.metrics.TrackError("integration")
	logger.Warn("Translation failed", "error", err)
	badGateway(c, "translation failed")
}
