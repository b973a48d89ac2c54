package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/models"
)

type moodRequest struct {
	Mood  int    `json:"mood" binding:"required,min=1,max=5"`
	Label string `json:"label" binding:"max=64"`
}

type breathingRequest struct {
	Duration int `json:"duration" binding:"min=0"`
	Cycles   int `json:"cycles" binding:"min=0"`
}

type contentRequest struct {
	Content string `json:"content" binding:"required,max=10000"`
}

type memoryGameRequest struct {
	Moves       int  `json:"moves" binding:"min=0"`
	TimeElapsed int  `json:"timeElapsed" binding:"min=0"`
	Won         bool `json:"won"`
}

type dateQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

type rangeQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// storeError maps a session store failure to a response.
func (s *Server) storeError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrInvalidRecord) {
		s.metrics.TrackError("validation")
		badRequest(c, err.Error())
		return
	}
	s.metrics.TrackError("storage")
	logger.Error("Session store operation failed", "path", c.FullPath(), "error", err)
	internalError(c, "failed to save session")
}

func (s *Server) bindError(c *gin.Context, err error) {
	s.metrics.TrackError("validation")
	badRequest(c, "invalid request: "+err.Error())
}

func (s *Server) backupBefore(action string) {
	if s.deps.Backups == nil {
		return
	}
	data := s.deps.Session.Snapshot()
	if data.IsEmpty() {
		return
	}
	if path, err := s.deps.Backups.CreateBackup(data); err != nil {
		logger.Warn("Backup before "+action+" failed", "error", err)
	} else {
		logger.Info("Backed up session", "action", action, "path", path)
	}
}

func (s *Server) getSession(c *gin.Context) {
	success(c, s.deps.Session.Snapshot())
}

func (s *Server) clearSession(c *gin.Context) {
	s.backupBefore("clear")
	if err := s.deps.Session.Clear(c.Request.Context()); err != nil {
		s.storeError(c, err)
		return
	}
	message(c, "session cleared")
}

func (s *Server) replaceSession(c *gin.Context) {
	var data models.SessionData
	if err := c.ShouldBindJSON(&data); err != nil {
		s.bindError(c, err)
		return
	}
	s.backupBefore("replace")
	next, err := s.deps.Session.Replace(c.Request.Context(), data)
	if err != nil {
		s.storeError(c, err)
		return
	}
	success(c, next)
}

func (s *Server) addMood(c *gin.Context) {
	var req moodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	entry, err := s.deps.Session.AddMoodEntry(c.Request.Context(), req.Mood, req.Label)
	if err != nil {
		s.storeError(c, err)
		return
	}
	s.metrics.TrackRecord("mood")
	created(c, entry)
}

func (s *Server) addBreathing(c *gin.Context) {
	var req breathingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	exercise, err := s.deps.Session.AddBreathingExercise(c.Request.Context(), req.Duration, req.Cycles)
	if err != nil {
		s.storeError(c, err)
		return
	}
	s.metrics.TrackRecord("breathing")
	created(c, exercise)
}

func (s *Server) addGratitude(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	entry, err := s.deps.Session.AddGratitudeEntry(c.Request.Context(), req.Content)
	if err != nil {
		s.storeError(c, err)
		return
	}
	s.metrics.TrackRecord("gratitude")
	created(c, entry)
}

func (s *Server) removeGratitude(c *gin.Context) {
	if err := s.deps.Session.RemoveGratitudeEntry(c.Request.Context(), c.Param("id")); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addWriting(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	entry, err := s.deps.Session.AddMindfulWriting(c.Request.Context(), req.Content)
	if err != nil {
		s.storeError(c, err)
		return
	}
	s.metrics.TrackRecord("writing")
	created(c, entry)
}

func (s *Server) removeWriting(c *gin.Context) {
	if err := s.deps.Session.RemoveMindfulWriting(c.Request.Context(), c.Param("id")); err != nil {
		s.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addMemoryGame(c *gin.Context) {
	var req memoryGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	stat, err := s.deps.Session.AddMemoryGameResult(c.Request.Context(), req.Moves, req.TimeElapsed, req.Won)
	if err != nil {
		s.storeError(c, err)
		return
	}
	s.metrics.TrackRecord("memory_game")
	created(c, stat)
}

func (s *Server) updateHabits(c *gin.Context) {
	var habits []models.Habit
	if err := c.ShouldBindJSON(&habits); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Session.UpdateSelfCareHabits(c.Request.Context(), habits)
	if err != nil {
		s.storeError(c, err)
		return
	}
	success(c, out)
}

func (s *Server) mergeHabits(c *gin.Context) {
	var habits []models.Habit
	if err := c.ShouldBindJSON(&habits); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Session.MergeSelfCareHabits(c.Request.Context(), habits)
	if err != nil {
		s.storeError(c, err)
		return
	}
	success(c, out)
}

func (s *Server) updateGoals(c *gin.Context) {
	var goals []models.Goal
	if err := c.ShouldBindJSON(&goals); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Session.UpdateSelfCareGoals(c.Request.Context(), goals)
	if err != nil {
		s.storeError(c, err)
		return
	}
	success(c, out)
}

func (s *Server) mergeGoals(c *gin.Context) {
	var goals []models.Goal
	if err := c.ShouldBindJSON(&goals); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Session.MergeSelfCareGoals(c.Request.Context(), goals)
	if err != nil {
		s.storeError(c, err)
		return
	}
	success(c, out)
}

func (s *Server) updateEnergy(c *gin.Context) {
	var levels []models.EnergyLevel
	if err := c.ShouldBindJSON(&levels); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Session.UpdateEnergyLevels(c.Request.Context(), levels)
	if err != nil {
		s.storeError(c, err)
		return
	}
	success(c, out)
}

func (s *Server) mergeEnergy(c *gin.Context) {
	var levels []models.EnergyLevel
	if err := c.ShouldBindJSON(&levels); err != nil {
		s.bindError(c, err)
		return
	}
	out, err := s.deps.Session.MergeEnergyLevels(c.Request.Context(), levels)
	if err != nil {
		s.storeError(c, err)
		return
	}
	success(c, out)
}

func (s *Server) getSummary(c *gin.Context) {
	var q dateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.bindError(c, err)
		return
	}
	success(c, s.deps.Session.GetDailySummary(q.Date))
}

// getSummaries defaults to the report window ending on the store's today.
func (s *Server) getSummaries(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.bindError(c, err)
		return
	}
	q.From, q.To = s.deps.Session.ReportWindow(q.From, q.To)
	if q.From > q.To {
		badRequest(c, "from must not be after to")
		return
	}
	success(c, s.deps.Session.GetRangeSummaries(q.From, q.To))
}

func (s *Server) getDates(c *gin.Context) {
	success(c, s.deps.Session.GetAvailableDates())
}
