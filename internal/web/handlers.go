package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/peterkuimelis/mythduel/internal/game"
	"github.com/peterkuimelis/mythduel/internal/service"
)

// createMatchRequest is the body of POST /api/matches.
type createMatchRequest struct {
	Player1    string `json:"player1" binding:"required"`
	Player2    string `json:"player2" binding:"required"`
	Mythology1 string `json:"mythology1" binding:"required"`
	Mythology2 string `json:"mythology2" binding:"required"`
}

// actionResponse is the body returned by POST /api/matches/:id/actions.
type actionResponse struct {
	Applied  bool        `json:"applied"`
	Reason   string      `json:"reason,omitempty"`
	Terminal bool        `json:"terminal"`
	Match    *game.Match `json:"match"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleMythologies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mythologies": s.catalog.Mythologies()})
}

func (s *Server) handleCards(c *gin.Context) {
	var cards []*game.Card
	if m := c.Query("mythology"); m != "" {
		cards = s.catalog.Cards(m)
	} else {
		for _, m := range s.catalog.Mythologies() {
			cards = append(cards, s.catalog.Cards(m)...)
		}
	}
	if cards == nil {
		cards = []*game.Card{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(cards), "cards": cards})
}

func (s *Server) handleDeck(c *gin.Context) {
	mythology := c.Param("mythology")
	deck := game.BuildDeck(s.catalog, mythology)
	if deck == nil {
		deck = []*game.Card{}
	}
	c.JSON(http.StatusOK, gin.H{"mythology": mythology, "count": len(deck), "cards": deck})
}

func (s *Server) handleListMatches(c *gin.Context) {
	ids, err := s.svc.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": ids})
}

func (s *Server) handleCreateMatch(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, m := range []string{req.Mythology1, req.Mythology2} {
		if len(s.catalog.Cards(m)) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mythology " + m})
			return
		}
	}

	m, err := s.svc.CreateMatch(c.Request.Context(), req.Player1, req.Player2, req.Mythology1, req.Mythology2)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (s *Server) handleGetMatch(c *gin.Context) {
	m, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) handleDeleteMatch(c *gin.Context) {
	if err := s.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAction(c *gin.Context) {
	var a game.Action
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if a.Type == game.ActionUnknown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing action type"})
		return
	}
	res, m, err := s.svc.Submit(c.Request.Context(), c.Param("id"), a)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, actionResponse{
		Applied:  res.Applied,
		Reason:   res.Reason,
		Terminal: res.Terminal,
		Match:    m,
	})
}

// fail maps service errors onto HTTP responses.
func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrMatchNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
