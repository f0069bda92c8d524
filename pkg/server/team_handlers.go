package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nicolarischia/f1-analytics/log"
	"github.com/nicolarischia/f1-analytics/pkg/model"
	teamrepos "github.com/nicolarischia/f1-analytics/pkg/repository/team"
)

type teamRequest struct {
	TeamID        int    `json:"team_id"        binding:"required"`
	Name          string `json:"name"           binding:"required"`
	Base          string `json:"base"`
	TeamPrincipal string `json:"team_principal"`
	FoundedYear   int    `json:"founded_year"`
	Color         string `json:"color"`
}

func (s *Server) handleListTeams(c *gin.Context) {
	items, err := teamrepos.LoadAll(c.Request.Context(), s.pool)
	if err != nil {
		s.l.Error("loading teams", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleGetTeam(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	item, err := teamrepos.LoadByID(c.Request.Context(), s.pool, id)
	if err != nil {
		s.respondLoadError(c, "team", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleCreateTeam(c *gin.Context) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}
	item, err := teamrepos.Create(c.Request.Context(), s.pool, &model.Team{
		TeamID:        req.TeamID,
		Name:          req.Name,
		Base:          req.Base,
		TeamPrincipal: req.TeamPrincipal,
		FoundedYear:   req.FoundedYear,
		Color:         req.Color,
	})
	if err != nil {
		s.l.Error("creating team", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleUpdateTeam(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}
	item, err := teamrepos.Update(c.Request.Context(), s.pool, id, &model.Team{
		Name:          req.Name,
		Base:          req.Base,
		TeamPrincipal: req.TeamPrincipal,
		FoundedYear:   req.FoundedYear,
		Color:         req.Color,
	})
	if err != nil {
		s.respondLoadError(c, "team", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleDeleteTeam(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	num, err := teamrepos.DeleteByID(c.Request.Context(), s.pool, id)
	if err != nil {
		s.l.Error("deleting team", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if num == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "team deleted"})
}
