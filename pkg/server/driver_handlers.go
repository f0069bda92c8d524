package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nicolarischia/f1-analytics/log"
	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/repository"
	driverrepos "github.com/nicolarischia/f1-analytics/pkg/repository/driver"
)

type driverRequest struct {
	DriverID     int    `json:"driver_id"     binding:"required"`
	DriverNumber int    `json:"driver_number"`
	Name         string `json:"name"          binding:"required"`
	TeamName     string `json:"team_name"`
	TeamColor    string `json:"team_color"`
}

func (s *Server) handleListDrivers(c *gin.Context) {
	items, err := driverrepos.LoadAll(c.Request.Context(), s.pool)
	if err != nil {
		s.l.Error("loading drivers", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleGetDriver(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	item, err := driverrepos.LoadByID(c.Request.Context(), s.pool, id)
	if err != nil {
		s.respondLoadError(c, "driver", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// handleDriverStats returns the season aggregates keyed by the upstream
// driver id.
func (s *Server) handleDriverStats(c *gin.Context) {
	driverID, err := strconv.Atoi(c.Param("driverId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid driver id"})
		return
	}
	item, err := driverrepos.LoadByDriverID(c.Request.Context(), s.pool, driverID)
	if err != nil {
		s.respondLoadError(c, "driver", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"driver_id": item.DriverID,
		"name":      item.Name,
		"team_name": item.TeamName,
		"stats":     item.Stats,
	})
}

func (s *Server) handleCreateDriver(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}
	item, err := driverrepos.Create(c.Request.Context(), s.pool, &model.Driver{
		DriverID:     req.DriverID,
		DriverNumber: req.DriverNumber,
		Name:         req.Name,
		TeamName:     req.TeamName,
		TeamColor:    req.TeamColor,
	})
	if err != nil {
		s.l.Error("creating driver", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleUpdateDriver(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}
	item, err := driverrepos.Update(c.Request.Context(), s.pool, id, &model.Driver{
		DriverNumber: req.DriverNumber,
		Name:         req.Name,
		TeamName:     req.TeamName,
		TeamColor:    req.TeamColor,
	})
	if err != nil {
		s.respondLoadError(c, "driver", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleDeleteDriver(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	num, err := driverrepos.DeleteByID(c.Request.Context(), s.pool, id)
	if err != nil {
		s.l.Error("deleting driver", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if num == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "driver not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}

func (s *Server) respondLoadError(c *gin.Context, entity string, err error) {
	if errors.Is(err, repository.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
		return
	}
	s.l.Error("loading "+entity, log.ErrorField(err))
	c.AbortWithStatus(http.StatusInternalServerError)
}
