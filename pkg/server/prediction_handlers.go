package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/nicolarischia/f1-analytics/log"
	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/repository"
	predictionrepos "github.com/nicolarischia/f1-analytics/pkg/repository/prediction"
)

type predictionRequest struct {
	Race     string `json:"race"     binding:"required"`
	Driver   string `json:"driver"   binding:"required"`
	Position int    `json:"position" binding:"required,min=1,max=20"`
	Notes    string `json:"notes"`
}

func (s *Server) handleCreatePrediction(c *gin.Context) {
	var req predictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}
	account := currentUser(c)
	item, err := predictionrepos.Create(c.Request.Context(), s.pool,
		&model.Prediction{
			UserID:   account.ID,
			Race:     req.Race,
			Driver:   req.Driver,
			Position: req.Position,
			Notes:    req.Notes,
		})
	if err != nil {
		s.l.Error("creating prediction", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// handleMyPredictions lists the caller's predictions, newest first.
func (s *Server) handleMyPredictions(c *gin.Context) {
	account := currentUser(c)
	items, err := predictionrepos.LoadByUser(c.Request.Context(), s.pool, account.ID)
	if err != nil {
		s.l.Error("loading predictions", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleGetPrediction(c *gin.Context) {
	extID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	item, err := predictionrepos.LoadByExternalID(c.Request.Context(), s.pool, extID)
	if err != nil {
		s.respondLoadError(c, "prediction", err)
		return
	}
	// predictions are private to their owner
	if item.UserID != currentUser(c).ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your prediction"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleUpdatePrediction(c *gin.Context) {
	extID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req predictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}
	item, err := predictionrepos.Update(c.Request.Context(), s.pool,
		extID, currentUser(c).ID,
		&model.Prediction{
			Race:     req.Race,
			Driver:   req.Driver,
			Position: req.Position,
			Notes:    req.Notes,
		})
	if err != nil {
		if errors.Is(err, repository.ErrNoData) {
			s.respondForeignPrediction(c, extID)
			return
		}
		s.l.Error("updating prediction", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleDeletePrediction(c *gin.Context) {
	extID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	num, err := predictionrepos.DeleteByExternalID(c.Request.Context(), s.pool,
		extID, currentUser(c).ID)
	if err != nil {
		s.l.Error("deleting prediction", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if num == 0 {
		s.respondForeignPrediction(c, extID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "prediction deleted"})
}

// respondForeignPrediction distinguishes a missing prediction (404) from
// one owned by somebody else (403).
func (s *Server) respondForeignPrediction(c *gin.Context, extID uuid.UUID) {
	_, err := predictionrepos.LoadByExternalID(c.Request.Context(), s.pool, extID)
	switch {
	case err == nil:
		c.JSON(http.StatusForbidden, gin.H{"error": "not your prediction"})
	case errors.Is(err, repository.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": "prediction not found"})
	default:
		s.l.Error("loading prediction", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
