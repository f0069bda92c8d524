package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicolarischia/f1-analytics/log"
	"github.com/nicolarischia/f1-analytics/pkg/auth"
	"github.com/nicolarischia/f1-analytics/pkg/model"
	userrepos "github.com/nicolarischia/f1-analytics/pkg/repository/user"
)

type (
	registerRequest struct {
		Username string `json:"username" binding:"required,min=3,max=40"`
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	loginRequest struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	changePasswordRequest struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword"     binding:"required,min=6"`
	}
	tokenResponse struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}
)

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}
	ctx := c.Request.Context()
	taken, err := userrepos.ExistsByUsernameOrEmail(ctx, s.pool, req.Username, req.Email)
	if err != nil {
		s.l.Error("checking account", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.l.Error("hashing password", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	account, err := userrepos.Create(ctx, s.pool, &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		s.l.Error("creating account", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	token, err := s.issuer.IssueToken(account.ExternalID, account.IsAdmin)
	if err != nil {
		s.l.Error("issuing token", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, tokenResponse{Token: token, User: account})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}
	ctx := c.Request.Context()
	account, err := userrepos.LoadByEmail(ctx, s.pool, req.Email)
	if err != nil {
		// same response for unknown account and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !auth.VerifyPassword(account.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, err := s.issuer.IssueToken(account.ExternalID, account.IsAdmin)
	if err != nil {
		s.l.Error("issuing token", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Token: token, User: account})
}

func (s *Server) handleProfile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) handleChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}
	account := currentUser(c)
	if !auth.VerifyPassword(account.PasswordHash, req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.l.Error("hashing password", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if err := userrepos.UpdatePassword(
		c.Request.Context(), s.pool, account.ID, hash); err != nil {
		s.l.Error("updating password", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (s *Server) handleDeleteAccount(c *gin.Context) {
	account := currentUser(c)
	num, err := userrepos.DeleteByID(c.Request.Context(), s.pool, account.ID)
	if err != nil {
		s.l.Error("deleting account", log.ErrorField(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if num == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
