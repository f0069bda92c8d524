package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nicolarischia/f1-analytics/log"
	"github.com/nicolarischia/f1-analytics/pkg/auth"
	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/repository"
	userrepos "github.com/nicolarischia/f1-analytics/pkg/repository/user"
)

const currentUserKey = "currentUser"

// accountAuth presents a stored account as an auth.Authentication.
type accountAuth struct {
	account *model.User
}

func (a *accountAuth) Name() string              { return a.account.Username }
func (a *accountAuth) Principal() auth.Principal { return a }

func (a *accountAuth) Roles() []auth.Role {
	if a.account.IsAdmin {
		return []auth.Role{auth.RoleAdmin, auth.RoleUser}
	}
	return []auth.Role{auth.RoleUser}
}

// authRequired validates the bearer token and loads the account into the
// request context. Unknown or expired tokens end the request with 401.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "missing token"})
			return
		}
		claims, err := s.issuer.VerifyToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "invalid token"})
			return
		}
		extID, err := claims.SubjectID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "invalid token"})
			return
		}
		account, err := userrepos.LoadByExternalID(c.Request.Context(), s.pool, extID)
		if err != nil {
			if errors.Is(err, repository.ErrNoData) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					gin.H{"error": "unknown account"})
				return
			}
			s.l.Error("loading account", log.ErrorField(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Request = c.Request.WithContext(auth.AddAuthToContext(
			c.Request.Context(), &accountAuth{account: account}))
		c.Set(currentUserKey, account)
		c.Next()
	}
}

// adminRequired must run after authRequired.
func (s *Server) adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.HasRole(auth.FromContext(c.Request.Context()), auth.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"error": auth.ErrPermissionDenied.Error()})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(currentUserKey); ok {
		if account, ok := v.(*model.User); ok {
			return account
		}
	}
	return nil
}
