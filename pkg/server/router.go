package server

import "github.com/gin-gonic/gin"

func (s *Server) setupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/register", s.handleRegister)
		api.POST("/login", s.handleLogin)

		api.GET("/drivers", s.handleListDrivers)
		api.GET("/drivers/:id", s.handleGetDriver)
		api.GET("/driver-stats/:driverId", s.handleDriverStats)
		api.GET("/teams", s.handleListTeams)
		api.GET("/teams/:id", s.handleGetTeam)

		api.GET("/races", s.handleListRaces)
		api.GET("/laptimes/:sessionId", s.handleLapTimes)
		api.GET("/race-results/:sessionId", s.handleRaceResults)

		authed := api.Group("", s.authRequired())
		{
			authed.GET("/profile", s.handleProfile)
			authed.POST("/change-password", s.handleChangePassword)
			authed.DELETE("/delete-account", s.handleDeleteAccount)

			authed.POST("/predictions", s.handleCreatePrediction)
			authed.GET("/predictions/my-predictions", s.handleMyPredictions)
			authed.GET("/predictions/:id", s.handleGetPrediction)
			authed.PUT("/predictions/:id", s.handleUpdatePrediction)
			authed.DELETE("/predictions/:id", s.handleDeletePrediction)

			admin := authed.Group("", s.adminRequired())
			{
				admin.POST("/drivers", s.handleCreateDriver)
				admin.PUT("/drivers/:id", s.handleUpdateDriver)
				admin.DELETE("/drivers/:id", s.handleDeleteDriver)
				admin.POST("/teams", s.handleCreateTeam)
				admin.PUT("/teams/:id", s.handleUpdateTeam)
				admin.DELETE("/teams/:id", s.handleDeleteTeam)
			}
		}
	}
}
