package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ladderhq/ladder/internal/app/controllers"
	"github.com/ladderhq/ladder/internal/middleware"
	"github.com/ladderhq/ladder/internal/pkg/auth"
)

// Controllers bundles every controller the router mounts
type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Opportunity *controllers.OpportunityController
	Application *controllers.ApplicationController
	Favorite    *controllers.FavoriteController
	Community   *controllers.CommunityController
	Post        *controllers.PostController
	Message     *controllers.MessageController
	Report      *controllers.ReportController
	Search      *controllers.SearchController
	Admin       *controllers.AdminController
	Health      *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, jwtService *auth.JWTService) {
	// Health endpoints sit outside the versioned API
	router.GET("/health", ctrl.Health.Health)
	router.GET("/health/detailed", ctrl.Health.DetailedHealth)

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", ctrl.Auth.SignUp)
		authGroup.POST("/signin", ctrl.Auth.SignIn)
		authGroup.POST("/forgot-password", ctrl.Auth.ForgotPassword)
		authGroup.POST("/reset-password", ctrl.Auth.ResetPassword)
		authGroup.POST("/confirm-email", ctrl.Auth.ConfirmEmailChange)
	}

	// --- Public opportunity discovery ---
	v1.GET("/opportunities", ctrl.Opportunity.List)
	v1.GET("/opportunities/:id", ctrl.Opportunity.Get)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService))
	{
		authenticated.POST("/auth/change-email", ctrl.Auth.ChangeEmail)

		users := authenticated.Group("/users")
		{
			users.GET("/me", ctrl.User.GetMe)
			users.DELETE("/me", ctrl.User.DeleteMe)
			users.PATCH("/me/profile", ctrl.User.UpdateProfile)
			users.PATCH("/me/settings", ctrl.User.UpdateSettings)
			users.GET("/:id", ctrl.User.GetUser)
		}

		opportunities := authenticated.Group("/opportunities")
		{
			opportunities.POST("", ctrl.Opportunity.Create)
			opportunities.GET("/my", ctrl.Opportunity.ListOwn)
			opportunities.PATCH("/:id", ctrl.Opportunity.Update)
			opportunities.DELETE("/:id", ctrl.Opportunity.Delete)
			opportunities.GET("/:id/applications", ctrl.Application.ListForOpportunity)
			opportunities.POST("/:id/favorite", ctrl.Favorite.Toggle)
		}

		applications := authenticated.Group("/applications")
		{
			applications.POST("", ctrl.Application.Apply)
			applications.GET("", ctrl.Application.ListOwn)
			applications.PATCH("/:id/status", ctrl.Application.UpdateStatus)
			applications.DELETE("/:id", ctrl.Application.Withdraw)
		}

		authenticated.GET("/favorites", ctrl.Favorite.List)

		communities := authenticated.Group("/communities")
		{
			communities.GET("", ctrl.Community.List)
			communities.POST("", ctrl.Community.Create)
			communities.GET("/mine", ctrl.Community.ListOwn)
			communities.GET("/:id", ctrl.Community.Get)
			communities.PATCH("/:id", ctrl.Community.Update)
			communities.DELETE("/:id", ctrl.Community.Delete)
			communities.POST("/:id/join", ctrl.Community.Join)
			communities.POST("/:id/leave", ctrl.Community.Leave)
		}

		posts := authenticated.Group("/posts")
		{
			posts.GET("", ctrl.Post.Feed)
			posts.POST("", ctrl.Post.Create)
			posts.GET("/:id", ctrl.Post.Get)
			posts.DELETE("/:id", ctrl.Post.Delete)
			posts.POST("/:id/like", ctrl.Post.ToggleLike)
			posts.GET("/:id/comments", ctrl.Post.Comments)
			posts.POST("/:id/comments", ctrl.Post.Comment)
			posts.DELETE("/comments/:commentId", ctrl.Post.DeleteComment)
		}

		conversations := authenticated.Group("/conversations")
		{
			conversations.GET("", ctrl.Message.ListConversations)
			conversations.POST("", ctrl.Message.StartConversation)
			conversations.GET("/:id/messages", ctrl.Message.Messages)
			conversations.POST("/:id/messages", ctrl.Message.Send)
		}

		authenticated.POST("/reports", ctrl.Report.Create)
		authenticated.GET("/search", ctrl.Search.Search)

		// --- Admin routes ---
		admin := authenticated.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("/users", ctrl.Admin.ListUsers)
			admin.PATCH("/users/:id/role", ctrl.Admin.SetAdmin)
			admin.DELETE("/users/:id", ctrl.Admin.DeleteUser)
			admin.GET("/reports", ctrl.Admin.ListReports)
			admin.PATCH("/reports/:id", ctrl.Admin.ReviewReport)
		}
	}
}
