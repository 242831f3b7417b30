package echo

import (
	e "github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes wires every handler under /api/v1. Everything except the
// login and password-reset endpoints sits behind bearer auth; the public
// endpoints get a rate limiter instead.
func RegisterRoutes(server *e.Echo, parser AccessTokenParser, authHandler *AuthHandler, userHandler *UserHandler, postHandler *PostHandler, importHandler *ImportHandler) {
	api := server.Group("/api/v1")

	limited := api.Group("", middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(10)))
	limited.POST("/login", authHandler.Login)
	limited.POST("/forgot-password", authHandler.ForgotPassword)
	limited.POST("/reset-password", authHandler.ResetPassword)

	api.POST("/refresh", authHandler.Refresh)

	guarded := api.Group("", RequireAuth(parser))

	guarded.GET("/me", authHandler.Me)
	guarded.POST("/logout", authHandler.Logout)

	guarded.GET("/users", userHandler.List)
	guarded.GET("/users/show/:user_id", userHandler.Show)
	guarded.POST("/users/create", userHandler.Create)
	guarded.POST("/users/update/:user_id", userHandler.Update)
	guarded.POST("/users/multiple-delete", userHandler.MultipleDelete)
	guarded.POST("/users/lock", userHandler.Lock)
	guarded.POST("/users/unlock", userHandler.Unlock)

	guarded.GET("/posts", postHandler.List)
	guarded.GET("/posts/show/:post_id", postHandler.Show)
	guarded.POST("/posts/create", postHandler.Create)
	guarded.POST("/posts/update/:post_id", postHandler.Update)
	guarded.POST("/posts/multiple-delete", postHandler.MultipleDelete)
	guarded.GET("/posts/export/csv", postHandler.Export)

	guarded.POST("/posts/import/csv", importHandler.ImportPosts)
	guarded.GET("/posts/import/progress/:task_id", importHandler.ImportProgress)
}
