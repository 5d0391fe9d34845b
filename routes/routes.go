package routes

import (
	"recipebook/auth"
	"recipebook/middleware"
	"recipebook/ratelim"
	"recipebook/recipes"

	"github.com/julienschmidt/httprouter"
)

func AddRecipeRoutes(router *httprouter.Router, api *recipes.API, authmw *middleware.Auth, rateLimiter *ratelim.RateLimiter) {
	router.GET("/api/recipes", api.GetRecipes)
	router.GET("/api/recipes/:id", api.GetRecipeByPath)
	router.GET("/api/recipes/:id/:sub", api.GetRecipeSubPath)

	router.POST("/api/recipes", rateLimiter.Limit(authmw.Authenticate(api.CreateRecipe)))
	router.PUT("/api/recipes/:id", rateLimiter.Limit(authmw.Authenticate(api.UpdateRecipe)))
	router.DELETE("/api/recipes/:id", rateLimiter.Limit(authmw.Authenticate(api.DeleteRecipe)))
	router.POST("/api/recipes/:id/like", rateLimiter.Limit(authmw.Authenticate(api.LikeRecipe)))
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.GET("/auth-check", auth.AuthCheck)
	router.GET("/api/auth/me", rateLimiter.Limit(auth.Me))
}
