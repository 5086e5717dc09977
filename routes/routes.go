package routes

import (
	"net/http"

	"savora/auth"
	"savora/mealplans"
	"savora/middleware"
	"savora/profile"
	"savora/ratelim"
	"savora/recipes"
	"savora/suggestions"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
}

func AddRecipeRoutes(router *httprouter.Router) {
	router.GET("/api/recipes", middleware.OptionalAuth(recipes.GetRecipes))
	router.POST("/api/recipes", middleware.Authenticate(recipes.CreateRecipe))
	router.GET("/api/recipes/recipe/:id", middleware.OptionalAuth(recipes.GetRecipe))
	router.PUT("/api/recipes/recipe/:id", middleware.Authenticate(recipes.UpdateRecipe))
	router.DELETE("/api/recipes/recipe/:id", middleware.Authenticate(recipes.DeleteRecipe))

	router.POST("/api/recipes/recipe/:id/comment", middleware.Authenticate(recipes.AddComment))
	router.PUT("/api/recipes/recipe/:id/rating", middleware.Authenticate(recipes.AddRating))

	router.GET("/api/recipes/favorites", middleware.Authenticate(recipes.GetFavorites))
	router.POST("/api/recipes/favorites", middleware.Authenticate(recipes.AddFavorite))
	router.DELETE("/api/recipes/favorites", middleware.Authenticate(recipes.RemoveFavorite))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile/edit", middleware.Authenticate(profile.EditProfile))

	router.GET("/api/users", middleware.Authenticate(profile.GetAllUsers))

	router.PUT("/api/follows/:id", ratelim.RateLimit(middleware.Authenticate(profile.Follow)))
	router.DELETE("/api/follows/:id", ratelim.RateLimit(middleware.Authenticate(profile.Unfollow)))
}

func AddMealPlanRoutes(router *httprouter.Router) {
	router.GET("/api/mealplans", middleware.Authenticate(mealplans.GetMealPlans))
	router.POST("/api/mealplans", middleware.Authenticate(mealplans.CreateMealPlan))
	router.GET("/api/mealplans/:id", middleware.Authenticate(mealplans.GetMealPlan))
	router.PUT("/api/mealplans/:id", middleware.Authenticate(mealplans.UpdateMealPlan))
	router.DELETE("/api/mealplans/:id", middleware.Authenticate(mealplans.DeleteMealPlan))
}

func AddSuggestionsRoutes(router *httprouter.Router) {
	router.GET("/api/suggestions/follow", ratelim.RateLimit(middleware.Authenticate(suggestions.SuggestFollowers)))
}
