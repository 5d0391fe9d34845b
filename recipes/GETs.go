package recipes

import (
	"context"
	"net/http"
	"time"

	"recipebook/models"
	"recipebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const queryTimeout = 5 * time.Second

// --- List Recipes ---
func (api *API) GetRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	recipes, err := api.store.List(ctx, r.URL.Query().Get("cuisine"))
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to fetch recipes", err)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	utils.RespondWithJSON(w, http.StatusOK, recipes)
}

func (api *API) GetTopRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	limit := utils.QueryInt(r, "limit", defaultTopLimit)
	recipes, err := api.store.Top(ctx, limit)
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to fetch top recipes", err)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	utils.RespondWithJSON(w, http.StatusOK, recipes)
}

func (api *API) GetUserRecipes(w http.ResponseWriter, r *http.Request, userID string) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	recipes, err := api.store.ByUser(ctx, userID)
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to fetch user recipes", err)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	utils.RespondWithJSON(w, http.StatusOK, recipes)
}

// --- Single Recipe ---
func (api *API) GetRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID format")
		return
	}

	recipe, err := api.store.Get(ctx, id)
	if err == ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to fetch recipe", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, recipe)
}

// --- Counts ---
func (api *API) CountRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	count, err := api.store.Count(ctx)
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to get total recipes count", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count})
}

func (api *API) CountMyRecipes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "userId is required")
		return
	}

	count, err := api.store.CountByUser(ctx, userID)
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to get my recipes count", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count})
}

func (api *API) GetCuisines(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	cuisines, err := api.store.Cuisines(ctx)
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to fetch cuisines", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cuisines)
}

// --- Path dispatch ---
//
// httprouter rejects static siblings of a wildcard segment, so the reserved
// collection paths (top, count, cuisines, user/:userId, my/count) share the
// /:id routes and are dispatched here.

func (api *API) GetRecipeByPath(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	switch ps.ByName("id") {
	case "top":
		api.GetTopRecipes(w, r, ps)
	case "count":
		api.CountRecipes(w, r, ps)
	case "cuisines":
		api.GetCuisines(w, r, ps)
	default:
		api.GetRecipe(w, r, ps)
	}
}

func (api *API) GetRecipeSubPath(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, sub := ps.ByName("id"), ps.ByName("sub")
	switch {
	case id == "user":
		api.GetUserRecipes(w, r, sub)
	case id == "my" && sub == "count":
		api.CountMyRecipes(w, r, ps)
	case sub == "print":
		api.PrintRecipe(w, r, ps)
	default:
		utils.RespondWithError(w, http.StatusNotFound, "Route not found")
	}
}
