package recipes

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"recipebook/middleware"
	"recipebook/models"
	"recipebook/mq"
	"recipebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultTopLimit = 6

// API holds the recipe handlers' collaborators. Everything is injected;
// the handlers own no global state.
type API struct {
	store         Store
	events        *mq.Emitter
	includeDetail bool
	shareBaseURL  string
}

func NewAPI(store Store, events *mq.Emitter, includeErrDetail bool, shareBaseURL string) *API {
	return &API{
		store:         store,
		events:        events,
		includeDetail: includeErrDetail,
		shareBaseURL:  shareBaseURL,
	}
}

func (api *API) fail(w http.ResponseWriter, code int, msg string, err error) {
	if err != nil {
		log.Printf("recipes: %s: %v", msg, err)
	}
	utils.RespondWithErrorDetail(w, code, msg, err, api.includeDetail)
}

// fields the client may never set or change directly
var protectedFields = map[string]bool{
	"_id":       true,
	"userId":    true,
	"userName":  true,
	"likes":     true,
	"likedBy":   true,
	"createdAt": true,
}

// --- Create ---
func (api *API) CreateRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	claims := middleware.ClaimsFromRequest(r)

	var recipe models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		api.fail(w, http.StatusBadRequest, "Failed to create recipe", err)
		return
	}

	recipe.Normalize()
	if err := recipe.Validate(); err != nil {
		api.fail(w, http.StatusBadRequest, "Failed to create recipe", err)
		return
	}

	// Ownership and counters come from the server, never the payload.
	recipe.ID = primitive.NilObjectID
	recipe.UserID = claims.UserID()
	recipe.UserName = claims.Username()
	recipe.Likes = 0
	recipe.LikedBy = []string{}
	recipe.CreatedAt = time.Now().UTC()

	id, err := api.store.Create(ctx, &recipe)
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to create recipe", err)
		return
	}
	recipe.ID = id

	api.events.Emit(r.Context(), mq.RecipeCreated, id.Hex(), recipe.UserID)
	utils.RespondWithJSON(w, http.StatusCreated, recipe)
}

// --- Update ---
func (api *API) UpdateRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid recipe ID format")
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		api.fail(w, http.StatusBadRequest, "Failed to update recipe", err)
		return
	}

	recipe, err := api.store.Get(ctx, id)
	if err == ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to update recipe", err)
		return
	}

	claims := middleware.ClaimsFromRequest(r)
	if recipe.UserID != claims.UserID() {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized")
		return
	}

	for key := range fields {
		if protectedFields[key] {
			delete(fields, key)
		}
	}
	// A legacy client sends instructions as one newline-separated string.
	if s, ok := fields["instructions"].(string); ok {
		fields["instructions"] = models.SplitLines(s)
	}
	if len(fields) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	updated, err := api.store.Update(ctx, id, fields)
	if err == ErrNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		api.fail(w, http.StatusBadRequest, "Failed to update recipe", err)
		return
	}

	api.events.Emit(r.Context(), mq.RecipeUpdated, id.Hex(), recipe.UserID)
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// --- Delete ---
func (api *API) DeleteRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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
		api.fail(w, http.StatusInternalServerError, "Failed to delete recipe", err)
		return
	}

	claims := middleware.ClaimsFromRequest(r)
	if recipe.UserID != claims.UserID() {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized")
		return
	}

	if err := api.store.Delete(ctx, id); err != nil && err != ErrNotFound {
		api.fail(w, http.StatusInternalServerError, "Failed to delete recipe", err)
		return
	}

	api.events.Emit(r.Context(), mq.RecipeDeleted, id.Hex(), recipe.UserID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Recipe deleted successfully"})
}

// --- Like ---
func (api *API) LikeRecipe(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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
		api.fail(w, http.StatusInternalServerError, "Failed to like recipe", err)
		return
	}

	claims := middleware.ClaimsFromRequest(r)
	userID := claims.UserID()
	if recipe.UserID == userID {
		utils.RespondWithError(w, http.StatusForbidden, "You can't like your own recipe")
		return
	}

	applied, err := api.store.Like(ctx, id, userID)
	if err != nil {
		api.fail(w, http.StatusInternalServerError, "Failed to like recipe", err)
		return
	}

	// Repeated likes are a no-op: the count stays in step with the set.
	likes := recipe.Likes
	if applied {
		likes++
		api.events.Emit(r.Context(), mq.RecipeLiked, id.Hex(), userID)
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Liked successfully",
		"likes":   likes,
	})
}
