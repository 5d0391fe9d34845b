package auth

import (
	"net/http"
	"strings"

	"recipebook/utils"

	"github.com/julienschmidt/httprouter"
)

// AuthCheck reports whether an Authorization header reached the server.
// The client uses it to debug proxy setups that strip the header.
func AuthCheck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	header := r.Header.Get("Authorization")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"authorized":   header != "",
		"headerLength": len(header),
	})
}

// Me echoes a minimal profile back to the client, defaulting the display
// name to the email local-part.
func Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	name := q.Get("name")
	email := q.Get("email")
	uid := q.Get("uid")

	if email == "" || uid == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email and uid are required")
		return
	}
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	if name == "" {
		name = "User"
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"name":  name,
		"email": email,
		"uid":   uid,
	})
}
