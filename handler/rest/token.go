package rest

import (
	"net/http"
	"strings"

	"trovescan/core"
	"trovescan/handler/render"
	"trovescan/handler/views"

	"github.com/go-chi/chi"
)

func tokenHandler(tokens core.TokenStore, tokenChanges core.TokenChangeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		address := strings.ToLower(chi.URLParam(r, "address"))

		token, err := tokens.Find(ctx, address)
		if err != nil {
			render.Error(w, err)
			return
		}

		if token.ID == "" {
			render.NotFound(w, "unknown token")
			return
		}

		changes, err := tokenChanges.ListByToken(ctx, token.ID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, &views.Token{
			Token:   *token,
			Changes: changes,
		})
	}
}
