package rest

import (
	"context"
	"net/http"

	"trovescan/core"
	"trovescan/handler/render"
)

func globalHandler(globals core.GlobalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		global, err := globals.Find(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		if global.ID == "" {
			render.NotFound(w, "no events indexed yet")
			return
		}

		render.JSON(w, global)
	}
}

func currentSystemState(ctx context.Context, globals core.GlobalStore, systemStates core.SystemStateStore) (*core.SystemState, error) {
	global, err := globals.Find(ctx)
	if err != nil {
		return nil, err
	}

	if global.CurrentSystemStateID == "" {
		return nil, nil
	}

	return systemStates.Find(ctx, global.CurrentSystemStateID)
}

func systemStateHandler(globals core.GlobalStore, systemStates core.SystemStateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		state, err := currentSystemState(ctx, globals, systemStates)
		if err != nil {
			render.Error(w, err)
			return
		}

		if state == nil {
			render.NotFound(w, "no system state yet")
			return
		}

		render.JSON(w, state)
	}
}

func systemStatesHandler(systemStates core.SystemStateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := bindPage(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		states, err := systemStates.List(ctx, params.Offset, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, states)
	}
}
