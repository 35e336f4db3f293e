package rest

import (
	"net/http"

	"trovescan/core"
	"trovescan/handler/render"
)

func transactionsHandler(transactions core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := bindPage(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		rows, err := transactions.List(ctx, params.Offset, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, rows)
	}
}

func liquidationsHandler(liquidations core.LiquidationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := bindPage(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		rows, err := liquidations.List(ctx, params.Offset, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, rows)
	}
}

func redemptionsHandler(redemptions core.RedemptionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := bindPage(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		rows, err := redemptions.List(ctx, params.Offset, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, rows)
	}
}
