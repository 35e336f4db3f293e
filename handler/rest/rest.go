package rest

import (
	"errors"
	"net/http"

	"trovescan/core"
	"trovescan/handler/param"
	"trovescan/handler/render"

	"github.com/go-chi/chi"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// Handle handle rest api request
func Handle(
	globals core.GlobalStore,
	systemStates core.SystemStateStore,
	transactions core.TransactionStore,
	users core.UserStore,
	troves core.TroveStore,
	troveChanges core.TroveChangeStore,
	deposits core.StabilityDepositStore,
	depositChanges core.StabilityDepositChangeStore,
	stakes core.StakeStore,
	stakeChanges core.StakeChangeStore,
	liquidations core.LiquidationStore,
	redemptions core.RedemptionStore,
	tokens core.TokenStore,
	tokenChanges core.TokenChangeStore,
	tokenBalances core.TokenBalanceStore,
	priceChanges core.PriceChangeStore,
	collSurplusChanges core.CollSurplusChangeStore,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w, "not found")
	})

	router.Get("/global", globalHandler(globals))
	router.Get("/system-state", systemStateHandler(globals, systemStates))
	router.Get("/system-states", systemStatesHandler(systemStates))
	router.Get("/changes", changesHandler(troveChanges, depositChanges, stakeChanges, tokenChanges, priceChanges, collSurplusChanges))
	router.Get("/transactions", transactionsHandler(transactions))
	router.Get("/liquidations", liquidationsHandler(liquidations))
	router.Get("/redemptions", redemptionsHandler(redemptions))
	router.Get("/owners/{address}", ownerHandler(globals, systemStates, users, troves, deposits, stakes, tokenBalances))
	router.Get("/owners/{address}/trove", troveHandler(globals, systemStates, users, troves))
	router.Get("/owners/{address}/trove-changes", troveChangesHandler(users, troves, troveChanges))
	router.Get("/owners/{address}/deposit", depositHandler(users, deposits))
	router.Get("/owners/{address}/stake", stakeHandler(users, stakes, stakeChanges))
	router.Get("/tokens/{address}", tokenHandler(tokens, tokenChanges))

	return router
}

type pageParams struct {
	Offset int64 `json:"offset"`
	Limit  int   `json:"limit"`
}

func bindPage(r *http.Request) (pageParams, error) {
	var params pageParams
	if err := param.Binding(r, &params); err != nil {
		return params, err
	}

	if params.Limit <= 0 {
		params.Limit = defaultLimit
	} else if params.Limit > maxLimit {
		params.Limit = maxLimit
	}

	if params.Offset < 0 {
		return params, errors.New("negative offset")
	}

	return params, nil
}
