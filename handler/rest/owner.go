package rest

import (
	"net/http"
	"sort"
	"strings"

	"trovescan/core"
	"trovescan/handler/render"
	"trovescan/handler/views"
	"trovescan/pkg/number"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func ownerAddress(r *http.Request) string {
	return strings.ToLower(chi.URLParam(r, "address"))
}

func troveView(trove *core.Trove, price decimal.Decimal) *views.Trove {
	return &views.Trove{
		Trove:           *trove,
		CollateralRatio: number.CollateralRatio(trove.Collateral, trove.Debt, price),
	}
}

func ownerHandler(
	globals core.GlobalStore,
	systemStates core.SystemStateStore,
	users core.UserStore,
	troves core.TroveStore,
	deposits core.StabilityDepositStore,
	stakes core.StakeStore,
	tokenBalances core.TokenBalanceStore,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		address := ownerAddress(r)

		user, err := users.Find(ctx, address)
		if err != nil {
			render.Error(w, err)
			return
		}

		if user.ID == "" {
			render.NotFound(w, "unknown owner")
			return
		}

		owner := &views.Owner{User: *user}

		if user.CurrentTroveID != "" {
			trove, err := troves.Find(ctx, user.CurrentTroveID)
			if err != nil {
				render.Error(w, err)
				return
			}

			state, err := currentSystemState(ctx, globals, systemStates)
			if err != nil {
				render.Error(w, err)
				return
			}

			price := decimal.Zero
			if state != nil {
				price = state.Price
			}

			owner.Trove = troveView(trove, price)
		}

		if user.CurrentStabilityDepositID != "" {
			deposit, err := deposits.Find(ctx, user.CurrentStabilityDepositID)
			if err != nil {
				render.Error(w, err)
				return
			}

			owner.StabilityDeposit = deposit
		}

		if user.StakeID != "" {
			stake, err := stakes.Find(ctx, user.StakeID)
			if err != nil {
				render.Error(w, err)
				return
			}

			owner.Stake = stake
		}

		balances, err := tokenBalances.ListByOwner(ctx, address)
		if err != nil {
			render.Error(w, err)
			return
		}

		owner.Balances = balances
		render.JSON(w, owner)
	}
}

func troveHandler(
	globals core.GlobalStore,
	systemStates core.SystemStateStore,
	users core.UserStore,
	troves core.TroveStore,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := users.Find(ctx, ownerAddress(r))
		if err != nil {
			render.Error(w, err)
			return
		}

		if user.CurrentTroveID == "" {
			render.NotFound(w, "no open trove")
			return
		}

		trove, err := troves.Find(ctx, user.CurrentTroveID)
		if err != nil {
			render.Error(w, err)
			return
		}

		state, err := currentSystemState(ctx, globals, systemStates)
		if err != nil {
			render.Error(w, err)
			return
		}

		price := decimal.Zero
		if state != nil {
			price = state.Price
		}

		render.JSON(w, troveView(trove, price))
	}
}

// troveChangesHandler returns every change of every trove incarnation the
// owner ever had, in global change order.
func troveChangesHandler(
	users core.UserStore,
	troves core.TroveStore,
	troveChanges core.TroveChangeStore,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		address := ownerAddress(r)

		rows, err := troves.ListByOwner(ctx, address)
		if err != nil {
			render.Error(w, err)
			return
		}

		var changes []*core.TroveChange
		for _, trove := range rows {
			cs, err := troveChanges.ListByTrove(ctx, trove.ID)
			if err != nil {
				render.Error(w, err)
				return
			}

			changes = append(changes, cs...)
		}

		sort.Slice(changes, func(i, j int) bool {
			return changes[i].SequenceNumber < changes[j].SequenceNumber
		})

		render.JSON(w, changes)
	}
}

func depositHandler(users core.UserStore, deposits core.StabilityDepositStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := users.Find(ctx, ownerAddress(r))
		if err != nil {
			render.Error(w, err)
			return
		}

		if user.CurrentStabilityDepositID == "" {
			render.NotFound(w, "no stability deposit")
			return
		}

		deposit, err := deposits.Find(ctx, user.CurrentStabilityDepositID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, deposit)
	}
}

func stakeHandler(users core.UserStore, stakes core.StakeStore, stakeChanges core.StakeChangeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, err := users.Find(ctx, ownerAddress(r))
		if err != nil {
			render.Error(w, err)
			return
		}

		if user.StakeID == "" {
			render.NotFound(w, "no stake")
			return
		}

		stake, err := stakes.Find(ctx, user.StakeID)
		if err != nil {
			render.Error(w, err)
			return
		}

		changes, err := stakeChanges.ListByStake(ctx, stake.ID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"stake":   stake,
			"changes": changes,
		})
	}
}
