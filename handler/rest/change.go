package rest

import (
	"net/http"
	"sort"

	"trovescan/core"
	"trovescan/handler/render"
	"trovescan/handler/views"
)

// changesHandler serves the combined change feed: every change type merged
// into one stream ordered by the global change sequence.
func changesHandler(
	troveChanges core.TroveChangeStore,
	depositChanges core.StabilityDepositChangeStore,
	stakeChanges core.StakeChangeStore,
	tokenChanges core.TokenChangeStore,
	priceChanges core.PriceChangeStore,
	collSurplusChanges core.CollSurplusChangeStore,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := bindPage(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		var feed []*views.Change

		troveRows, err := troveChanges.List(ctx, params.Offset, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}
		for _, row := range troveRows {
			feed = append(feed, &views.Change{Type: views.ChangeTypeTrove, SequenceNumber: row.SequenceNumber, Record: row})
		}

		depositRows, err := depositChanges.List(ctx, params.Offset, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}
		for _, row := range depositRows {
			feed = append(feed, &views.Change{Type: views.ChangeTypeStabilityDeposit, SequenceNumber: row.SequenceNumber, Record: row})
		}

		stakeRows, err := stakeChanges.List(ctx, params.Offset, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}
		for _, row := range stakeRows {
			feed = append(feed, &views.Change{Type: views.ChangeTypeStake, SequenceNumber: row.SequenceNumber, Record: row})
		}

		tokenRows, err := tokenChanges.List(ctx, params.Offset, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}
		for _, row := range tokenRows {
			feed = append(feed, &views.Change{Type: views.ChangeTypeToken, SequenceNumber: row.SequenceNumber, Record: row})
		}

		priceRows, err := priceChanges.List(ctx, params.Offset, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}
		for _, row := range priceRows {
			feed = append(feed, &views.Change{Type: views.ChangeTypePrice, SequenceNumber: row.SequenceNumber, Record: row})
		}

		surplusRows, err := collSurplusChanges.List(ctx, params.Offset, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}
		for _, row := range surplusRows {
			feed = append(feed, &views.Change{Type: views.ChangeTypeCollSurplus, SequenceNumber: row.SequenceNumber, Record: row})
		}

		sort.Slice(feed, func(i, j int) bool {
			return feed[i].SequenceNumber < feed[j].SequenceNumber
		})

		if len(feed) > params.Limit {
			feed = feed[:params.Limit]
		}

		render.JSON(w, feed)
	}
}
