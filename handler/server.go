package handler

import (
	"net/http"

	"trovescan/core"
	"trovescan/handler/render"
	"trovescan/handler/rest"

	"github.com/go-chi/chi"
)

// Server read-only query server over the indexed entity graph
type Server struct {
	globals            core.GlobalStore
	systemStates       core.SystemStateStore
	transactions       core.TransactionStore
	users              core.UserStore
	troves             core.TroveStore
	troveChanges       core.TroveChangeStore
	deposits           core.StabilityDepositStore
	depositChanges     core.StabilityDepositChangeStore
	stakes             core.StakeStore
	stakeChanges       core.StakeChangeStore
	liquidations       core.LiquidationStore
	redemptions        core.RedemptionStore
	tokens             core.TokenStore
	tokenChanges       core.TokenChangeStore
	tokenBalances      core.TokenBalanceStore
	priceChanges       core.PriceChangeStore
	collSurplusChanges core.CollSurplusChangeStore
}

// New new server
func New(
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
) Server {
	return Server{
		globals:            globals,
		systemStates:       systemStates,
		transactions:       transactions,
		users:              users,
		troves:             troves,
		troveChanges:       troveChanges,
		deposits:           deposits,
		depositChanges:     depositChanges,
		stakes:             stakes,
		stakeChanges:       stakeChanges,
		liquidations:       liquidations,
		redemptions:        redemptions,
		tokens:             tokens,
		tokenChanges:       tokenChanges,
		tokenBalances:      tokenBalances,
		priceChanges:       priceChanges,
		collSurplusChanges: collSurplusChanges,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(resetRoutePath)
	r.Use(render.WrapResponse(true))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w, "not found")
	})

	r.Mount("/", rest.Handle(
		s.globals,
		s.systemStates,
		s.transactions,
		s.users,
		s.troves,
		s.troveChanges,
		s.deposits,
		s.depositChanges,
		s.stakes,
		s.stakeChanges,
		s.liquidations,
		s.redemptions,
		s.tokens,
		s.tokenChanges,
		s.tokenBalances,
		s.priceChanges,
		s.collSurplusChanges,
	))

	return r
}

func resetRoutePath(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c := chi.RouteContext(ctx); c != nil {
			c.RoutePath = r.URL.Path
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
