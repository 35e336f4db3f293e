package indexer

import (
	"context"
	"errors"
	"strings"
	"time"

	"trovescan/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

const limit = 500

var errNoMoreEvents = errors.New("no more events")

// Indexer replays stored chain events in row order and folds each one into
// the entity graph. It is the only writer; one db transaction per event keeps
// readers from ever observing a half-applied change.
type Indexer struct {
	db     *db.DB
	tokens map[string]core.Watch

	globals            core.GlobalStore
	events             core.EventStore
	transactions       core.TransactionStore
	systemStates       core.SystemStateStore
	users              core.UserStore
	troves             core.TroveStore
	troveChanges       core.TroveChangeStore
	deposits           core.StabilityDepositStore
	depositChanges     core.StabilityDepositChangeStore
	stakes             core.StakeStore
	stakeChanges       core.StakeChangeStore
	liquidations       core.LiquidationStore
	redemptions        core.RedemptionStore
	tokenStore         core.TokenStore
	tokenChanges       core.TokenChangeStore
	tokenBalances      core.TokenBalanceStore
	tokenAllowances    core.TokenAllowanceStore
	priceChanges       core.PriceChangeStore
	collSurplusChanges core.CollSurplusChangeStore

	txRunner func(fn func(tx *db.DB) error) error
}

// New new indexer
func New(
	database *db.DB,
	watches []core.Watch,
	globals core.GlobalStore,
	events core.EventStore,
	transactions core.TransactionStore,
	systemStates core.SystemStateStore,
	users core.UserStore,
	troves core.TroveStore,
	troveChanges core.TroveChangeStore,
	deposits core.StabilityDepositStore,
	depositChanges core.StabilityDepositChangeStore,
	stakes core.StakeStore,
	stakeChanges core.StakeChangeStore,
	liquidations core.LiquidationStore,
	redemptions core.RedemptionStore,
	tokenStore core.TokenStore,
	tokenChanges core.TokenChangeStore,
	tokenBalances core.TokenBalanceStore,
	tokenAllowances core.TokenAllowanceStore,
	priceChanges core.PriceChangeStore,
	collSurplusChanges core.CollSurplusChangeStore,
) *Indexer {
	tokens := make(map[string]core.Watch, len(watches))
	for _, w := range watches {
		if w.Source == core.EventSourceToken {
			// event contracts arrive lowercased; config may be checksummed
			tokens[strings.ToLower(w.Address)] = w
		}
	}

	indexer := Indexer{
		db:                 database,
		tokens:             tokens,
		globals:            globals,
		events:             events,
		transactions:       transactions,
		systemStates:       systemStates,
		users:              users,
		troves:             troves,
		troveChanges:       troveChanges,
		deposits:           deposits,
		depositChanges:     depositChanges,
		stakes:             stakes,
		stakeChanges:       stakeChanges,
		liquidations:       liquidations,
		redemptions:        redemptions,
		tokenStore:         tokenStore,
		tokenChanges:       tokenChanges,
		tokenBalances:      tokenBalances,
		tokenAllowances:    tokenAllowances,
		priceChanges:       priceChanges,
		collSurplusChanges: collSurplusChanges,
	}
	indexer.txRunner = func(fn func(tx *db.DB) error) error {
		return database.Tx(fn)
	}

	return &indexer
}

// Run run worker
func (w *Indexer) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "indexer")
	ctx = logger.WithContext(ctx, log)

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			err := w.run(ctx)
			if err == nil {
				dur = 100 * time.Millisecond
				continue
			}

			if fatal(err) {
				log.WithError(err).Errorln("indexer halted")
				return err
			}

			dur = 500 * time.Millisecond
		}
	}
}

func (w *Indexer) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	global, err := w.globals.Find(ctx)
	if err != nil {
		log.WithError(err).Errorln("globals.Find")
		return err
	}

	events, err := w.events.List(ctx, global.LastProcessedEvent, limit)
	if err != nil {
		log.WithError(err).Errorln("events.List")
		return err
	}

	if len(events) == 0 {
		return errNoMoreEvents
	}

	for _, event := range events {
		if err := w.ProcessEvent(ctx, event); err != nil {
			log.WithError(err).
				WithField("event", event.ID).
				WithField("key", event.Key()).
				Errorln("process event")
			return err
		}
	}

	log.WithField("count", len(events)).
		WithField("last", events[len(events)-1].ID).
		Debugln("events processed")

	return nil
}

// ProcessEvent applies one event atomically: the entity rows, change rows,
// bumped snapshots and the advanced replay cursor all commit together.
func (w *Indexer) ProcessEvent(ctx context.Context, event *core.ChainEvent) error {
	return w.txRunner(func(tx *db.DB) error {
		s, err := w.newSession(ctx, tx, event)
		if err != nil {
			return err
		}

		if err := s.handle(); err != nil {
			return err
		}

		return s.finish()
	})
}

// fatal reports whether err signals schema drift or an ordering violation.
// Processing must stop rather than advance past the offending event.
func fatal(err error) bool {
	targets := []error{
		core.ErrUnknownOperation,
		core.ErrUnknownEvent,
		core.ErrNoCurrentLiquidation,
		core.ErrNoCurrentRedemption,
		core.ErrMissingParam,
	}

	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
