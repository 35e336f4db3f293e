package stats

import (
	"context"
	"time"

	"trovescan/core"
	"trovescan/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Stats periodically logs the indexing progress and the aggregate gauges.
type Stats struct {
	worker.BaseJob
	globals core.GlobalStore
	events  core.EventStore
}

// New new stats worker
func New(location string, globals core.GlobalStore, events core.EventStore) *Stats {
	stats := Stats{
		globals: globals,
		events:  events,
	}

	l, _ := time.LoadLocation(location)
	stats.Cron = cron.New(cron.WithLocation(l))
	stats.Bind("@every 1m", func() error {
		return stats.onWork(context.Background())
	})

	return &stats
}

func (w *Stats) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "stats")

	global, err := w.globals.Find(ctx)
	if err != nil {
		log.WithError(err).Errorln("globals.Find")
		return err
	}

	count, err := w.events.Count(ctx)
	if err != nil {
		log.WithError(err).Errorln("events.Count")
		return err
	}

	log.WithFields(logrus.Fields{
		"events":            count,
		"processed":         global.LastProcessedEvent,
		"transactions":      global.TransactionCount,
		"changes":           global.ChangeCount,
		"open_troves":       global.NumberOfOpenTroves,
		"liquidated":        global.NumberOfLiquidatedTroves,
		"redeemed":          global.NumberOfRedeemedTroves,
		"closed_by_owner":   global.NumberOfTrovesClosedByOwner,
		"liquidation_count": global.LiquidationCount,
		"redemption_count":  global.RedemptionCount,
		"active_stakes":     global.NumberOfActiveStakes,
	}).Infoln("stats")

	return nil
}
