package cmd

import (
	"trovescan/worker"
	"trovescan/worker/indexer"
	"trovescan/worker/stats"
	"trovescan/worker/syncer"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run the chain syncer and the event indexer",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		client, err := ethclient.Dial(cfg.Chain.RPCHost)
		if err != nil {
			log.WithError(err).Fatalln("dial chain rpc failed")
		}
		defer client.Close()

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		globalStore := provideGlobalStore(database)
		eventStore := provideEventStore(database)
		transactionStore := provideTransactionStore(database)
		systemStateStore := provideSystemStateStore(database)
		userStore := provideUserStore(database)
		troveStore := provideTroveStore(database)
		troveChangeStore := provideTroveChangeStore(database)
		depositStore := provideStabilityDepositStore(database)
		depositChangeStore := provideStabilityDepositChangeStore(database)
		stakeStore := provideStakeStore(database)
		stakeChangeStore := provideStakeChangeStore(database)
		liquidationStore := provideLiquidationStore(database)
		redemptionStore := provideRedemptionStore(database)
		tokenStore := provideTokenStore(database)
		tokenChangeStore := provideTokenChangeStore(database)
		tokenBalanceStore := provideTokenBalanceStore(database)
		tokenAllowanceStore := provideTokenAllowanceStore(database)
		priceChangeStore := providePriceChangeStore(database)
		collSurplusChangeStore := provideCollSurplusChangeStore(database)

		workers := []worker.Worker{
			syncer.New(client, eventStore, propertyStore, cfg.Chain),
			indexer.New(
				database,
				cfg.Chain.Contracts,
				globalStore,
				eventStore,
				transactionStore,
				systemStateStore,
				userStore,
				troveStore,
				troveChangeStore,
				depositStore,
				depositChangeStore,
				stakeStore,
				stakeChangeStore,
				liquidationStore,
				redemptionStore,
				tokenStore,
				tokenChangeStore,
				tokenBalanceStore,
				tokenAllowanceStore,
				priceChangeStore,
				collSurplusChangeStore,
			),
			stats.New("UTC", globalStore, eventStore),
		}

		g, ctx := errgroup.WithContext(ctx)
		for _, w := range workers {
			w := w
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		if err := g.Wait(); err != nil {
			log.WithError(err).Errorln("worker aborted")
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
