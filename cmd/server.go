package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"trovescan/handler"
	"trovescan/handler/hc"
	"trovescan/store/global"
	"trovescan/store/systemstate"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run trovescan api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		// hot rows behind a short read cache; the indexer writes from its
		// own process with uncached stores
		globalStore := global.Cache(provideGlobalStore(database), time.Second)
		systemStateStore := systemstate.Cache(provideSystemStateStore(database))

		svr := handler.New(
			globalStore,
			systemStateStore,
			provideTransactionStore(database),
			provideUserStore(database),
			provideTroveStore(database),
			provideTroveChangeStore(database),
			provideStabilityDepositStore(database),
			provideStabilityDepositChangeStore(database),
			provideStakeStore(database),
			provideStakeChangeStore(database),
			provideLiquidationStore(database),
			provideRedemptionStore(database),
			provideTokenStore(database),
			provideTokenChangeStore(database),
			provideTokenBalanceStore(database),
			providePriceChangeStore(database),
			provideCollSurplusChangeStore(database),
		)

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		mux.Mount("/hc", hc.Handle(rootCmd.Version))
		mux.Mount("/api", svr.HandleRestAPI())

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)
		if cfg.API.Port > 0 && !cmd.Flags().Changed("port") {
			addr = fmt.Sprintf(":%d", cfg.API.Port)
		}

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
}
