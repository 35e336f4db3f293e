package cmd

import (
	"trovescan/core"
	"trovescan/store/change"
	"trovescan/store/deposit"
	"trovescan/store/event"
	"trovescan/store/global"
	"trovescan/store/liquidation"
	"trovescan/store/redemption"
	"trovescan/store/stake"
	"trovescan/store/systemstate"
	"trovescan/store/token"
	"trovescan/store/transaction"
	"trovescan/store/trove"
	"trovescan/store/user"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideGlobalStore(db *db.DB) core.GlobalStore {
	return global.New(db)
}

func provideEventStore(db *db.DB) core.EventStore {
	return event.New(db)
}

func provideTransactionStore(db *db.DB) core.TransactionStore {
	return transaction.New(db)
}

func provideSystemStateStore(db *db.DB) core.SystemStateStore {
	return systemstate.New(db)
}

func provideUserStore(db *db.DB) core.UserStore {
	return user.New(db)
}

func provideTroveStore(db *db.DB) core.TroveStore {
	return trove.New(db)
}

func provideTroveChangeStore(db *db.DB) core.TroveChangeStore {
	return trove.NewChange(db)
}

func provideStabilityDepositStore(db *db.DB) core.StabilityDepositStore {
	return deposit.New(db)
}

func provideStabilityDepositChangeStore(db *db.DB) core.StabilityDepositChangeStore {
	return deposit.NewChange(db)
}

func provideStakeStore(db *db.DB) core.StakeStore {
	return stake.New(db)
}

func provideStakeChangeStore(db *db.DB) core.StakeChangeStore {
	return stake.NewChange(db)
}

func provideLiquidationStore(db *db.DB) core.LiquidationStore {
	return liquidation.New(db)
}

func provideRedemptionStore(db *db.DB) core.RedemptionStore {
	return redemption.New(db)
}

func provideTokenStore(db *db.DB) core.TokenStore {
	return token.New(db)
}

func provideTokenChangeStore(db *db.DB) core.TokenChangeStore {
	return token.NewChange(db)
}

func provideTokenBalanceStore(db *db.DB) core.TokenBalanceStore {
	return token.NewBalance(db)
}

func provideTokenAllowanceStore(db *db.DB) core.TokenAllowanceStore {
	return token.NewAllowance(db)
}

func providePriceChangeStore(db *db.DB) core.PriceChangeStore {
	return change.NewPrice(db)
}

func provideCollSurplusChangeStore(db *db.DB) core.CollSurplusChangeStore {
	return change.NewCollSurplus(db)
}
