package syncer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"time"

	"trovescan/core"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
)

const (
	checkpointKey      = "sync_checkpoint"
	defaultBatchBlocks = 200
)

var errNoNewBlocks = errors.New("no new blocks")

// Chain is the slice of the ethclient surface the syncer uses.
type Chain interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	TransactionInBlock(ctx context.Context, blockHash common.Hash, index uint) (*types.Transaction, error)
	TransactionSender(ctx context.Context, tx *types.Transaction, block common.Hash, index uint) (common.Address, error)
}

// Syncer pulls finalized contract logs in bounded block ranges, decodes them
// against the watched contracts and persists them as replay-ordered chain
// events. It stays a configured number of confirmations behind head.
type Syncer struct {
	chain    Chain
	events   core.EventStore
	property property.Store
	cfg      core.Chain
	watches  map[common.Address]core.Watch
}

// New new syncer
func New(chain Chain, events core.EventStore, propertyStore property.Store, cfg core.Chain) *Syncer {
	watches := make(map[common.Address]core.Watch, len(cfg.Contracts))
	for _, watch := range cfg.Contracts {
		watches[common.HexToAddress(watch.Address)] = watch
	}

	return &Syncer{
		chain:    chain,
		events:   events,
		property: propertyStore,
		cfg:      cfg,
		watches:  watches,
	}
}

// Run run worker
func (w *Syncer) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "syncer")
	ctx = logger.WithContext(ctx, log)

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			switch err := w.onWork(ctx); err {
			case nil:
				dur = 100 * time.Millisecond
			case errNoNewBlocks:
				dur = 5 * time.Second
			default:
				dur = time.Second
			}
		}
	}
}

func (w *Syncer) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	from := w.cfg.StartBlock
	if checkpoint := uint64(v.Int64()); checkpoint > 0 {
		from = checkpoint + 1
	}

	head, err := w.chain.BlockNumber(ctx)
	if err != nil {
		log.WithError(err).Errorln("chain.BlockNumber")
		return err
	}

	if head < w.cfg.Confirmations {
		return errNoNewBlocks
	}

	target := head - w.cfg.Confirmations
	if from > target {
		return errNoNewBlocks
	}

	batch := w.cfg.BatchBlocks
	if batch == 0 {
		batch = defaultBatchBlocks
	}

	to := from + batch - 1
	if to > target {
		to = target
	}

	addresses := make([]common.Address, 0, len(w.watches))
	for address := range w.watches {
		addresses = append(addresses, address)
	}

	logs, err := w.chain.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: addresses,
	})
	if err != nil {
		log.WithError(err).Errorln("chain.FilterLogs")
		return err
	}

	sort.Slice(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		if logs[i].TxIndex != logs[j].TxIndex {
			return logs[i].TxIndex < logs[j].TxIndex
		}
		return logs[i].Index < logs[j].Index
	})

	headers := map[uint64]*types.Header{}
	senders := map[common.Hash]string{}

	var count int
	for idx := range logs {
		event, err := w.decodeLog(ctx, &logs[idx], headers, senders)
		if err != nil {
			log.WithError(err).
				WithField("tx", logs[idx].TxHash.Hex()).
				WithField("log", logs[idx].Index).
				Errorln("decode log")
			return err
		}

		if event == nil {
			continue
		}

		if err := w.events.Create(ctx, event); err != nil {
			log.WithError(err).Errorln("events.Create")
			return err
		}
		count++
	}

	if err := w.property.Save(ctx, checkpointKey, to); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	if count > 0 {
		log.WithField("from", from).WithField("to", to).WithField("events", count).Infoln("synced")
	}

	return nil
}

// decodeLog turns one raw log into a chain event. Logs from events outside
// the watched ABI fragments decode to nil and are skipped.
func (w *Syncer) decodeLog(
	ctx context.Context,
	raw *types.Log,
	headers map[uint64]*types.Header,
	senders map[common.Hash]string,
) (*core.ChainEvent, error) {
	if raw.Removed || len(raw.Topics) == 0 {
		return nil, nil
	}

	watch, ok := w.watches[raw.Address]
	if !ok {
		return nil, nil
	}

	contractABI := sourceABIs[watch.Source]
	ev, err := contractABI.EventByID(raw.Topics[0])
	if err != nil {
		return nil, nil
	}

	values := map[string]interface{}{}
	if len(raw.Data) > 0 {
		if err := contractABI.UnpackIntoMap(values, ev.Name, raw.Data); err != nil {
			return nil, fmt.Errorf("unpack %s.%s: %w", watch.Source, ev.Name, err)
		}
	}

	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if len(indexed) > 0 {
		if err := abi.ParseTopicsIntoMap(values, indexed, raw.Topics[1:]); err != nil {
			return nil, fmt.Errorf("parse topics %s.%s: %w", watch.Source, ev.Name, err)
		}
	}

	params := make(map[string]string, len(values))
	for name, value := range values {
		params[strings.TrimPrefix(name, "_")] = paramString(value)
	}

	header, ok := headers[raw.BlockNumber]
	if !ok {
		header, err = w.chain.HeaderByNumber(ctx, new(big.Int).SetUint64(raw.BlockNumber))
		if err != nil {
			return nil, err
		}
		headers[raw.BlockNumber] = header
	}

	sender, ok := senders[raw.TxHash]
	if !ok {
		tx, err := w.chain.TransactionInBlock(ctx, raw.BlockHash, raw.TxIndex)
		if err != nil {
			return nil, err
		}

		from, err := w.chain.TransactionSender(ctx, tx, raw.BlockHash, raw.TxIndex)
		if err != nil {
			return nil, err
		}

		sender = strings.ToLower(from.Hex())
		senders[raw.TxHash] = sender
	}

	event := &core.ChainEvent{
		Source:      watch.Source,
		Name:        ev.Name,
		Contract:    strings.ToLower(raw.Address.Hex()),
		TxHash:      raw.TxHash.Hex(),
		LogIndex:    raw.Index,
		TxIndex:     raw.TxIndex,
		TxSender:    sender,
		BlockNumber: raw.BlockNumber,
		BlockTime:   time.Unix(int64(header.Time), 0),
	}

	if err := event.SetParams(params); err != nil {
		return nil, err
	}

	return event, nil
}

func paramString(value interface{}) string {
	switch v := value.(type) {
	case common.Address:
		return strings.ToLower(v.Hex())
	case *big.Int:
		return v.String()
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
