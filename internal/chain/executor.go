package chain

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/stakecore/stakecore/internal/database"
	"gitlab.com/stakecore/stakecore/pkg/errors"
	"gitlab.com/stakecore/stakecore/protocol"
)

// Executor verifies, executes, and commits staking transactions.
type Executor struct {
	db        *database.Database
	logger    zerolog.Logger
	executors map[protocol.TransactionType]TxExecutor

	// commitMu serializes execution so a transaction always sees the effects
	// of the previous one. The storage layer's create preconditions would
	// catch racing creates regardless, but serializing lets the loser
	// observe Conflict directly instead of retrying.
	commitMu sync.Mutex

	// nowFunc is replaceable for tests.
	nowFunc func() time.Time
}

// NewExecutor creates an executor with the standard staking executors.
func NewExecutor(db *database.Database, logger zerolog.Logger) *Executor {
	return newExecutor(db, logger,
		CreateStakePool{},
		CreateStakeEntry{},
		StakeTokens{},
		ClaimRewards{},
		UnstakeTokens{},
	)
}

func newExecutor(db *database.Database, logger zerolog.Logger, executors ...TxExecutor) *Executor {
	m := new(Executor)
	m.db = db
	m.logger = logger.With().Str("module", "executor").Logger()
	m.executors = map[protocol.TransactionType]TxExecutor{}
	m.nowFunc = time.Now

	for _, x := range executors {
		if _, ok := m.executors[x.Type()]; ok {
			panic(errors.InternalError.WithFormat("duplicate executor for %v", x.Type()))
		}
		m.executors[x.Type()] = x
	}
	return m
}

// SetTimeFunc overrides the executor's clock. For testing.
func (x *Executor) SetTimeFunc(now func() time.Time) { x.nowFunc = now }

// Deliver verifies the envelope, executes the transaction, and commits its
// effects atomically. The returned status records the outcome, including the
// transaction ID the caller can use to query it later. Deliver returns an
// error only if the outcome could not be determined or recorded.
//
// On any failure the work batch is discarded, so an error never leaves
// partial state behind.
func (x *Executor) Deliver(ctx context.Context, env *protocol.Envelope) (*protocol.TransactionStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Unavailable.Wrap(err)
	}

	delivery, err := x.check(env)
	if err != nil {
		return x.refuse(env, err)
	}

	txid := delivery.Transaction.ID()
	start := x.nowFunc()

	x.commitMu.Lock()
	defer x.commitMu.Unlock()

	// If the transaction was already delivered, return the recorded status
	// instead of executing it again. Failed transactions may be re-executed,
	// which makes resubmission after a transient failure safe.
	var status *protocol.TransactionStatus
	err = x.db.View(func(batch *database.Batch) error {
		var err error
		status, err = batch.Transaction(txid).GetStatus()
		return err
	})
	switch {
	case err == nil:
		if !status.Failed() {
			return status, nil
		}
	case errors.Is(err, errors.NotFound):
		// Not yet delivered
	default:
		return nil, errors.UnknownError.Wrap(err)
	}

	status = new(protocol.TransactionStatus)
	status.TxID = txid

	batch := x.db.Begin(true)
	defer batch.Discard()

	st := NewStateManager(batch, x.logger, delivery, uint64(start.Unix()))
	result, err := x.execute(st, delivery)
	if err == nil {
		status.Code = errors.Delivered
		if result != nil {
			data, err := json.Marshal(result)
			if err != nil {
				return nil, errors.EncodingError.WithFormat("marshal result: %w", err)
			}
			status.Result = data
		}

		err = batch.Transaction(txid).PutStatus(status)
		if err == nil {
			err = batch.Commit()
		}
	}
	if err != nil {
		// Discard the work and record the failure separately
		batch.Discard()
		status.Set(err)
		if rerr := x.recordStatus(status); rerr != nil {
			return nil, errors.UnknownError.Wrap(rerr)
		}
	}

	typ := delivery.Transaction.Body.Type()
	mDelivered.WithLabelValues(typ.String(), status.Code.String()).Inc()
	mExecutionDuration.WithLabelValues(typ.String()).Observe(x.nowFunc().Sub(start).Seconds())

	evt := x.logger.Info()
	if status.Failed() {
		evt = x.logger.Error().Err(status.Error)
	}
	evt.
		Stringer("txid", txid).
		Stringer("type", typ).
		Stringer("principal", delivery.Transaction.Header.Principal).
		Stringer("code", status.Code).
		Msg("Delivered transaction")

	return status, nil
}

// check validates the envelope and signature before anything touches state.
func (x *Executor) check(env *protocol.Envelope) (*Delivery, error) {
	if env == nil || env.Transaction == nil || env.Transaction.Body == nil {
		return nil, errors.BadRequest.With("missing transaction")
	}
	if env.Transaction.Header.Principal == nil {
		return nil, errors.BadRequest.With("missing principal")
	}
	if len(env.Signature) == 0 {
		return nil, errors.Unauthenticated.With("transaction is not signed")
	}
	if !env.Verify() {
		return nil, errors.Unauthenticated.With("invalid signature")
	}
	return &Delivery{Envelope: env, Transaction: env.Transaction}, nil
}

func (x *Executor) execute(st *StateManager, delivery *Delivery) (protocol.TransactionResult, error) {
	exec, ok := x.executors[delivery.Transaction.Body.Type()]
	if !ok {
		return nil, errors.BadRequest.WithFormat("unsupported transaction type %v", delivery.Transaction.Body.Type())
	}
	return exec.Execute(st, delivery)
}

// refuse records a status for an envelope that failed pre-execution checks.
func (x *Executor) refuse(env *protocol.Envelope, err error) (*protocol.TransactionStatus, error) {
	status := new(protocol.TransactionStatus)
	if env != nil && env.Transaction != nil && env.Transaction.Body != nil {
		status.TxID = env.Transaction.ID()
	}
	status.Set(err)

	x.logger.Error().Err(err).Stringer("txid", status.TxID).Msg("Refused transaction")
	return status, nil
}

func (x *Executor) recordStatus(status *protocol.TransactionStatus) error {
	return x.db.Update(func(batch *database.Batch) error {
		return batch.Transaction(status.TxID).PutStatus(status)
	})
}
