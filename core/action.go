package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/oclaw/supportreq/common"
	"github.com/oclaw/supportreq/config"
	"github.com/oclaw/supportreq/notify"
	"github.com/oclaw/supportreq/types"
)

// ProcessAction checks the status of a support record and, unless the record
// is closed, asks the record service to process it. Every outcome ends with
// a notification; a successful processing also refreshes the view once
// the refresh delay has elapsed.
type ProcessAction struct {
	lookup    StatusLookup
	processor RecordProcessor
	notifier  notify.Notifier
	refresher Refresher
	clock     common.Clock
	labels    config.Labels
	delay     time.Duration
	logger    *slog.Logger
}

type ProcessActionDeps struct {
	Lookup    StatusLookup
	Processor RecordProcessor
	Notifier  notify.Notifier
	Refresher Refresher
	Clock     common.Clock
	Logger    *slog.Logger
}

func NewProcessAction(cfg *config.SupportRequestConfig, deps ProcessActionDeps) *ProcessAction {
	clock := deps.Clock
	if clock == nil {
		clock = &common.DefaultClock{}
	}
	return &ProcessAction{
		lookup:    deps.Lookup,
		processor: deps.Processor,
		notifier:  deps.Notifier,
		refresher: deps.Refresher,
		clock:     clock,
		labels:    cfg.Labels,
		delay:     time.Duration(cfg.RefreshDelay),
		logger:    common.LoggerOrDefault(deps.Logger),
	}
}

// Invoke starts processing of the record and returns immediately.
// Concurrent invocations are independent of each other.
func (a *ProcessAction) Invoke(ctx context.Context, id types.RecordID) {
	go a.Run(ctx, id)
}

// Run is the blocking form of Invoke. It returns the terminal state of the
// invocation; failures are reported through the notifier, not returned.
func (a *ProcessAction) Run(ctx context.Context, id types.RecordID) types.State {
	logger := a.logger.With("record_id", id, "invocation_id", uuid.NewString())
	state := types.StateIdle

	transition := func(next types.State) {
		logger.Debug("state transition", "from", state, "to", next)
		state = next
	}

	transition(types.StateCheckingStatus)
	status, err := a.lookup.Status(ctx, id)
	if err != nil {
		a.notify(ctx, logger, id, a.labels.ErrorTitle, types.ErrorMessage(err), types.VariantError)
		transition(types.StateFailed)
		return state
	}

	logger.Info("record status", "status", status)

	if status == types.StatusClosed {
		a.notify(ctx, logger, id, a.labels.ErrorTitle, a.labels.RecordClosed, types.VariantError)
		transition(types.StateNotProcessable)
		return state
	}

	transition(types.StateProcessing)
	if err := a.processor.Process(ctx, id); err != nil {
		a.notify(ctx, logger, id, a.labels.ErrorTitle, types.ErrorMessage(err), types.VariantError)
		transition(types.StateFailed)
		return state
	}

	a.notify(ctx, logger, id, a.labels.SuccessTitle, a.labels.RecordProcessed, types.VariantSuccess)

	select {
	case <-a.clock.After(a.delay):
		a.refresher.Refresh(ctx)
	case <-ctx.Done():
		logger.Warn("view refresh skipped", "err", ctx.Err())
	}

	transition(types.StateDone)
	return state
}

func (a *ProcessAction) notify(
	ctx context.Context,
	logger *slog.Logger,
	id types.RecordID,
	title, message string,
	variant types.Variant,
) {
	err := a.notifier.Notify(ctx, &types.Notification{
		RecordID: id,
		Title:    title,
		Message:  message,
		Variant:  variant,
	})
	if err != nil {
		logger.Warn("notification not delivered", "variant", variant, "err", err)
	}
}
