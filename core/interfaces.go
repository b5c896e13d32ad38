package core

import (
	"context"

	"github.com/oclaw/supportreq/types"
)

type StatusLookup interface {
	Status(ctx context.Context, id types.RecordID) (types.Status, error)
}

type RecordProcessor interface {
	Process(ctx context.Context, id types.RecordID) error
}

// Refresher reloads the view the action was triggered from.
type Refresher interface {
	Refresh(ctx context.Context)
}

type RefresherFunc func(ctx context.Context)

func (f RefresherFunc) Refresh(ctx context.Context) {
	f(ctx)
}

type RecordService interface {
	StatusLookup
	RecordProcessor
	SaveRecord(ctx context.Context, req *types.RecordRequest) (types.RecordID, error)
}

type RecordStorage interface {
	Store(ctx context.Context, rec *types.SupportRecord) error
	Get(ctx context.Context, id types.RecordID) (*types.SupportRecord, error)
}
