package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/oclaw/supportreq/common"
	"github.com/oclaw/supportreq/config"
	"github.com/oclaw/supportreq/types"
)

var UUIDRecordGen = types.RecordGenFromStringer(uuid.NewUUID)

type recordServiceImpl struct {
	clock   common.Clock
	storage RecordStorage
	gen     types.RecordIDGen
	logger  *slog.Logger

	// guards read-modify-write of a record
	mu sync.Mutex
}

var _ RecordService = (*recordServiceImpl)(nil)

func NewRecordService(
	cfg *config.SupportRequestConfig,
	clock common.Clock,
	gen types.RecordIDGen,
	logger *slog.Logger,
) (*recordServiceImpl, error) {

	storage, err := NewFsRecordStorage(cfg.DirPath)
	if err != nil {
		return nil, err
	}

	return newRecordService(storage, clock, gen, logger), nil
}

func newRecordService(
	storage RecordStorage,
	clock common.Clock,
	gen types.RecordIDGen,
	logger *slog.Logger,
) *recordServiceImpl {
	return &recordServiceImpl{
		clock:   clock,
		storage: storage,
		gen:     gen,
		logger:  common.LoggerOrDefault(logger),
	}
}

func (rs *recordServiceImpl) SaveRecord(
	ctx context.Context,
	req *types.RecordRequest,
) (types.RecordID, error) {

	subject := strings.TrimSpace(req.Subject)
	if len(subject) == 0 {
		return "", types.ErrEmptySubject
	}

	now := rs.clock.NowUnix()
	rec := types.SupportRecord{
		RecordID:  req.RecordID,
		Subject:   subject,
		Status:    types.StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if len(rec.RecordID) == 0 {
		var err error
		rec.RecordID, err = rs.gen()
		if err != nil {
			return "", err
		}
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	_, err := rs.storage.Get(ctx, rec.RecordID)
	switch {
	case err == nil:
		return "", fmt.Errorf("save %s: %w", rec.RecordID, types.ErrRecordExists)
	case !errors.Is(err, types.ErrRecordNotFound):
		return "", err
	}

	if err := rs.storage.Store(ctx, &rec); err != nil {
		return "", err
	}

	rs.logger.Info("record saved", "record_id", rec.RecordID)
	return rec.RecordID, nil
}

func (rs *recordServiceImpl) Status(ctx context.Context, id types.RecordID) (types.Status, error) {
	rec, err := rs.storage.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return rec.Status, nil
}

func (rs *recordServiceImpl) Process(ctx context.Context, id types.RecordID) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rec, err := rs.storage.Get(ctx, id)
	if err != nil {
		return err
	}

	next, ok := rec.Status.Next()
	if !ok {
		return fmt.Errorf("process %s: %w", id, types.ErrRecordClosed)
	}

	prev := rec.Status
	rec.Status = next
	rec.UpdatedAt = rs.clock.NowUnix()
	if err := rs.storage.Store(ctx, rec); err != nil {
		return err
	}

	rs.logger.Info("record processed", "record_id", id, "from", prev, "to", next)
	return nil
}
