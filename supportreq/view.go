package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/oclaw/supportreq/core"
	"github.com/oclaw/supportreq/types"
)

// recordView renders a single record in the terminal. Refresh fetches the
// record again instead of reusing anything the action saw.
type recordView struct {
	lookup core.StatusLookup
	id     types.RecordID
	out    io.Writer
	logger *slog.Logger
}

var _ core.Refresher = (*recordView)(nil)

func (v *recordView) Render(ctx context.Context) error {
	status, err := v.lookup.Status(ctx, v.id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(v.out, "record %s: %s\n", v.id, status)
	return err
}

func (v *recordView) Refresh(ctx context.Context) {
	if err := v.Render(ctx); err != nil {
		v.logger.Warn("view refresh failed", "record_id", v.id, "err", err)
	}
}
