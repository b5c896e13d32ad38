package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/oclaw/supportreq/notify"
	"github.com/oclaw/supportreq/types"
)

type cliNotifier struct {
	out io.Writer
}

var _ notify.Notifier = (*cliNotifier)(nil)

func NewCliNotifier(stdout io.Writer) *cliNotifier {
	return &cliNotifier{
		out: stdout,
	}
}

func (cn *cliNotifier) Notify(_ context.Context, data *types.Notification) error {
	_, err := fmt.Fprintf(cn.out, "[%s] %s: %s\n",
		data.Variant,
		data.Title,
		data.Message,
	)
	return err
}
