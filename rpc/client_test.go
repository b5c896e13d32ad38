package rpc

import (
	"context"
	"errors"
	"os"
	"path"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oclaw/supportreq/common"
	"github.com/oclaw/supportreq/config"
	"github.com/oclaw/supportreq/core"
	rpcserver "github.com/oclaw/supportreq/rpc/server"
	rpctypes "github.com/oclaw/supportreq/rpc/types"
	"github.com/oclaw/supportreq/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer runs a record service daemon on a fresh unix socket.
func startServer(t *testing.T) *config.SupportRequestConfig {
	t.Helper()

	// unix socket paths are length limited, keep it short
	dir, err := os.MkdirTemp("", "srq")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	cfg := config.DefaultSupportRequestConfig()
	cfg.DirPath = path.Join(dir, "records")
	cfg.RPCSocketName = path.Join(dir, "rpc.sock")

	svc, err := core.NewRecordService(cfg, &common.DefaultClock{}, core.UUIDRecordGen, nil)
	require.NoError(t, err)
	srv, err := rpcserver.NewServer(cfg, svc, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})

	require.Eventually(t, func() bool {
		_, err := os.Stat(cfg.RPCSocketName)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	return cfg
}

func TestClientRecordRoundTrip(t *testing.T) {
	cfg := startServer(t)
	client, err := NewClient(cfg.RPCSocketName)
	require.NoError(t, err)
	ctx := context.Background()

	id, err := client.SaveRecord(ctx, &types.RecordRequest{Subject: "laptop does not boot"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	status, err := client.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.StatusNew, status)

	require.NoError(t, client.Process(ctx, id))
	require.NoError(t, client.Process(ctx, id))

	status, err = client.Status(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.StatusClosed, status)

	err = client.Process(ctx, id)
	var remote *types.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, rpctypes.CodeConflict, remote.Code)
	assert.Contains(t, remote.Message, "record is already closed")
}

func TestClientSurfacesServerMessages(t *testing.T) {
	cfg := startServer(t)
	client, err := NewClient(cfg.RPCSocketName)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = client.Status(ctx, "missing")
	var remote *types.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, rpctypes.CodeNotFound, remote.Code)
	assert.Equal(t, "record not found", types.ErrorMessage(err))

	_, err = client.Status(ctx, "")
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, rpctypes.CodeInvalidInput, remote.Code)

	_, err = client.SaveRecord(ctx, &types.RecordRequest{})
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, types.ErrEmptySubject.Error(), remote.Message)
}

func TestClientWithoutDaemon(t *testing.T) {
	client, err := NewClient(path.Join(t.TempDir(), "absent.sock"))
	require.NoError(t, err)

	_, err = client.Status(context.Background(), "r-1")
	require.Error(t, err)
	var remote *types.RemoteError
	assert.False(t, errors.As(err, &remote))
}

func TestProcessActionOverRPC(t *testing.T) {
	cfg := startServer(t)
	cfg.RefreshDelay = config.Duration(10 * time.Millisecond)
	client, err := NewClient(cfg.RPCSocketName)
	require.NoError(t, err)
	ctx := context.Background()

	id, err := client.SaveRecord(ctx, &types.RecordRequest{Subject: "vpn"})
	require.NoError(t, err)

	var sent []types.Notification
	var refreshed atomic.Int32
	action := core.NewProcessAction(cfg, core.ProcessActionDeps{
		Lookup:    client,
		Processor: client,
		Notifier: notifierFunc(func(n *types.Notification) {
			sent = append(sent, *n)
		}),
		Refresher: core.RefresherFunc(func(context.Context) {
			refreshed.Add(1)
		}),
	})

	assert.Equal(t, types.StateDone, action.Run(ctx, id))
	assert.Equal(t, types.StateDone, action.Run(ctx, id))
	assert.Equal(t, types.StateNotProcessable, action.Run(ctx, id))
	assert.Equal(t, types.StateFailed, action.Run(ctx, "missing"))

	require.Len(t, sent, 4)
	assert.Equal(t, types.VariantSuccess, sent[0].Variant)
	assert.Equal(t, types.VariantSuccess, sent[1].Variant)
	assert.Equal(t, cfg.Labels.RecordClosed, sent[2].Message)
	assert.Equal(t, "record not found", sent[3].Message)
	assert.Equal(t, int32(2), refreshed.Load())
}

type notifierFunc func(n *types.Notification)

func (f notifierFunc) Notify(_ context.Context, n *types.Notification) error {
	f(n)
	return nil
}
