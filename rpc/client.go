package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/oclaw/supportreq/core"
	rpctypes "github.com/oclaw/supportreq/rpc/types"
	"github.com/oclaw/supportreq/types"
)

type Client struct {
	http *http.Client
}

var _ core.RecordService = (*Client)(nil)

func NewClient(path string) (*Client, error) {
	httpClient := &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", path)
			},
		},
	}
	return &Client{
		http: httpClient,
	}, nil
}

func (cl *Client) SaveRecord(ctx context.Context, req *types.RecordRequest) (types.RecordID, error) {
	res, err := callHTTP[rpctypes.SaveRecordRequest, rpctypes.SaveRecordResponse](
		ctx,
		cl,
		(*rpctypes.SaveRecordRequest)(req),
		"save-record",
	)
	if err != nil {
		return "", err
	}
	return res.RecordID, nil
}

func (cl *Client) Status(ctx context.Context, id types.RecordID) (types.Status, error) {
	res, err := callHTTP[rpctypes.RecordStatusRequest, rpctypes.RecordStatusResponse](
		ctx,
		cl,
		&rpctypes.RecordStatusRequest{
			RecordID: id,
		},
		"record-status",
	)
	if err != nil {
		return "", err
	}
	return res.Status, nil
}

func (cl *Client) Process(ctx context.Context, id types.RecordID) error {
	_, err := callHTTP[rpctypes.ProcessRecordRequest, rpctypes.ProcessRecordResponse](
		ctx,
		cl,
		&rpctypes.ProcessRecordRequest{
			RecordID: id,
		},
		"process-record",
	)
	return err
}

func callHTTP[Req, Res any](ctx context.Context, cl *Client, req *Req, path string) (*Res, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var remoteURL url.URL
	remoteURL.Host = "localhost"
	remoteURL.Path = path
	remoteURL.Scheme = "http"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, remoteURL.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpRes, err := cl.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = httpRes.Body.Close()
	}()

	if httpRes.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected RPC response: %v", httpRes.Status)
	}

	var rpcResponse rpctypes.Response[Res]
	if err := json.NewDecoder(httpRes.Body).Decode(&rpcResponse); err != nil {
		return nil, err
	}

	return rpcResponse.Unwrap()
}
