package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/oclaw/supportreq/common"
	"github.com/oclaw/supportreq/config"
	"github.com/oclaw/supportreq/core"
	rpctypes "github.com/oclaw/supportreq/rpc/types"
	"github.com/oclaw/supportreq/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	impl   core.RecordService
	config *config.SupportRequestConfig
	logger *slog.Logger
}

func NewServer(
	config *config.SupportRequestConfig,
	impl core.RecordService,
	logger *slog.Logger,
) (*Server, error) {

	srv := &Server{
		impl:   impl,
		config: config,
		logger: common.LoggerOrDefault(logger),
	}

	return srv, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /save-record", handle(s, "save-record",
		func(ctx context.Context, req *rpctypes.SaveRecordRequest) (*rpctypes.SaveRecordResponse, error) {
			id, err := s.impl.SaveRecord(ctx, req)
			if err != nil {
				return nil, err
			}
			return &rpctypes.SaveRecordResponse{RecordID: id}, nil
		},
	))

	mux.HandleFunc("POST /record-status", handle(s, "record-status",
		func(ctx context.Context, req *rpctypes.RecordStatusRequest) (*rpctypes.RecordStatusResponse, error) {
			status, err := s.impl.Status(ctx, req.RecordID)
			if err != nil {
				return nil, err
			}
			return &rpctypes.RecordStatusResponse{Status: status}, nil
		},
	))

	mux.HandleFunc("POST /process-record", handle(s, "process-record",
		func(ctx context.Context, req *rpctypes.ProcessRecordRequest) (*rpctypes.ProcessRecordResponse, error) {
			if err := s.impl.Process(ctx, req.RecordID); err != nil {
				return nil, err
			}
			return &rpctypes.ProcessRecordResponse{}, nil
		},
	))

	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func (s *Server) Serve(ctx context.Context) error {
	if _, err := os.Stat(s.config.RPCSocketName); err == nil {
		os.Remove(s.config.RPCSocketName)
	}

	var listenCfg net.ListenConfig
	listener, err := listenCfg.Listen(ctx, "unix", s.config.RPCSocketName)
	if err != nil {
		return err
	}
	defer listener.Close()

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: time.Duration(s.config.DeadlineSec) * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		done <- httpServer.Serve(listener)
	}()
	s.logger.Info("rpc server listening", "socket", s.config.RPCSocketName)

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server finalized with error", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("rpc server shutdown", "err", err)
		}
		return ctx.Err()
	}
}

func handle[Req, Res any](
	s *Server,
	method string,
	fn func(ctx context.Context, req *Req) (*Res, error),
) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req Req
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			requestsTotal.WithLabelValues(method, "bad_request").Inc()
			rw.WriteHeader(http.StatusBadRequest)
			return
		}

		res, err := fn(r.Context(), &req)
		if err != nil {
			code := errorCode(err)
			requestsTotal.WithLabelValues(method, codeLabel(code)).Inc()
			s.logger.Info("rpc call failed", "method", method, "code", code, "err", err)
			if err := writeErr(rw, code, err); err != nil {
				rw.WriteHeader(http.StatusInternalServerError)
			}
			return
		}

		requestsTotal.WithLabelValues(method, "ok").Inc()
		if err := writeOK(rw, res); err != nil {
			rw.WriteHeader(http.StatusInternalServerError)
		}
	}
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, types.ErrRecordNotFound):
		return rpctypes.CodeNotFound
	case errors.Is(err, types.ErrRecordClosed), errors.Is(err, types.ErrRecordExists):
		return rpctypes.CodeConflict
	case errors.Is(err, types.ErrEmptyRecordID), errors.Is(err, types.ErrEmptySubject):
		return rpctypes.CodeInvalidInput
	default:
		return rpctypes.CodeInternal
	}
}

func writeOK[Response any](rw http.ResponseWriter, appRes Response) error {
	var rpcResponse rpctypes.Response[Response]
	rpcResponse.Data = appRes
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	return json.NewEncoder(rw).Encode(&rpcResponse)
}

func writeErr(rw http.ResponseWriter, code int, err error) error {
	var rpcResponse rpctypes.Response[any]
	rpcResponse.Error = &rpctypes.ErrResponse{
		Code:    code,
		Message: err.Error(),
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	return json.NewEncoder(rw).Encode(&rpcResponse)
}
