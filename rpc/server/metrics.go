package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	rpctypes "github.com/oclaw/supportreq/rpc/types"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "supportreq_rpc_requests_total",
		Help: "Total number of record service RPC calls by method and result",
	},
	[]string{"method", "result"},
)

func codeLabel(code int) string {
	switch code {
	case rpctypes.CodeNotFound:
		return "not_found"
	case rpctypes.CodeConflict:
		return "conflict"
	case rpctypes.CodeInvalidInput:
		return "invalid_input"
	default:
		return "internal"
	}
}
