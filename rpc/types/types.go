package types

import (
	"github.com/oclaw/supportreq/types"
)

const (
	CodeInternal     = 1
	CodeNotFound     = 2
	CodeConflict     = 3
	CodeInvalidInput = 4
)

type (
	SaveRecordRequest = types.RecordRequest

	SaveRecordResponse struct {
		RecordID types.RecordID `json:"record_id"`
	}

	RecordStatusRequest struct {
		RecordID types.RecordID `json:"record_id"`
	}

	RecordStatusResponse struct {
		Status types.Status `json:"status"`
	}

	ProcessRecordRequest struct {
		RecordID types.RecordID `json:"record_id"`
	}

	ProcessRecordResponse struct {
	}

	ErrResponse struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}

	Response[Payload any] struct {
		Data  Payload      `json:"data,omitempty"`
		Error *ErrResponse `json:"error,omitempty"`
	}
)

func (rsp *Response[Payload]) Unwrap() (*Payload, error) {
	if rsp.Error != nil {
		return nil, &types.RemoteError{
			Code:    rsp.Error.Code,
			Message: rsp.Error.Message,
		}
	}
	return &rsp.Data, nil
}
