package types

import (
	"fmt"
)

type RecordID string

type RecordIDGen func() (RecordID, error)

func RecordGenFromStringer[T fmt.Stringer](gen func() (T, error)) RecordIDGen {
	return func() (RecordID, error) {
		val, err := gen()
		if err != nil {
			return "", err
		}
		return RecordID(val.String()), nil
	}
}

// Status is the server-reported lifecycle state of a record.
// Only StatusClosed has a meaning for the process action.
type Status string

const (
	StatusNew     Status = "New"
	StatusWorking Status = "Working"
	StatusClosed  Status = "Closed"
)

// Next returns the status a record moves to when it gets processed.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusClosed:
		return s, false
	case StatusWorking:
		return StatusClosed, true
	default:
		return StatusWorking, true
	}
}

type RecordRequest struct {
	RecordID RecordID `json:"record_id,omitempty"`
	Subject  string   `json:"subject"`
}

type SupportRecord struct {
	RecordID  RecordID `json:"record_id"`
	Subject   string   `json:"subject"`
	Status    Status   `json:"status"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
}

type Variant string

const (
	VariantError   Variant = "error"
	VariantSuccess Variant = "success"
)

type Notification struct {
	RecordID RecordID
	Title    string
	Message  string
	Variant  Variant
}

type NotificationType string

const (
	NotificationCLI      NotificationType = "cli"      // plain text written into the terminal
	NotificationTelegram NotificationType = "telegram" // message published by the telegram bot
)
