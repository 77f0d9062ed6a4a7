// internal/models/position.go
package models

// Status is the lifecycle state of a position.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// ParseStatus converts a raw query/body value into a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusOpen, StatusClosed:
		return Status(s), true
	default:
		return "", false
	}
}

// SubStatus is the closing reason of a position. It is only meaningful when
// the position is CLOSED; an open position carries SubStatusNone.
type SubStatus string

const (
	SubStatusNone      SubStatus = ""
	SubStatusCancelled SubStatus = "CANCELLED"
	SubStatusFilled    SubStatus = "FILLED"
)

// ParseSubStatus converts a raw query/body value into a SubStatus.
func ParseSubStatus(s string) (SubStatus, bool) {
	switch SubStatus(s) {
	case SubStatusNone, SubStatusCancelled, SubStatusFilled:
		return SubStatus(s), true
	default:
		return "", false
	}
}

// Position is a job opening tracked through the open/closed lifecycle.
type Position struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Status           Status    `bson:"status" json:"status"`
	SubStatus        SubStatus `bson:"subStatus,omitempty" json:"subStatus,omitempty"`
	HiredCandidateID string    `bson:"hiredCandidateId,omitempty" json:"hiredCandidateId,omitempty"`
}
