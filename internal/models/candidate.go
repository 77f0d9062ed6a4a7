// internal/models/candidate.go
package models

// Candidate is a person under consideration for a position. PositionID is a
// weak reference by id: the store does not enforce it, the services do.
// InterviewDate is an ISO calendar date (YYYY-MM-DD).
type Candidate struct {
	ID            string `bson:"_id,omitempty" json:"id"`
	Name          string `bson:"name" json:"name"`
	PositionID    string `bson:"positionId" json:"positionId"`
	PhoneNumber   string `bson:"phoneNumber" json:"phoneNumber"`
	CVLink        string `bson:"cvLink,omitempty" json:"cvLink,omitempty"`
	Email         string `bson:"email" json:"email"`
	InterviewDate string `bson:"interviewDate,omitempty" json:"interviewDate,omitempty"`
	DocumentID    string `bson:"documentId,omitempty" json:"documentId,omitempty"`
	AssignedTo    string `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Hired         bool   `bson:"hired" json:"hired"`
}
