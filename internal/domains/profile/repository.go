package profile

import (
	"context"
	"errors"
	"time"
)

var ErrSubjectNotFound = errors.New("subject not found")

// Subject is what the character knows about the person it talks to.
type Subject struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Interests   []string  `json:"interests"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SubjectRepository interface {
	GetByID(ctx context.Context, id string) (*Subject, error)
	Save(ctx context.Context, s *Subject) error
}
