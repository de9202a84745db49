package profile

import (
	"context"
	"errors"
	"strings"
)

// ContextProvider turns a subject id into prompt context.
type ContextProvider interface {
	ContextFor(ctx context.Context, subjectID string) (string, error)
}

type Service struct {
	repo SubjectRepository
}

func NewService(repo SubjectRepository) *Service {
	return &Service{repo: repo}
}

// ContextFor returns an empty string for blank or unknown subjects.
func (s *Service) ContextFor(ctx context.Context, subjectID string) (string, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return "", nil
	}
	subject, err := s.repo.GetByID(ctx, subjectID)
	if errors.Is(err, ErrSubjectNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return Describe(subject), nil
}

func Describe(s *Subject) string {
	if s == nil {
		return ""
	}
	var lines []string
	if name := strings.TrimSpace(s.DisplayName); name != "" {
		lines = append(lines, "Name: "+name)
	}
	if len(s.Interests) > 0 {
		lines = append(lines, "Interests: "+strings.Join(s.Interests, ", "))
	}
	if notes := strings.TrimSpace(s.Notes); notes != "" {
		lines = append(lines, "Notes: "+notes)
	}
	return strings.Join(lines, "\n")
}

// NoContext is used when no profile database is configured.
type NoContext struct{}

func (NoContext) ContextFor(context.Context, string) (string, error) { return "", nil }
