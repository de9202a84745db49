package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	subjects map[string]*Subject
	err      error
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Subject, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.subjects[id]
	if !ok {
		return nil, ErrSubjectNotFound
	}
	return s, nil
}

func (f *fakeRepo) Save(_ context.Context, s *Subject) error {
	f.subjects[s.ID] = s
	return nil
}

func TestContextFor(t *testing.T) {
	svc := NewService(&fakeRepo{subjects: map[string]*Subject{
		"kid-1": {ID: "kid-1", DisplayName: "Ada", Interests: []string{"dinosaurs", "space"}, Notes: "Shy at first."},
	}})

	got, err := svc.ContextFor(context.Background(), "kid-1")
	require.NoError(t, err)
	assert.Equal(t, "Name: Ada\nInterests: dinosaurs, space\nNotes: Shy at first.", got)

	got, err = svc.ContextFor(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.ContextFor(context.Background(), " ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestContextForRepoError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("db gone")})
	_, err := svc.ContextFor(context.Background(), "kid-1")
	assert.EqualError(t, err, "db gone")
}
