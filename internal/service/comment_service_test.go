package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/internal/service"
	"github.com/mufaddal-lashkar/safirah-server/internal/storage/memory"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	svc        *service.CommentSvc
	comments   *memory.CommentStore
	users      *memory.UserStore
	incidentID uuid.UUID
	authorID   uuid.UUID
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()

	incidents := memory.NewIncidentStore()
	f := &commentFixture{
		comments: memory.NewCommentStore(),
		users:    memory.NewUserStore(),
	}
	f.svc = service.NewCommentService(f.comments, incidents, f.users, testMetrics())
	f.incidentID = seedIncident(t, incidents, "mumbai")

	author := &domain.User{FullName: "Asha Verma", Email: "asha@example.com", ProfilePic: "avatars/asha.png"}
	require.NoError(t, f.users.Create(context.Background(), author))
	f.authorID = author.ID
	return f
}

func TestComment_Add(t *testing.T) {
	f := newCommentFixture(t)

	c, err := f.svc.Add(context.Background(), domain.AddCommentRequest{
		IncidentID: f.incidentID,
		UserID:     f.authorID,
		Text:       "  avoid this street after dark  ",
	})
	require.NoError(t, err)
	require.Equal(t, "avoid this street after dark", c.Text)
	require.Equal(t, "Asha Verma", c.AuthorName)
	require.Equal(t, "avatars/asha.png", c.AuthorAvatar)
}

func TestComment_AddRejectsBlankText(t *testing.T) {
	f := newCommentFixture(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := f.svc.Add(context.Background(), domain.AddCommentRequest{
			IncidentID: f.incidentID,
			UserID:     f.authorID,
			Text:       text,
		})
		require.ErrorIs(t, err, e.ErrInvalidInput)
	}
}

func TestComment_AddUnknownIncident(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.Add(context.Background(), domain.AddCommentRequest{
		IncidentID: uuid.New(),
		UserID:     f.authorID,
		Text:       "hello",
	})
	require.ErrorIs(t, err, e.ErrNotFound)
}

func TestComment_AddUnknownAuthor(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.Add(context.Background(), domain.AddCommentRequest{
		IncidentID: f.incidentID,
		UserID:     uuid.New(),
		Text:       "hello",
	})
	require.ErrorIs(t, err, e.ErrNotFound)
}

func TestComment_ListNewestFirst(t *testing.T) {
	f := newCommentFixture(t)
	ctx := context.Background()

	base := time.Now().UTC()
	texts := []string{"first", "second", "third"}
	for i, text := range texts {
		require.NoError(t, f.comments.Create(ctx, &domain.Comment{
			IncidentID: f.incidentID,
			UserID:     f.authorID,
			Text:       text,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}))
	}

	out, err := f.svc.List(ctx, f.incidentID)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, "third", out[0].Text)
	require.Equal(t, "first", out[2].Text)
	for _, c := range out {
		require.Equal(t, "Asha Verma", c.AuthorName)
	}
}

func TestComment_ListEmpty(t *testing.T) {
	f := newCommentFixture(t)

	out, err := f.svc.List(context.Background(), f.incidentID)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestComment_ListUnknownIncident(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.List(context.Background(), uuid.New())
	require.ErrorIs(t, err, e.ErrNotFound)
}
