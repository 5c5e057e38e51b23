//go:build integration

package postgres

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/domain"
	"github.com/mufaddal-lashkar/safirah-server/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testPool *pgxpool.Pool

const schema = `
CREATE TABLE users (
	id            UUID PRIMARY KEY,
	full_name     TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL DEFAULT '',
	profile_pic   TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL DEFAULT 'user',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE incidents (
	id           UUID PRIMARY KEY,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL,
	type         TEXT NOT NULL,
	severity     TEXT NOT NULL,
	image        TEXT NOT NULL DEFAULT '',
	area         TEXT NOT NULL DEFAULT '',
	latitude     DOUBLE PRECISION NOT NULL,
	longitude    DOUBLE PRECISION NOT NULL,
	city         TEXT NOT NULL,
	state        TEXT NOT NULL,
	postcode     INTEGER NOT NULL,
	country      TEXT NOT NULL,
	is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
	reporter_id  UUID REFERENCES users(id),
	created_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX incidents_city_created_idx ON incidents (city, created_at DESC, id ASC);

CREATE TABLE votes (
	id          UUID PRIMARY KEY,
	incident_id UUID NOT NULL REFERENCES incidents(id),
	user_id     UUID NOT NULL REFERENCES users(id),
	type        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	CONSTRAINT votes_incident_user_key UNIQUE (incident_id, user_id)
);

CREATE TABLE comments (
	id          UUID PRIMARY KEY,
	incident_id UUID NOT NULL REFERENCES incidents(id),
	user_id     UUID NOT NULL REFERENCES users(id),
	text        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
`

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "safirah",
			"POSTGRES_PASSWORD": "safirah",
			"POSTGRES_DB":       "safirah_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "start postgres container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "container host: %v\n", err)
		os.Exit(1)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		fmt.Fprintf(os.Stderr, "mapped port: %v\n", err)
		os.Exit(1)
	}

	dsn := fmt.Sprintf("postgres://safirah:safirah@%s:%s/safirah_test?sslmode=disable", host, port.Port())
	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect pool: %v\n", err)
		os.Exit(1)
	}
	if _, err := testPool.Exec(ctx, schema); err != nil {
		fmt.Fprintf(os.Stderr, "apply schema: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func testRepos(t *testing.T) (*IncidentRepo, *VoteRepo, *CommentRepo, *UserRepo, *StatsRepo) {
	t.Helper()

	_, err := testPool.Exec(context.Background(),
		`TRUNCATE comments, votes, incidents, users CASCADE`)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewIncidentRepo(testPool, logger),
		NewVoteRepo(testPool, logger),
		NewCommentRepo(testPool, logger),
		NewUserRepo(testPool, logger),
		NewStatsRepo(testPool, logger)
}

func seedUser(t *testing.T, users *UserRepo, email string) *domain.User {
	t.Helper()

	u := &domain.User{
		ID:       uuid.New(),
		FullName: "Asha Verma",
		Email:    email,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func seedIncidentAt(t *testing.T, incidents *IncidentRepo, city string, at time.Time) *domain.Incident {
	t.Helper()

	inc := &domain.Incident{
		ID:          uuid.New(),
		Title:       "seeded",
		Description: "seeded",
		Type:        domain.IncidentSuspicious,
		Severity:    domain.SeverityLow,
		Location:    domain.Location{Latitude: 19.07, Longitude: 72.87, City: city, State: "MH", Postcode: 400001, Country: "IN"},
		IsAnonymous: true,
		CreatedAt:   at,
	}
	require.NoError(t, incidents.Create(context.Background(), inc))
	return inc
}

func TestIncidentRepo_WindowAndCount(t *testing.T) {
	incidents, _, _, _, _ := testRepos(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	var seeded []*domain.Incident
	for i := 0; i < 5; i++ {
		seeded = append(seeded, seedIncidentAt(t, incidents, "mumbai", base.Add(-time.Duration(i)*time.Minute)))
	}
	seedIncidentAt(t, incidents, "pune", base)

	total, err := incidents.Count(ctx, domain.IncidentFilter{City: "mumbai"})
	require.NoError(t, err)
	require.EqualValues(t, 5, total)

	window, err := incidents.ListWindow(ctx, domain.IncidentFilter{City: "mumbai"}, 0, 3)
	require.NoError(t, err)
	require.Len(t, window, 3)
	require.Equal(t, seeded[0].ID, window[0].ID)
	require.Equal(t, seeded[2].ID, window[2].ID)

	window, err = incidents.ListWindow(ctx, domain.IncidentFilter{City: "mumbai"}, 3, 3)
	require.NoError(t, err)
	require.Len(t, window, 2)
	require.Equal(t, seeded[3].ID, window[0].ID)

	window, err = incidents.ListWindow(ctx, domain.IncidentFilter{City: "mumbai"}, 30, 3)
	require.NoError(t, err)
	require.Empty(t, window)

	_, err = incidents.Get(ctx, uuid.New())
	require.ErrorIs(t, err, e.ErrNotFound)
}

func TestIncidentRepo_TieBreakOnEqualTimestamps(t *testing.T) {
	incidents, _, _, _, _ := testRepos(t)
	ctx := context.Background()

	at := time.Now().UTC().Truncate(time.Microsecond)
	a := seedIncidentAt(t, incidents, "mumbai", at)
	b := seedIncidentAt(t, incidents, "mumbai", at)
	c := seedIncidentAt(t, incidents, "mumbai", at)

	first, err := incidents.ListWindow(ctx, domain.IncidentFilter{City: "mumbai"}, 0, 2)
	require.NoError(t, err)
	second, err := incidents.ListWindow(ctx, domain.IncidentFilter{City: "mumbai"}, 2, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Len(t, second, 1)

	seen := map[uuid.UUID]struct{}{}
	for _, inc := range append(first, second...) {
		seen[inc.ID] = struct{}{}
	}
	require.Len(t, seen, 3)
	for _, id := range []uuid.UUID{a.ID, b.ID, c.ID} {
		require.Contains(t, seen, id)
	}
}

func TestVoteRepo_ConditionalOps(t *testing.T) {
	incidents, votes, _, users, _ := testRepos(t)
	ctx := context.Background()

	user := seedUser(t, users, "voter@example.com")
	inc := seedIncidentAt(t, incidents, "mumbai", time.Now().UTC())

	ok, err := votes.InsertIfAbsent(ctx, &domain.Vote{IncidentID: inc.ID, UserID: user.ID, Type: domain.VoteUp})
	require.NoError(t, err)
	require.True(t, ok)

	// Second insert for the same pair is a silent no-op.
	ok, err = votes.InsertIfAbsent(ctx, &domain.Vote{IncidentID: inc.ID, UserID: user.ID, Type: domain.VoteDown})
	require.NoError(t, err)
	require.False(t, ok)

	v, err := votes.Get(ctx, inc.ID, user.ID)
	require.NoError(t, err)
	require.Equal(t, domain.VoteUp, v.Type)

	ok, err = votes.DeleteMatching(ctx, inc.ID, user.ID, domain.VoteDown)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = votes.SwitchType(ctx, inc.ID, user.ID, domain.VoteUp, domain.VoteDown)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = votes.DeleteMatching(ctx, inc.ID, user.ID, domain.VoteDown)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = votes.Get(ctx, inc.ID, user.ID)
	require.ErrorIs(t, err, e.ErrNotFound)

	listed, err := votes.ListByIncidentIDs(ctx, []uuid.UUID{inc.ID})
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestCommentRepo_ListAndCount(t *testing.T) {
	incidents, _, comments, users, _ := testRepos(t)
	ctx := context.Background()

	user := seedUser(t, users, "commenter@example.com")
	inc := seedIncidentAt(t, incidents, "mumbai", time.Now().UTC())
	other := seedIncidentAt(t, incidents, "mumbai", time.Now().UTC())

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i, text := range []string{"first", "second", "third"} {
		require.NoError(t, comments.Create(ctx, &domain.Comment{
			IncidentID: inc.ID,
			UserID:     user.ID,
			Text:       text,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}))
	}

	listed, err := comments.ListByIncident(ctx, inc.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	require.Equal(t, "third", listed[0].Text)
	require.Equal(t, "first", listed[2].Text)

	counts, err := comments.CountByIncidentIDs(ctx, []uuid.UUID{inc.ID, other.ID})
	require.NoError(t, err)
	require.Equal(t, 3, counts[inc.ID])
	require.Equal(t, 0, counts[other.ID])
}

func TestUserRepo_UniqueEmail(t *testing.T) {
	_, _, _, users, _ := testRepos(t)
	ctx := context.Background()

	seedUser(t, users, "asha@example.com")

	err := users.Create(ctx, &domain.User{
		ID:       uuid.New(),
		FullName: "Imposter",
		Email:    "asha@example.com",
	})
	require.ErrorIs(t, err, e.ErrUniqueViolation)

	u, err := users.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.Equal(t, "Asha Verma", u.FullName)

	_, err = users.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, e.ErrNotFound)
}

func TestStatsRepo_CityStats(t *testing.T) {
	incidents, _, _, _, stats := testRepos(t)
	ctx := context.Background()

	now := time.Now().UTC()
	recent := seedIncidentAt(t, incidents, "mumbai", now.Add(-5*time.Minute))
	recent.Type = domain.IncidentHarassment
	_, err := testPool.Exec(ctx, `UPDATE incidents SET type = 'harassment', severity = 'high' WHERE id = $1`, recent.ID)
	require.NoError(t, err)
	seedIncidentAt(t, incidents, "mumbai", now.Add(-10*time.Minute))
	seedIncidentAt(t, incidents, "mumbai", now.Add(-3*time.Hour))

	got, err := stats.CityStats(ctx, "mumbai", 60)
	require.NoError(t, err)
	require.EqualValues(t, 2, got.Total)
	require.EqualValues(t, 1, got.ByType[domain.IncidentHarassment])
	require.EqualValues(t, 1, got.BySeverity[domain.SeverityHigh])
	require.EqualValues(t, 1, got.ByType[domain.IncidentSuspicious])
}
