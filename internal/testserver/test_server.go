package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/outbreakwatch/internal/apiclient"
	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
	"github.com/rpggio/outbreakwatch/internal/sqlite"
	"github.com/rpggio/outbreakwatch/internal/transport"
	"github.com/stretchr/testify/require"
)

// TestServer is an in-process API backed by an in-memory database.
type TestServer struct {
	Server     *httptest.Server
	DB         *sqlite.DB
	APIKey     string
	Outbreaks  *sqlite.OutbreakRepository
	Facilities *sqlite.FacilityRepository
	CaseStats  *sqlite.CaseStatRepository
}

// New starts a server that accepts apiKey and shuts it down on test
// cleanup.
func New(t *testing.T, apiKey string) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	ts := &TestServer{
		DB:         db,
		APIKey:     apiKey,
		Outbreaks:  sqlite.NewOutbreakRepository(db),
		Facilities: sqlite.NewFacilityRepository(db),
		CaseStats:  sqlite.NewCaseStatRepository(db),
	}

	keys := sqlite.NewAPIKeyRepository(db)
	require.NoError(t, keys.Add(context.Background(), apiKey, "test server"))

	ts.Server = httptest.NewServer(transport.NewServer(transport.Repositories{
		Outbreaks:  ts.Outbreaks,
		Facilities: ts.Facilities,
		CaseStats:  ts.CaseStats,
	}, transport.APIKeyMiddleware(keys), nil))

	t.Cleanup(func() {
		ts.Server.Close()
		_ = db.Close()
	})

	return ts
}

// URL returns the base URL of the API.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

// Client returns an API client authenticated with the server's key.
func (ts *TestServer) Client(t *testing.T, opts ...apiclient.Option) *apiclient.Client {
	t.Helper()
	opts = append([]apiclient.Option{
		apiclient.WithAPIKey(ts.APIKey),
		apiclient.WithHTTPClient(ts.Server.Client()),
	}, opts...)
	client, err := apiclient.New(ts.URL(), opts...)
	require.NoError(t, err)
	return client
}

// SeedFacility inserts a facility directly into the database.
func (ts *TestServer) SeedFacility(t *testing.T, p facility.Payload) *facility.Facility {
	t.Helper()
	f, err := ts.Facilities.Create(context.Background(), p)
	require.NoError(t, err)
	return f
}

// SeedOutbreak inserts an outbreak directly into the database.
func (ts *TestServer) SeedOutbreak(t *testing.T, p outbreak.Payload) *outbreak.Detail {
	t.Helper()
	d, err := ts.Outbreaks.Create(context.Background(), p)
	require.NoError(t, err)
	return d
}

// SeedCaseStat inserts a case statistic directly into the database.
func (ts *TestServer) SeedCaseStat(t *testing.T, p casestat.Payload) *casestat.CaseStat {
	t.Helper()
	s, err := ts.CaseStats.Create(context.Background(), p)
	require.NoError(t, err)
	return s
}
