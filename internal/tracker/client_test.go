package tracker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lcibils/monitor-neuratek/internal/config"
)

const statusesBody = `{"issue_statuses":[
	{"id":1,"name":"New"},
	{"id":2,"name":"In Progress"},
	{"id":3,"name":"Resolved"}
]}`

const issuesBody = `{"total_count":2,"issues":[
	{
		"id":42,
		"subject":"mail down",
		"status":{"id":2,"name":"In Progress"},
		"author":{"id":7,"name":"Jordan Reyes"},
		"category":{"id":1,"name":"incident"},
		"created_on":"2024-12-10T15:00:00Z",
		"updated_on":"2024-12-10T16:30:00Z",
		"custom_fields":[{"id":9,"name":"Estimated date","value":"2025-02-01"}],
		"journals":[
			{"id":1,"created_on":"2024-12-10T16:30:00Z","details":[
				{"property":"attr","name":"status_id","old_value":"1","new_value":"2"}
			]},
			{"id":2,"created_on":"2024-12-10T16:45:00Z","details":[
				{"property":"attr","name":"status_id","old_value":"2","new_value":"2"}
			]}
		]
	},
	{
		"id":43,
		"subject":"slow reports",
		"status":{"id":1,"name":"New"},
		"author":{"id":8,"name":"Sam Ortiz"},
		"created_on":"2024-12-11T09:15:00Z",
		"journals":[]
	}
]}`

func trackerServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	userCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/issue_statuses.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(statusesBody))
	})
	mux.HandleFunc("/issues.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Redmine-API-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(issuesBody))
	})
	mux.HandleFunc("/users/7.json", func(w http.ResponseWriter, r *http.Request) {
		userCalls++
		w.Write([]byte(`{"user":{"id":7,"custom_fields":[{"id":3,"name":"Customer","value":"Acme"}]}}`))
	})
	mux.HandleFunc("/users/8.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":8,"custom_fields":[]}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &userCalls
}

func testClient(baseURL string) *Client {
	return NewClient(config.RedmineConfig{
		BaseURL:          baseURL,
		APIKey:           "secret",
		StatusFilter:     "open",
		InProgressStatus: "In Progress",
		ResolvedStatus:   "Resolved",
		CustomerField:    "Customer",
		EstimateField:    "Estimated date",
		TimeoutSeconds:   5,
	}, zap.NewNop())
}

func TestFetchSnapshots(t *testing.T) {
	server, _ := trackerServer(t)
	client := testClient(server.URL)

	snapshots, err := client.FetchSnapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	first := snapshots[0]
	assert.Equal(t, 42, first.ID)
	assert.Equal(t, "Acme", first.CustomerName)
	assert.Equal(t, "incident", first.Category)
	assert.Equal(t, "In Progress", first.Status)
	assert.Equal(t, time.Date(2024, 12, 10, 15, 0, 0, 0, time.UTC), first.CreatedAt)

	// First status_id transition to In Progress wins; the repeat is ignored.
	require.NotNil(t, first.EnteredInProgressAt)
	assert.Equal(t, time.Date(2024, 12, 10, 16, 30, 0, 0, time.UTC), *first.EnteredInProgressAt)
	assert.Nil(t, first.ResolvedAt)

	require.NotNil(t, first.ExternallyEstimatedDate)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *first.ExternallyEstimatedDate)

	second := snapshots[1]
	assert.Equal(t, 43, second.ID)
	assert.Empty(t, second.CustomerName, "author without customer field resolves to empty")
	assert.Empty(t, second.Category)
	assert.Nil(t, second.EnteredInProgressAt)
	assert.Nil(t, second.ExternallyEstimatedDate)
}

func TestFetchSnapshotsCachesAuthorLookups(t *testing.T) {
	server, userCalls := trackerServer(t)
	client := testClient(server.URL)

	_, err := client.FetchSnapshots(context.Background())
	require.NoError(t, err)
	_, err = client.FetchSnapshots(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, *userCalls, "author custom field should be cached across fetches")
}

func TestFetchSnapshotsUnknownStatusName(t *testing.T) {
	server, _ := trackerServer(t)
	client := testClient(server.URL)
	client.cfg.ResolvedStatus = "Done"

	_, err := client.FetchSnapshots(context.Background())
	require.Error(t, err)
}

func TestFetchSnapshotsTrackerDown(t *testing.T) {
	server, _ := trackerServer(t)
	client := testClient(server.URL)
	server.Close()

	_, err := client.FetchSnapshots(context.Background())
	require.Error(t, err)
}
