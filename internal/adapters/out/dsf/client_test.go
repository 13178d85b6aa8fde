package dsf_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"datadelivery/internal/adapters/out/dsf"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *dsf.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := dsf.NewClient(server.URL, "test-token")
	require.NoError(t, err)
	return client
}

func TestClientCreateTask(t *testing.T) {
	proposalID := kernel.NewUUID()
	var captured map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/tasks", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]string{
			"taskId":      "task-42",
			"businessKey": "bk-42",
		})
	})

	ref, err := client.CreateTask(context.Background(), ports.CreateTaskRequest{
		ProposalID:         proposalID,
		ProjectName:        "project alpha",
		ManagementSite:     "DMS-01",
		IntegrationCenters: []string{"DIC-01", "DIC-02"},
		ResearcherEmails:   []string{"researcher@example.org"},
		RequestedDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "task-42", ref.TaskID)
	assert.Equal(t, "bk-42", ref.BusinessKey)
	assert.Equal(t, proposalID.String(), captured["proposalId"])
	assert.Equal(t, "project alpha", captured["projectName"])
}

func TestClientCreateTaskRejectsIncompleteRef(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"taskId": "task-42"})
	})

	_, err := client.CreateTask(context.Background(), ports.CreateTaskRequest{
		ProposalID: kernel.NewUUID(),
	})

	require.Error(t, err)
}

func TestClientFetchReceivedDatasets(t *testing.T) {
	since := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tasks/bk-42/datasets", r.URL.Path)
		require.Equal(t, since.Format(time.RFC3339), r.URL.Query().Get("since"))

		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"supplyingLocation": "Campus Nord 12"},
			{"supplyingLocation": "Forschungsallee 3"},
		})
	})

	addresses, err := client.FetchReceivedDatasets(context.Background(), "bk-42", since)

	require.NoError(t, err)
	assert.Equal(t, []string{"Campus Nord 12", "Forschungsallee 3"}, addresses)
}

func TestClientFetchResultURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tasks/task-42/result", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"resultUrl": "https://results.example.org/alpha"})
	})

	resultURL, err := client.FetchResultURL(context.Background(), "task-42")

	require.NoError(t, err)
	assert.Equal(t, "https://results.example.org/alpha", resultURL)
}

func TestClientFetchResultURLTreatsMissingResultAsPending(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	resultURL, err := client.FetchResultURL(context.Background(), "task-42")

	require.NoError(t, err)
	assert.Empty(t, resultURL)
}

func TestClientReleaseDataSet(t *testing.T) {
	var released bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/tasks/bk-42/release", r.URL.Path)
		released = true
	})

	require.NoError(t, client.ReleaseDataSet(context.Background(), "bk-42"))
	assert.True(t, released)
}

func TestClientExtendReleaseWindow(t *testing.T) {
	newDate := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	var captured map[string]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/tasks/bk-42/window", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
	})

	require.NoError(t, client.ExtendReleaseWindow(context.Background(), "bk-42", newDate))
	assert.Equal(t, newDate.Format(time.RFC3339), captured["newDate"])
}

func TestClientSurfacesServerErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.ReleaseDataSet(context.Background(), "bk-42")
	require.ErrorContains(t, err, "status 500")
}

func TestNewClientRequiresConfiguration(t *testing.T) {
	_, err := dsf.NewClient("", "token")
	require.Error(t, err)

	_, err = dsf.NewClient("http://localhost", "")
	require.Error(t, err)
}
