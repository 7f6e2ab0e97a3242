package scheduler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manufacturing/internal/adapters/out/scheduler"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/httpclient"
	"manufacturing/internal/pkg/metrics"
)

func newClient(t *testing.T, handler http.HandlerFunc) *scheduler.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return scheduler.NewClient(httpclient.New(httpclient.Config{
		Target:          "scheduler",
		BaseURL:         srv.URL + "/api",
		Timeout:         time.Second,
		MaxRetries:      1,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
	}, nil, metrics.New(), nil))
}

func writeJSON(t *testing.T, w http.ResponseWriter, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClient_Submit(t *testing.T) {
	customerOrderID := kernel.NewUUID()
	due := time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC)

	t.Run("should post the order and read the receipt", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/simal/production-order", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "PO-000001", body["orderNumber"])
			assert.Equal(t, "PO-000001", body["productionOrderNumber"])
			assert.Equal(t, customerOrderID.String(), body["sourceCustomerOrderId"])
			assert.Equal(t, "2025-03-17T12:00:00", body["dueDate"])
			assert.Equal(t, "HIGH", body["priority"])

			writeJSON(t, w, map[string]any{
				"scheduleId":          "SCH-1",
				"estimatedDuration":   180,
				"estimatedCompletion": "2025-03-10T11:00:00",
			})
		})

		receipt, err := client.Submit(t.Context(), ports.ScheduleRequest{
			OrderNumber:           "PO-000001",
			SourceCustomerOrderID: customerOrderID,
			DueDate:               due,
			Priority:              kernel.PriorityHigh,
		})

		require.NoError(t, err)
		assert.Equal(t, "SCH-1", receipt.ScheduleID)
		assert.Equal(t, 180, receipt.EstimatedDurationMinutes)
		require.NotNil(t, receipt.EstimatedCompletion)
		assert.Equal(t, time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC), *receipt.EstimatedCompletion)
	})

	t.Run("should report a response without schedule id", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, map[string]any{"estimatedDuration": 10})
		})

		_, err := client.Submit(t.Context(), ports.ScheduleRequest{OrderNumber: "PO-000001", SourceCustomerOrderID: customerOrderID})

		assert.ErrorIs(t, err, errs.ErrSchedulerIntegration)
	})

	t.Run("should carry the status code of a rejected submission", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})

		_, err := client.Submit(t.Context(), ports.ScheduleRequest{OrderNumber: "PO-000001", SourceCustomerOrderID: customerOrderID})

		var integrationErr *errs.SchedulerIntegrationError
		require.ErrorAs(t, err, &integrationErr)
		assert.Equal(t, "submit", integrationErr.Operation)
		assert.Equal(t, http.StatusBadRequest, integrationErr.StatusCode)
	})

	t.Run("should submit only once when the scheduler fails", func(t *testing.T) {
		calls := 0
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			calls++
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.Submit(t.Context(), ports.ScheduleRequest{OrderNumber: "PO-000001", SourceCustomerOrderID: customerOrderID})

		assert.ErrorIs(t, err, errs.ErrSchedulerIntegration)
		assert.Equal(t, 1, calls)
	})
}

func TestClient_GetSchedule(t *testing.T) {
	t.Run("should map the scheduled tasks", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/simal/scheduled-orders/SCH-1", r.URL.Path)
			writeJSON(t, w, map[string]any{
				"scheduleId":              "SCH-1",
				"orderNumber":             "PO-000001",
				"status":                  "SCHEDULED",
				"estimatedCompletionTime": "2025-03-10T11:00:00",
				"totalDuration":           90,
				"scheduledTasks": []map[string]any{
					{
						"taskId": "T1", "itemId": "10", "itemName": "Gear", "quantity": 4,
						"workstationId": "WS-1", "workstationName": "Injection Molding",
						"startTime": "2025-03-10T08:00:00", "endTime": "2025-03-10T09:00:00",
						"duration": 60, "status": "PENDING", "sequence": 1,
					},
					{"taskId": "T2", "itemId": "11", "workstationId": "WS-4", "duration": 30, "sequence": 2},
				},
			})
		})

		got, err := client.GetSchedule(t.Context(), "SCH-1")

		require.NoError(t, err)
		assert.Equal(t, "PO-000001", got.OrderNumber)
		assert.Equal(t, 90, got.TotalDuration)
		require.Len(t, got.Tasks, 2)
		assert.Equal(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), got.Tasks[0].Start)
		assert.Equal(t, "Injection Molding", got.Tasks[0].WorkstationName)
		assert.Equal(t, 4, got.Tasks[0].Quantity)
		assert.True(t, got.Tasks[1].Start.IsZero())
		assert.Equal(t, kernel.WorkstationID(4), got.Tasks[1].Workstation())
	})

	t.Run("should read tasks listed under tasks", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, map[string]any{
				"scheduleId": "SCH-1",
				"tasks": []map[string]any{
					{
						"taskId": "T1", "itemId": "10", "itemName": "Gear", "quantity": 2,
						"workstationId": "WS-1", "startTime": "2025-03-10T08:00:00",
						"endTime": "2025-03-10T08:45:00", "duration": 45, "sequence": 1,
					},
				},
			})
		})

		got, err := client.GetSchedule(t.Context(), "SCH-1")

		require.NoError(t, err)
		require.Len(t, got.Tasks, 1)
		assert.Equal(t, "T1", got.Tasks[0].TaskID)
		assert.Equal(t, kernel.WorkstationID(1), got.Tasks[0].Workstation())
		assert.Equal(t, 45, got.Tasks[0].DurationMinutes)
	})

	t.Run("should reject malformed task times", func(t *testing.T) {
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, map[string]any{
				"scheduledTasks": []map[string]any{{"taskId": "T1", "startTime": "tomorrow"}},
			})
		})

		_, err := client.GetSchedule(t.Context(), "SCH-1")

		assert.ErrorIs(t, err, errs.ErrSchedulerIntegration)
		assert.Contains(t, err.Error(), "tomorrow")
	})

	t.Run("should retry server errors and then give up", func(t *testing.T) {
		calls := 0
		client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			calls++
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.GetSchedule(t.Context(), "SCH-1")

		var integrationErr *errs.SchedulerIntegrationError
		require.ErrorAs(t, err, &integrationErr)
		assert.Equal(t, http.StatusServiceUnavailable, integrationErr.StatusCode)
		assert.Equal(t, 2, calls)
	})
}

func TestClient_Lifecycle(t *testing.T) {
	var paths []string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodGet {
			writeJSON(t, w, map[string]string{"status": "IN_PROGRESS"})
			return
		}
		writeJSON(t, w, map[string]string{})
	})

	status, err := client.GetStatus(t.Context(), "SCH-1")
	require.NoError(t, err)
	require.NoError(t, client.Start(t.Context(), "SCH-1"))
	require.NoError(t, client.Complete(t.Context(), "SCH-1"))

	assert.Equal(t, "IN_PROGRESS", status)
	assert.Equal(t, []string{
		"GET /api/simal/scheduled-orders/SCH-1/status",
		"POST /api/simal/scheduled-orders/SCH-1/start",
		"POST /api/simal/scheduled-orders/SCH-1/complete",
	}, paths)
}
