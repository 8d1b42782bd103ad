package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sarama_mocks "github.com/IBM/sarama/mocks"
	"github.com/adilzhm/textbook-service/internal/errs"
	"github.com/adilzhm/textbook-service/internal/handler"
	"github.com/adilzhm/textbook-service/internal/model"
	"github.com/adilzhm/textbook-service/pkg/kafka"
	"github.com/adilzhm/textbook-service/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/adilzhm/textbook-service/internal/handler/mocks"
)

func TestHandler_RequestBook(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRequestService, req model.CreateRequestRequest)

	input := model.CreateRequestRequest{BookID: "B1", StudentUsername: "alice"}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"book_id":"B1","student_username":"alice"}`,
			mockBehavior: func(r *service_mocks.MockRequestService, req model.CreateRequestRequest) {
				r.EXPECT().
					CreateRequest(context.Background(), req).
					Return(model.BookRequest{
						RequestID:       1,
						BookID:          req.BookID,
						StudentUsername: req.StudentUsername,
						Status:          model.StatusPending,
						RequestDate:     time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"message":"Book request submitted successfully"}`,
			},
		},
		{
			name: "err. book not found",
			body: `{"book_id":"B1","student_username":"alice"}`,
			mockBehavior: func(r *service_mocks.MockRequestService, req model.CreateRequestRequest) {
				r.EXPECT().
					CreateRequest(context.Background(), req).
					Return(model.BookRequest{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"Book not found"}`,
			},
		},
		{
			name: "err. book unavailable",
			body: `{"book_id":"B1","student_username":"alice"}`,
			mockBehavior: func(r *service_mocks.MockRequestService, req model.CreateRequestRequest) {
				r.EXPECT().
					CreateRequest(context.Background(), req).
					Return(model.BookRequest{}, errs.ErrUnavailable)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Book not available"}`,
			},
		},
		{
			name:         "err. username required",
			body:         `{"book_id":"B1"}`,
			mockBehavior: func(r *service_mocks.MockRequestService, req model.CreateRequestRequest) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			catalogSvc := service_mocks.NewMockCatalogService(c)
			requestSvc := service_mocks.NewMockRequestService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(catalogSvc, requestSvc, nil, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/student/request-book", h.RequestBook)

			r := httptest.NewRequest(http.MethodPost, "/student/request-book", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(requestSvc, input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ProcessRequest(t *testing.T) {
	t.Parallel()
	type input struct {
		requestID int
		status    string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockRequestService, inp input)

	var tests = []struct {
		name         string
		input        input
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:  "ok. approved",
			input: input{requestID: 1, status: "approved"},
			mockBehavior: func(r *service_mocks.MockRequestService, inp input) {
				r.EXPECT().
					ProcessRequest(context.Background(), inp.requestID, model.StatusApproved).
					Return(model.BookRequest{RequestID: inp.requestID, BookID: "B1", StudentUsername: "alice", Status: model.StatusApproved}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"message":"Request approved successfully"}`,
			},
		},
		{
			name:  "ok. rejected",
			input: input{requestID: 2, status: "rejected"},
			mockBehavior: func(r *service_mocks.MockRequestService, inp input) {
				r.EXPECT().
					ProcessRequest(context.Background(), inp.requestID, model.StatusRejected).
					Return(model.BookRequest{RequestID: inp.requestID, BookID: "B2", StudentUsername: "bob", Status: model.StatusRejected}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"message":"Request rejected successfully"}`,
			},
		},
		{
			name:  "err. invalid status",
			input: input{requestID: 1, status: "returned"},
			mockBehavior: func(r *service_mocks.MockRequestService, inp input) {
				r.EXPECT().
					ProcessRequest(context.Background(), inp.requestID, model.Status("returned")).
					Return(model.BookRequest{}, errs.ErrInvalidArgument)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Invalid status"}`,
			},
		},
		{
			name:  "err. request not found",
			input: input{requestID: 42, status: "approved"},
			mockBehavior: func(r *service_mocks.MockRequestService, inp input) {
				r.EXPECT().
					ProcessRequest(context.Background(), inp.requestID, model.StatusApproved).
					Return(model.BookRequest{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"Request not found"}`,
			},
		},
		{
			name:  "err. book no longer available",
			input: input{requestID: 1, status: "approved"},
			mockBehavior: func(r *service_mocks.MockRequestService, inp input) {
				r.EXPECT().
					ProcessRequest(context.Background(), inp.requestID, model.StatusApproved).
					Return(model.BookRequest{}, errs.ErrUnavailable)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Book no longer available"}`,
			},
		},
		{
			name:  "err. already processed",
			input: input{requestID: 1, status: "rejected"},
			mockBehavior: func(r *service_mocks.MockRequestService, inp input) {
				r.EXPECT().
					ProcessRequest(context.Background(), inp.requestID, model.StatusRejected).
					Return(model.BookRequest{}, errs.ErrAlreadyProcessed)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"request already processed"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			catalogSvc := service_mocks.NewMockCatalogService(c)
			requestSvc := service_mocks.NewMockRequestService(c)
			h := handler.New(catalogSvc, requestSvc, nil, zap.NewExample().Named("test"))

			e := echo.New()
			e.PUT("/admin/process-request/:id", h.ProcessRequest)

			r := httptest.NewRequest(http.MethodPut,
				fmt.Sprintf("/admin/process-request/%d?status=%s", tt.input.requestID, tt.input.status), http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(requestSvc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ProcessRequest_Event(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	catalogSvc := service_mocks.NewMockCatalogService(c)
	requestSvc := service_mocks.NewMockRequestService(c)

	// The published event must carry the processed request's book and
	// student, not just the path parameters the admin sent.
	producer := sarama_mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev kafka.RequestEvent
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.RequestID != 7 || ev.BookID != "B1" || ev.StudentUsername != "alice" {
			return fmt.Errorf("event lost request identity: %+v", ev)
		}
		if ev.Status != string(model.StatusApproved) {
			return fmt.Errorf("unexpected event status %q", ev.Status)
		}
		if ev.EventID == "" || ev.OccurredAt.IsZero() {
			return fmt.Errorf("event missing id or timestamp: %+v", ev)
		}
		return nil
	})

	requestSvc.EXPECT().
		ProcessRequest(context.Background(), 7, model.StatusApproved).
		Return(model.BookRequest{
			RequestID:       7,
			BookID:          "B1",
			StudentUsername: "alice",
			Status:          model.StatusApproved,
		}, nil)

	h := handler.New(catalogSvc, requestSvc, producer, zap.NewExample().Named("test"))

	e := echo.New()
	e.PUT("/admin/process-request/:id", h.ProcessRequest)

	r := httptest.NewRequest(http.MethodPut, "/admin/process-request/7?status=approved", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_GetMyRequests(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	catalogSvc := service_mocks.NewMockCatalogService(c)
	requestSvc := service_mocks.NewMockRequestService(c)
	h := handler.New(catalogSvc, requestSvc, nil, zap.NewExample().Named("test"))

	requestDate := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	requestSvc.EXPECT().
		ListByStudent(context.Background(), "alice").
		Return([]model.StudentRequest{
			{
				BookRequest: model.BookRequest{
					RequestID:       1,
					BookID:          "B1",
					StudentUsername: "alice",
					Status:          model.StatusPending,
					RequestDate:     requestDate,
				},
				Title:  "Dune",
				Author: "Herbert",
			},
		}, nil)

	e := echo.New()
	e.GET("/student/my-requests/:username", h.GetMyRequests)

	r := httptest.NewRequest(http.MethodGet, "/student/my-requests/alice", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`[{"request_id":1,"book_id":"B1","student_username":"alice","status":"pending","request_date":"2024-05-01T10:00:00Z","response_date":null,"title":"Dune","author":"Herbert"}]`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_GetPendingRequests(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	catalogSvc := service_mocks.NewMockCatalogService(c)
	requestSvc := service_mocks.NewMockRequestService(c)
	h := handler.New(catalogSvc, requestSvc, nil, zap.NewExample().Named("test"))

	requestSvc.EXPECT().
		ListPending(context.Background()).
		Return([]model.StudentRequest{}, nil)

	e := echo.New()
	e.GET("/admin/pending-requests", h.GetPendingRequests)

	r := httptest.NewRequest(http.MethodGet, "/admin/pending-requests", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `[]`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_DeleteMyRequests(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	catalogSvc := service_mocks.NewMockCatalogService(c)
	requestSvc := service_mocks.NewMockRequestService(c)
	h := handler.New(catalogSvc, requestSvc, nil, zap.NewExample().Named("test"))

	requestSvc.EXPECT().
		DeleteByStudent(context.Background(), "alice").
		Return(nil)

	e := echo.New()
	e.DELETE("/student/my-requests/:username", h.DeleteMyRequests)

	r := httptest.NewRequest(http.MethodDelete, "/student/my-requests/alice", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"message":"Requests for student 'alice' deleted successfully"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_DeletePendingRequests(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	catalogSvc := service_mocks.NewMockCatalogService(c)
	requestSvc := service_mocks.NewMockRequestService(c)
	h := handler.New(catalogSvc, requestSvc, nil, zap.NewExample().Named("test"))

	// Deleting twice stays a no-op the second time, never an error.
	requestSvc.EXPECT().
		DeleteAllPending(context.Background()).
		Return(nil).
		Times(2)

	e := echo.New()
	e.DELETE("/admin/pending-requests", h.DeletePendingRequests)

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodDelete, "/admin/pending-requests", http.NoBody)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, `{"message":"Pending requests deleted successfully"}`, strings.Trim(w.Body.String(), "\n"))
	}
}
