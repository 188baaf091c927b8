package waitlist

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/config/router"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testAdminToken = "s3cret-admin-token"

type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newControllerServer(t *testing.T, service WaitlistService) *httptest.Server {
	t.Helper()

	rs := router.CreateRouterService(testLogger(), nil, &router.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(newWaitlistController(service, testAdminToken))

	server := httptest.NewServer(rs.GetEngine())
	t.Cleanup(server.Close)
	return server
}

func doRequest(t *testing.T, method, url string, body string, headers map[string]string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestWaitlistController_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewMockWaitlistService(ctrl)
	server := newControllerServer(t, service)

	service.EXPECT().
		Register(gomock.Any(), &RegisterRequest{Email: "ada@example.com", Name: "Ada", Interests: []string{"nps"}}).
		Return(&RegisterResponse{ID: 42}, nil)

	code, env := doRequest(t, http.MethodPost, server.URL+"/v1/waitlist",
		`{"email":"ada@example.com","name":"Ada","interests":["nps"]}`, nil)

	assert.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"id":42}`, string(env.Data))
}

func TestWaitlistController_RegisterErrors(t *testing.T) {
	t.Run("malformed body never reaches the service", func(t *testing.T) {
		server := newControllerServer(t, NewMockWaitlistService(gomock.NewController(t)))

		code, _ := doRequest(t, http.MethodPost, server.URL+"/v1/waitlist", `{"email":`, nil)
		assert.Equal(t, http.StatusBadRequest, code)

		code, env := doRequest(t, http.MethodPost, server.URL+"/v1/waitlist", `{"name":"Ada"}`, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Invalid request payload", env.Message)
	})

	t.Run("invalid email from the service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewMockWaitlistService(ctrl)
		server := newControllerServer(t, service)

		service.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, NewInvalidEmailError())

		code, env := doRequest(t, http.MethodPost, server.URL+"/v1/waitlist", `{"email":"not-an-email"}`, nil)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Please provide a valid email address", env.Message)
	})

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewMockWaitlistService(ctrl)
		server := newControllerServer(t, service)

		service.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, NewDuplicateEmailError(nil))

		code, env := doRequest(t, http.MethodPost, server.URL+"/v1/waitlist", `{"email":"ada@example.com"}`, nil)

		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "Email already registered for waitlist", env.Message)
	})

	t.Run("store failure hides internals", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewMockWaitlistService(ctrl)
		server := newControllerServer(t, service)

		service.EXPECT().
			Register(gomock.Any(), gomock.Any()).
			Return(nil, NewStoreUnavailableError("unable to create waitlist entry", io.ErrUnexpectedEOF))

		code, env := doRequest(t, http.MethodPost, server.URL+"/v1/waitlist", `{"email":"ada@example.com"}`, nil)

		assert.Equal(t, http.StatusInternalServerError, code)
		assert.NotContains(t, env.Message, "EOF")
	})
}

func TestWaitlistController_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewMockWaitlistService(ctrl)
	server := newControllerServer(t, service)

	service.EXPECT().
		SubmitFeedback(gomock.Any(), &SubmitRequest{Email: "ada@example.com", Feedback: "Typeform"}).
		Return(&RegisterResponse{ID: 3}, nil)

	code, env := doRequest(t, http.MethodPost, server.URL+"/v1/waitlist/submit",
		`{"email":"ada@example.com","feedback":"Typeform"}`, nil)

	assert.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `{"id":3}`, string(env.Data))
}

func TestWaitlistController_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewMockWaitlistService(ctrl)
	server := newControllerServer(t, service)

	service.EXPECT().GetStats(gomock.Any()).Return(&StatsResponse{Total: 5, Pending: 3, Approved: 1}, nil)

	code, env := doRequest(t, http.MethodGet, server.URL+"/v1/waitlist/stats", "", nil)

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"total":5,"pending":3,"approved":1}`, string(env.Data))
}

func TestWaitlistController_Position(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewMockWaitlistService(ctrl)
	server := newControllerServer(t, service)

	t.Run("missing email", func(t *testing.T) {
		code, _ := doRequest(t, http.MethodGet, server.URL+"/v1/waitlist/position", "", nil)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("on the list", func(t *testing.T) {
		service.EXPECT().
			GetPosition(gomock.Any(), "ada@example.com").
			Return(&PositionResponse{Position: 2, Status: models.WaitlistStatusPending, JoinedAt: 1700000000000}, nil)

		code, env := doRequest(t, http.MethodGet, server.URL+"/v1/waitlist/position?email=ada@example.com", "", nil)

		assert.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `{"position":2,"status":"pending","joined_at":1700000000000}`, string(env.Data))
	})

	t.Run("not on the list", func(t *testing.T) {
		service.EXPECT().GetPosition(gomock.Any(), "nobody@example.com").Return(nil, nil)

		code, env := doRequest(t, http.MethodGet, server.URL+"/v1/waitlist/position?email=nobody@example.com", "", nil)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "null", string(env.Data))
	})
}

func TestWaitlistController_AdminEndpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewMockWaitlistService(ctrl)
	server := newControllerServer(t, service)

	t.Run("missing token", func(t *testing.T) {
		code, _ := doRequest(t, http.MethodGet, server.URL+"/v1/waitlist/entries", "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("wrong token", func(t *testing.T) {
		code, _ := doRequest(t, http.MethodGet, server.URL+"/v1/waitlist/entries/1", "",
			map[string]string{adminTokenHeader: "guess"})
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("list entries", func(t *testing.T) {
		service.EXPECT().GetAllEntries(gomock.Any()).Return([]WaitlistEntryResponse{
			{ID: 1, Email: "ada@example.com", Status: models.WaitlistStatusPending},
		}, nil)

		code, env := doRequest(t, http.MethodGet, server.URL+"/v1/waitlist/entries", "",
			map[string]string{adminTokenHeader: testAdminToken})

		assert.Equal(t, http.StatusOK, code)
		assert.True(t, strings.Contains(string(env.Data), "ada@example.com"))
	})

	t.Run("get entry", func(t *testing.T) {
		service.EXPECT().FindEntryByID(gomock.Any(), uint(9)).Return(nil, NewEntryNotFoundError(nil))

		code, _ := doRequest(t, http.MethodGet, server.URL+"/v1/waitlist/entries/9", "",
			map[string]string{adminTokenHeader: testAdminToken})

		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestRequireAdminToken_EmptyTokenLocksEndpoints(t *testing.T) {
	rs := router.CreateRouterService(testLogger(), nil, &router.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	rs.MountController(newWaitlistController(NewMockWaitlistService(gomock.NewController(t)), ""))

	server := httptest.NewServer(rs.GetEngine())
	defer server.Close()

	code, _ := doRequest(t, http.MethodGet, server.URL+"/v1/waitlist/entries", "",
		map[string]string{adminTokenHeader: ""})
	assert.Equal(t, http.StatusUnauthorized, code)
}
