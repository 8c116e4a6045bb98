package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	controller "github.com/wedlock-lab/mandap/pkg/controller/http"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/domain/types"
	"github.com/wedlock-lab/mandap/pkg/repository"
	"github.com/wedlock-lab/mandap/pkg/usecase"
)

type stubSender struct {
	status string
}

func (s *stubSender) Send(ctx context.Context, member model.GroupMember, text string) (string, error) {
	return s.status, nil
}

type nopOps struct{}

func (nopOps) NotifyDispatch(ctx context.Context, record *model.DispatchRecord)    {}
func (nopOps) NotifyStatusChange(ctx context.Context, group string, status string) {}

type stubRoster struct {
	text string
}

func (s *stubRoster) Fetch(ctx context.Context) (string, error) {
	return s.text, nil
}

type serverOpts struct {
	password string
	roster   string
	dryRun   bool
}

func newTestServer(t *testing.T, opts serverOpts) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()

	var source *stubRoster
	if opts.roster != "" {
		source = &stubRoster{text: opts.roster}
	}

	authUC := usecase.NewAuth(opts.password)
	var groupsUC usecase.GroupsUseCase
	if source != nil {
		groupsUC = usecase.NewGroups(source, repo)
	} else {
		groupsUC = usecase.NewGroups(nil, repo)
	}
	notifyUC := usecase.NewNotify(
		&stubSender{status: "queued"},
		&stubSender{status: "queued"},
		&stubSender{status: types.DeliverySent},
		repo,
		nopOps{},
		model.DefaultEventConfig(),
		opts.dryRun,
	)
	statusUC := usecase.NewStatus(repo)

	srv := controller.NewServer(ctx, "localhost:0", authUC, groupsUC, notifyUC, statusUC, opts.password != "")

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	gt.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	gt.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	resp, err := http.Get(ts.URL + "/health")
	gt.NoError(t, err)
	gt.Equal(t, resp.StatusCode, http.StatusOK)

	body := decodeBody[map[string]string](t, resp)
	gt.Equal(t, body["status"], "healthy")
	gt.Equal(t, body["service"], "mandap")
}

func TestLoginEndpoint(t *testing.T) {
	ts := newTestServer(t, serverOpts{password: "secret"})

	resp := postJSON(t, ts.URL+"/api/auth/login", map[string]string{"password": "secret"})
	gt.Equal(t, resp.StatusCode, http.StatusOK)
	body := decodeBody[map[string]any](t, resp)
	gt.Equal(t, body["success"], true)
	gt.True(t, body["token"].(string) != "")

	resp = postJSON(t, ts.URL+"/api/auth/login", map[string]string{"password": "wrong"})
	gt.Equal(t, resp.StatusCode, http.StatusUnauthorized)
	body = decodeBody[map[string]any](t, resp)
	gt.Equal(t, body["success"], false)
	gt.Equal(t, body["message"], "Incorrect password")
}

func TestLoginUnconfigured(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	resp := postJSON(t, ts.URL+"/api/auth/login", map[string]string{"password": "anything"})
	gt.Equal(t, resp.StatusCode, http.StatusInternalServerError)
	body := decodeBody[map[string]any](t, resp)
	gt.Equal(t, body["success"], false)
	gt.Equal(t, body["message"], "Authentication not configured")
}

func TestVerifyEndpoint(t *testing.T) {
	ts := newTestServer(t, serverOpts{password: "secret"})

	resp := postJSON(t, ts.URL+"/api/auth/login", map[string]string{"password": "secret"})
	login := decodeBody[map[string]any](t, resp)
	token := login["token"].(string)

	resp = postJSON(t, ts.URL+"/api/auth/verify", map[string]string{"token": token})
	gt.Equal(t, resp.StatusCode, http.StatusOK)
	gt.Equal(t, decodeBody[map[string]bool](t, resp)["valid"], true)

	resp = postJSON(t, ts.URL+"/api/auth/verify", map[string]string{"token": "bogus"})
	gt.Equal(t, resp.StatusCode, http.StatusUnauthorized)
	gt.Equal(t, decodeBody[map[string]bool](t, resp)["valid"], false)
}

func TestGroupsEndpoint(t *testing.T) {
	csv := "num,name,phone,email\n1,Alice,1234567890,a@x.com\n"
	ts := newTestServer(t, serverOpts{roster: csv})

	resp, err := http.Get(ts.URL + "/api/groups")
	gt.NoError(t, err)
	gt.Equal(t, resp.StatusCode, http.StatusOK)

	body := decodeBody[struct {
		Groups []model.Group `json:"groups"`
	}](t, resp)
	gt.Equal(t, len(body.Groups), 1)
	gt.Equal(t, body.Groups[0].GroupNumber, types.GroupNumber(1))
	gt.Equal(t, body.Groups[0].Members[0].Phone, "+11234567890")
	gt.Equal(t, body.Groups[0].Status, types.QueueStatusWaiting)
}

func TestGroupsEndpointUnconfigured(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	resp, err := http.Get(ts.URL + "/api/groups")
	gt.NoError(t, err)
	gt.Equal(t, resp.StatusCode, http.StatusInternalServerError)
}

func TestNotifyEndpoint(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	req := model.NotificationRequest{
		GroupNumber: 1,
		Members: []model.GroupMember{
			{Name: "Alice", Phone: "+11234567890", Email: "a@x.com"},
		},
	}

	resp := postJSON(t, ts.URL+"/api/notify", req)
	gt.Equal(t, resp.StatusCode, http.StatusOK)

	body := decodeBody[model.NotificationResponse](t, resp)
	gt.True(t, body.Success)
	gt.Equal(t, body.Message, "Notifications sent to 1 member(s)")
	gt.Equal(t, len(body.Results), 1)
	gt.Equal(t, body.Results[0].SMSStatus, "queued")
	gt.Equal(t, body.Results[0].EmailStatus, types.DeliverySent)
}

func TestNotifyEndpointEmptyMembers(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	resp := postJSON(t, ts.URL+"/api/notify", model.NotificationRequest{GroupNumber: 1})
	gt.Equal(t, resp.StatusCode, http.StatusBadRequest)

	body := decodeBody[model.NotificationResponse](t, resp)
	gt.False(t, body.Success)
	gt.Equal(t, body.Message, "No group members provided")
}

func TestNotifyEndpointRequiresToken(t *testing.T) {
	ts := newTestServer(t, serverOpts{password: "secret"})

	req := model.NotificationRequest{
		GroupNumber: 1,
		Members: []model.GroupMember{
			{Name: "Alice", Phone: "+11234567890", Email: "a@x.com"},
		},
	}

	// Without a token
	resp := postJSON(t, ts.URL+"/api/notify", req)
	gt.Equal(t, resp.StatusCode, http.StatusUnauthorized)

	// With a token from login
	loginResp := postJSON(t, ts.URL+"/api/auth/login", map[string]string{"password": "secret"})
	token := decodeBody[map[string]any](t, loginResp)["token"].(string)

	data, err := json.Marshal(req)
	gt.NoError(t, err)
	httpReq, err := http.NewRequest(http.MethodPost, ts.URL+"/api/notify", bytes.NewReader(data))
	gt.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err = http.DefaultClient.Do(httpReq)
	gt.NoError(t, err)
	gt.Equal(t, resp.StatusCode, http.StatusOK)
}

func TestTestModeEndpoint(t *testing.T) {
	ts := newTestServer(t, serverOpts{dryRun: true})

	resp, err := http.Get(ts.URL + "/api/test-mode")
	gt.NoError(t, err)
	gt.Equal(t, resp.StatusCode, http.StatusOK)
	gt.Equal(t, decodeBody[map[string]bool](t, resp)["testMode"], true)
}

func TestStatusEndpoints(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	// Set a status
	data, err := json.Marshal(map[string]string{"status": "queued"})
	gt.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/status/7", bytes.NewReader(data))
	gt.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err)
	gt.Equal(t, resp.StatusCode, http.StatusOK)

	set := decodeBody[map[string]any](t, resp)
	gt.Equal(t, set["status"], "queued")

	// List includes it
	resp, err = http.Get(ts.URL + "/api/status")
	gt.NoError(t, err)
	gt.Equal(t, resp.StatusCode, http.StatusOK)

	list := decodeBody[struct {
		Statuses map[string]types.QueueStatus `json:"statuses"`
	}](t, resp)
	gt.Equal(t, list.Statuses["7"], types.QueueStatusQueued)
}

func TestStatusEndpointRejectsInvalid(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	for path, body := range map[string]string{
		"/api/status/7":   `{"status":"done"}`,
		"/api/status/abc": `{"status":"queued"}`,
	} {
		req, err := http.NewRequest(http.MethodPut, ts.URL+path, bytes.NewReader([]byte(body)))
		gt.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		gt.NoError(t, err)
		gt.Equal(t, resp.StatusCode, http.StatusBadRequest)
	}
}
