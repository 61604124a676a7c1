package mooc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingpoem/moocscript/internal/constant"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, "test-token", "test-agent", 5*time.Second)
	require.NoError(t, err)
	return client, srv
}

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient("http://e.com", "", "ua", time.Second)
	assert.ErrorIs(t, err, constant.ErrTokenMissing)
}

func TestClientRequestEnvelope(t *testing.T) {
	var gotPath, gotToken, gotMethod string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("mob-token")
		gotMethod = r.Method
		w.Write([]byte(`{"status":{"code":0,"message":"success"},"results":{"result":[{"name":"课程甲"}]}}`))
	})

	result := client.CourseList(context.Background(), 1, 20)
	require.True(t, result.OK())
	assert.Equal(t, "/mob/course/getAllMyCourseList/v2", gotPath)
	assert.Equal(t, "test-token", gotToken)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "课程甲", result.Results.Get("result.0.name").String())
	assert.NotEmpty(t, result.Raw)
}

func TestClientAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":{"code":100,"message":"token失效"}}`))
	})

	result := client.PaperDetail(context.Background(), 42)
	assert.False(t, result.OK())
	assert.Equal(t, 100, result.Status.Code)
	assert.Equal(t, "token失效", result.Status.Message)
}

// 传输层失败折叠为code -1，不返回error
func TestClientTransportFailure(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1", "tok", "ua", 500*time.Millisecond)
	require.NoError(t, err)

	result := client.CourseInfo(context.Background(), 1, 2)
	assert.Equal(t, -1, result.Status.Code)
	assert.Contains(t, result.Status.Message, "Request failed")
}

func TestClientHTTPStatusFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	result := client.HomeworkPaper(context.Background(), 7)
	assert.Equal(t, -1, result.Status.Code)
}

func TestClientInvalidJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>错误页</html>"))
	})

	result := client.PaperDetail(context.Background(), 1)
	assert.Equal(t, -1, result.Status.Code)
}

func TestClientHeaders(t *testing.T) {
	var appType, ua string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		appType = r.Header.Get("edu-app-type")
		ua = r.Header.Get("User-Agent")
		w.Write([]byte(`{"status":{"code":0}}`))
	})

	client.CourseList(context.Background(), 1, 10)
	assert.Equal(t, "android", appType)
	assert.Equal(t, "test-agent", ua)
}
