package threads

import (
	"Threadway/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) Client {
	return NewClient(config.ThreadsConfig{
		AppID:          "app-id",
		AppSecret:      "app-secret",
		RedirectURI:    "https://example.com/callback",
		AuthBaseURL:    serverURL,
		GraphBaseURL:   serverURL,
		DeviceID:       "device-1",
		TimeoutSeconds: 5,
	})
}

func TestExchangeCode_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/oauth/access_token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "app-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "app-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "abc", r.PostForm.Get("code"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "https://example.com/callback", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user_id": 42, "access_token": "tok1"}`))
	}))
	defer server.Close()

	token, err := testClient(server.URL).ExchangeCode(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, int64(42), token.UserID)
	assert.Equal(t, "tok1", token.AccessToken)
}

func TestExchangeCode_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid code"}`))
	}))
	defer server.Close()

	token, err := testClient(server.URL).ExchangeCode(context.Background(), "bad")

	assert.Error(t, err)
	assert.Nil(t, token)
}

func TestExchangeCode_MissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token": "tok1"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).ExchangeCode(context.Background(), "abc")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing user_id or access_token")
}

func TestExchangeCode_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testClient(server.URL).ExchangeCode(context.Background(), "abc")

	assert.Error(t, err)
}

func TestGetProfile_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me", r.URL.Path)
		assert.Equal(t, "username,threads_profile_picture_url,threads_biography", r.URL.Query().Get("fields"))
		assert.Equal(t, "tok1", r.URL.Query().Get("access_token"))
		assert.Equal(t, "app-id", r.Header.Get("X-IG-App-ID"))
		assert.Equal(t, "device-1", r.Header.Get("X-Device-ID"))

		_, _ = w.Write([]byte(`{"id":"7","username":"alice","threads_profile_picture_url":"https://cdn/p.jpg","threads_biography":"hi"}`))
	}))
	defer server.Close()

	profile, err := testClient(server.URL).GetProfile(context.Background(), "tok1")

	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "https://cdn/p.jpg", profile.ProfilePictureURL)
	assert.Equal(t, "hi", profile.Biography)
	// Raw 原样保留上游字段
	assert.Equal(t, "7", profile.Raw["id"])
	assert.Equal(t, "alice", profile.Raw["username"])
}

func TestCreatePost_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/me/threads", r.URL.Path)
		assert.Equal(t, "tok1", r.URL.Query().Get("access_token"))

		_, _ = w.Write([]byte(`{"id":"post-1"}`))
	}))
	defer server.Close()

	body, err := testClient(server.URL).CreatePost(context.Background(), "tok1", &CreatePostParams{Text: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "post-1", body["id"])
}

func TestListPosts_LimitAndPagingDropped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/threads", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`{"data":[{"id":"1"},{"id":"2"}],"paging":{"cursors":{"after":"xyz"}}}`))
	}))
	defer server.Close()

	posts, err := testClient(server.URL).ListPosts(context.Background(), "tok1", 5)

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "1", posts[0]["id"])
	assert.Equal(t, "2", posts[1]["id"])
}

func TestListReplies_PathAndLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/thread-9/replies", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`{"data":[{"id":"r1"}]}`))
	}))
	defer server.Close()

	replies, err := testClient(server.URL).ListReplies(context.Background(), "tok1", "thread-9", 10)

	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "r1", replies[0]["id"])
}

func TestGetInsights_WindowAndShapes(t *testing.T) {
	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/threads_insights", r.URL.Path)
		assert.Equal(t, "views,likes,replies,quotes,reposts,followers_count", r.URL.Query().Get("metric"))
		assert.Equal(t, since.Format(time.RFC3339), r.URL.Query().Get("since"))
		assert.Equal(t, until.Format(time.RFC3339), r.URL.Query().Get("until"))

		_, _ = w.Write([]byte(`{"data":[
			{"name":"views","period":"day","values":[{"value":10},{"value":7}]},
			{"name":"likes","period":"day","total_value":{"value":5}}
		]}`))
	}))
	defer server.Close()

	entries, err := testClient(server.URL).GetInsights(context.Background(), "tok1", &since, &until)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "views", entries[0].Name)
	require.NotEmpty(t, entries[0].Values)
	assert.Equal(t, int64(10), entries[0].Values[0].Value)
	require.NotNil(t, entries[1].TotalValue)
	assert.Equal(t, int64(5), entries[1].TotalValue.Value)
}

func TestGetInsights_NoWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("since"))
		assert.Empty(t, r.URL.Query().Get("until"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	entries, err := testClient(server.URL).GetInsights(context.Background(), "tok1", nil, nil)

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListPosts_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).ListPosts(context.Background(), "tok1", 10)

	assert.Error(t, err)
}
