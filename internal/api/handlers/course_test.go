package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/studyhall/ai-tutor-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCourseHandler_CRUD(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	var courseID string

	t.Run("create", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/courses/"), token, map[string]string{"name": "Chemistry"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var result struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "Chemistry", result.Name)
		courseID = result.ID
	})

	t.Run("duplicate name", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/courses/"), token, map[string]string{"name": "Chemistry"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusConflict)
	})

	t.Run("empty name", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/courses/"), token, map[string]string{"name": ""})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
	})

	t.Run("list shows only own courses", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/courses/"), otherToken, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result []map[string]any
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Empty(t, result)
	})

	t.Run("stranger cannot read", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/courses/"+courseID), otherToken, nil)
		defer resp.Body.Close()

		testutil.AssertErrorDetail(t, resp, http.StatusNotFound, "not found or access denied")
	})

	t.Run("update", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut, ts.APIURL("/courses/"+courseID), token, map[string]string{"name": "Organic Chemistry"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("delete", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.APIURL("/courses/"+courseID), token, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		resp = doJSON(t, http.MethodGet, ts.APIURL("/courses/"+courseID), token, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("malformed id behaves like missing", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.APIURL("/courses/not-a-uuid"), token, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}
