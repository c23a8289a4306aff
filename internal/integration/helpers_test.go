package integration_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/showtime-booking/api"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"updatedAt": {},
	"bookingId": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))
	cleanValue(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))
	cleanValue(expected)

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

// cleanValue drops nondeterministic keys at any depth, including inside arrays.
func cleanValue(v any) {
	switch v := v.(type) {
	case map[string]any:
		for k := range v {
			if _, ok := keysToIgnore[k]; ok {
				delete(v, k)
				continue
			}
			cleanValue(v[k])
		}
	case []any:
		for _, item := range v {
			cleanValue(item)
		}
	}
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeJSON[T any](t testing.TB, res *http.Response) T {
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

// bookSeats books seats on the test showtime through the API.
func bookSeats(t testing.TB, testApp *TestApp, seats string) api.BookingResult {
	req, err := prepareRequest(http.MethodPost, "/showtimes/"+TestShowtimeId+"/bookings", jsonBody(`{"seats": `+seats+`}`), nil)
	require.NoError(t, err)

	res := serve(testApp, req)
	defer res.Body.Close()

	require.Equal(t, http.StatusCreated, res.StatusCode)

	return decodeJSON[api.BookingResult](t, res)
}

func ptr[T any](v T) *T {
	return &v
}

func serve(testApp *TestApp, req *http.Request) *http.Response {
	rec := httptest.NewRecorder()
	testApp.App.Routes().ServeHTTP(rec, req)
	return rec.Result()
}
