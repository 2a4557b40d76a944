package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
	mc "github.com/saeidalz13/battleship-fleet/models/connection"
)

var testJwtSecret = []byte("test-secret")

func signTestToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "player-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(testJwtSecret)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

// fakeGameAPI mimics PATCH /game/{gameId} of the game server.
type fakeGameAPI struct {
	mu         sync.Mutex
	status     int
	body       string
	gotGameId  string
	gotReqId   string
	gotFleet   mc.ReqSubmitFleet
	gotRawBody string
}

func (f *fakeGameAPI) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return testJwtSecret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, `{"error_details":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeGameAPI) handleSubmit(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gotGameId = chi.URLParam(r, "gameId")
	f.gotReqId = r.Header.Get(HeaderRequestId)

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.gotRawBody = string(raw)
	_ = json.Unmarshal(raw, &f.gotFleet)

	w.WriteHeader(f.status)
	_, _ = w.Write([]byte(f.body))
}

func newFakeGameAPI(status int, body string) (*fakeGameAPI, *httptest.Server) {
	f := &fakeGameAPI{status: status, body: body}

	r := chi.NewRouter()
	r.With(f.requireBearer).Patch("/game/{gameId}", f.handleSubmit)
	return f, httptest.NewServer(r)
}

func testFleet() []mb.Ship {
	return []mb.Ship{
		mb.NewShip(mb.NewCell(0, 1), 6, mb.Horizontal),
		mb.NewShip(mb.NewCell(9, 3), 2, mb.Vertical),
	}
}

func TestHTTPSubmitterSubmitFleet(t *testing.T) {
	tests := []struct {
		name              string
		status            int
		body              string
		badToken          bool
		expectedErr       bool
		expectedRetryable bool
		expectedDetail    string
	}{
		{name: "accepted", status: http.StatusOK, body: `{"id":"g1"}`},
		{name: "no content", status: http.StatusNoContent},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", expectedErr: true, expectedRetryable: true, expectedDetail: "boom"},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error_details":"ships overlap"}`, expectedErr: true, expectedDetail: "ships overlap"},
		{name: "invalid token", status: http.StatusOK, badToken: true, expectedErr: true, expectedDetail: "invalid token"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fake, server := newFakeGameAPI(test.status, test.body)
			defer server.Close()

			token := signTestToken(t)
			if test.badToken {
				token = "not-a-jwt"
			}

			hs, err := NewHTTPSubmitter(server.URL+"/", StaticToken(token))
			if err != nil {
				t.Fatal(err)
			}

			err = hs.SubmitFleet(context.Background(), "game-42", testFleet())
			if !test.expectedErr {
				if err != nil {
					t.Fatal(err)
				}

				expectedBody := `{"ships":[{"x":"A","y":1,"size":6,"direction":"HORIZONTAL"},{"x":"J","y":3,"size":2,"direction":"VERTICAL"}]}`
				if fake.gotRawBody != expectedBody {
					t.Fatalf("expected body: %s\tgot: %s", expectedBody, fake.gotRawBody)
				}
				if fake.gotGameId != "game-42" {
					t.Fatalf("expected game id: %s\tgot: %s", "game-42", fake.gotGameId)
				}
				if fake.gotReqId == "" {
					t.Fatal("expected a request id header")
				}
				return
			}

			var subErr *cerr.SubmissionError
			if !errors.As(err, &subErr) {
				t.Fatalf("expected SubmissionError\tgot: %v", err)
			}
			if subErr.Retryable != test.expectedRetryable {
				t.Fatalf("expected retryable: %t\tgot: %t", test.expectedRetryable, subErr.Retryable)
			}
			if subErr.Detail != test.expectedDetail {
				t.Fatalf("expected detail: %q\tgot: %q", test.expectedDetail, subErr.Detail)
			}
		})
	}
}

func TestHTTPSubmitterServerDown(t *testing.T) {
	_, server := newFakeGameAPI(http.StatusOK, "")
	url := server.URL
	server.Close()

	hs, err := NewHTTPSubmitter(url, StaticToken(signTestToken(t)), WithHTTPTimeout(time.Second))
	if err != nil {
		t.Fatal(err)
	}

	err = hs.SubmitFleet(context.Background(), "game-42", testFleet())
	var subErr *cerr.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubmissionError\tgot: %v", err)
	}
	if !subErr.Retryable || subErr.Status != 0 {
		t.Fatalf("expected retryable transport error\tgot: %+v", subErr)
	}
}

func TestNewHTTPSubmitterInvalidURL(t *testing.T) {
	if _, err := NewHTTPSubmitter("not a url", StaticToken("t")); err == nil {
		t.Fatal("expected invalid base url to fail")
	}
}

func TestWithHTTPTimeoutKeepsCallerClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	hs, err := NewHTTPSubmitter("http://localhost:8080", StaticToken("t"), WithHTTPClient(shared), WithHTTPTimeout(time.Second))
	if err != nil {
		t.Fatal(err)
	}

	if shared.Timeout != time.Minute {
		t.Fatalf("expected shared client timeout: %s\tgot: %s", time.Minute, shared.Timeout)
	}
	if hs.client == shared || hs.client.Timeout != time.Second {
		t.Fatalf("expected own client with timeout: %s\tgot: %s", time.Second, hs.client.Timeout)
	}
}

func TestNewSubmitterNilTokenSource(t *testing.T) {
	if _, err := NewHTTPSubmitter("http://localhost:8080", nil); !errors.Is(err, cerr.ErrNilTokenSource) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrNilTokenSource, err)
	}
	if _, err := NewWsSubmitter("ws://localhost:8080/ws", nil); !errors.Is(err, cerr.ErrNilTokenSource) {
		t.Fatalf("expected error: %v\tgot: %v", cerr.ErrNilTokenSource, err)
	}
}
