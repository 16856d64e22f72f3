package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcharvet/flashlingo/internal/api"
	"github.com/lcharvet/flashlingo/internal/auth"
	"github.com/lcharvet/flashlingo/internal/db"
	"github.com/lcharvet/flashlingo/internal/repository/sqlite"
	"github.com/lcharvet/flashlingo/internal/services"
	"github.com/lcharvet/flashlingo/internal/srs"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	userRepo := sqlite.NewUserRepository(database)
	deckRepo := sqlite.NewDeckRepository(database)
	cardRepo := sqlite.NewCardRepository(database)
	userDeckRepo := sqlite.NewUserDeckRepository(database)
	audioRepo := sqlite.NewAudioRepository(database)

	server := &api.Server{
		DB:         database,
		Tokens:     tokens,
		Auth:       services.NewAuthService(userRepo, tokens, 4),
		Decks:      services.NewDeckService(deckRepo, cardRepo),
		Collection: services.NewCollectionService(deckRepo, userDeckRepo),
		Scores:     services.NewScoreService(database, srs.DefaultFuzzer()),
		Stats:      services.NewStatsService(userRepo, userDeckRepo, audioRepo),
		Audio:      services.NewAudioService(audioRepo, cardRepo),
	}

	ts := httptest.NewServer(server.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
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
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerAndLogin(t *testing.T, baseURL string) string {
	t.Helper()

	resp, _ := doJSON(t, http.MethodPost, baseURL+"/api/users/register", "", map[string]any{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "correcthorse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, baseURL+"/api/users/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "correcthorse",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	errObj, _ := body["error"].(map[string]any)
	require.NotNil(t, errObj)
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterLoginMe(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts.URL)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body["username"])
	// The password hash never leaves the server
	_, leaked := body["hashed_password"]
	assert.False(t, leaked)
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	ts := newTestServer(t)
	registerAndLogin(t, ts.URL)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/users/register", "", map[string]any{
		"email":    "alice@example.com",
		"username": "alice2",
		"password": "correcthorse",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestScoreSubmissionFlow(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts.URL)

	// Create a deck and a card.
	resp, deck := doJSON(t, http.MethodPost, ts.URL+"/api/decks", token, map[string]any{"name": "Vocabulaire"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	deckID := int64(deck["deck_pk"].(float64))

	resp, card := doJSON(t, http.MethodPost, ts.URL+"/api/cards", token, map[string]any{
		"deck_pk": deckID,
		"front":   "chien",
		"back":    "dog",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cardID := int64(card["card_pk"].(float64))
	assert.Equal(t, 2.5, card["easiness"])

	// Submit a passing answer.
	resp, event := doJSON(t, http.MethodPost, ts.URL+"/api/users/scores", token, map[string]any{
		"deck_pk":    deckID,
		"card_pk":    cardID,
		"score":      95,
		"is_correct": true,
		"quiz_type":  "qcm",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(95), event["score"])

	// The aggregate was created lazily and carries derived fields.
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/users/decks", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/users/decks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	var decks []map[string]any
	require.NoError(t, json.NewDecoder(raw.Body).Decode(&decks))
	require.Len(t, decks, 1)
	assert.Equal(t, float64(95), decks[0]["total_points"])
	assert.Equal(t, float64(1), decks[0]["total_attempts"])
	assert.Equal(t, float64(95), decks[0]["points_qcm"])
	assert.Equal(t, float64(0), decks[0]["points_frappe"])
	assert.Equal(t, float64(100), decks[0]["progress"])
	assert.Equal(t, float64(100), decks[0]["success_rate"])

	// User stats reflect the submission.
	resp, stats := doJSON(t, http.MethodGet, ts.URL+"/api/users/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(95), stats["total_score"])
	assert.Equal(t, float64(1), stats["total_cards_reviewed"])
	assert.Equal(t, float64(1), stats["total_decks"])
}

func TestScoreValidation(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts.URL)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/users/scores", token, map[string]any{
		"score": 150, "is_correct": true, "quiz_type": "qcm",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/users/scores", token, map[string]any{
		"score": 80, "is_correct": true, "quiz_type": "dictee",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCollectionEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts.URL)

	resp, deck := doJSON(t, http.MethodPost, ts.URL+"/api/decks", token, map[string]any{"name": "Grammaire"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	deckID := int64(deck["deck_pk"].(float64))

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/users/decks/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	url := ts.URL + "/api/users/decks/" + strconv.FormatInt(deckID, 10)
	resp, _ = doJSON(t, http.MethodPost, url, token, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, url, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, url, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, url, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
