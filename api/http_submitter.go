package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	cerr "github.com/saeidalz13/battleship-fleet/internal/error"
	mb "github.com/saeidalz13/battleship-fleet/models/battleship"
	mc "github.com/saeidalz13/battleship-fleet/models/connection"
)

const (
	HeaderRequestId = "X-Request-ID"

	defaultSubmitTimeout = time.Second * 10

	// enough for any error body the game API sends back
	maxErrBodyBytes = 4096
)

type HTTPSubmitter struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
}

var _ Submitter = (*HTTPSubmitter)(nil)

type HTTPOption func(*HTTPSubmitter) error

func NewHTTPSubmitter(baseURL string, tokens TokenSource, optFuncs ...HTTPOption) (*HTTPSubmitter, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, err
	}
	if tokens == nil {
		return nil, cerr.ErrNilTokenSource
	}

	hs := HTTPSubmitter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultSubmitTimeout},
		tokens:  tokens,
	}
	for _, opt := range optFuncs {
		if err := opt(&hs); err != nil {
			return nil, err
		}
	}
	return &hs, nil
}

func WithHTTPClient(client *http.Client) HTTPOption {
	return func(hs *HTTPSubmitter) error {
		hs.client = client
		return nil
	}
}

// WithHTTPTimeout sets the timeout on a copy of the current client, so a
// client passed to WithHTTPClient is left untouched.
func WithHTTPTimeout(timeout time.Duration) HTTPOption {
	return func(hs *HTTPSubmitter) error {
		client := *hs.client
		client.Timeout = timeout
		hs.client = &client
		return nil
	}
}

// SubmitFleet sends PATCH {baseURL}/game/{gameId} with {"ships": [...]}.
func (hs *HTTPSubmitter) SubmitFleet(ctx context.Context, gameId string, ships []mb.Ship) error {
	body, err := json.Marshal(mc.NewReqSubmitFleet(ships))
	if err != nil {
		return err
	}

	endpoint := hs.baseURL + "/game/" + url.PathEscape(gameId)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}

	token, err := hs.tokens.Token(ctx)
	if err != nil {
		return err
	}

	requestId := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(HeaderRequestId, requestId)

	resp, err := hs.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("game_id", gameId).Str("request_id", requestId).Msg("fleet submission request failed")
		return cerr.ErrSubmission(gameId, 0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Info().Str("game_id", gameId).Str("request_id", requestId).Int("ships", len(ships)).Msg("fleet submitted")
		return nil
	}

	detail := readErrDetail(resp.Body)
	log.Error().Str("game_id", gameId).Str("request_id", requestId).Int("status", resp.StatusCode).Str("detail", detail).Msg("fleet submission refused")
	return cerr.ErrSubmission(gameId, resp.StatusCode, detail)
}

func readErrDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrBodyBytes))
	if err != nil {
		return err.Error()
	}

	var respErr mc.RespErr
	if err := json.Unmarshal(raw, &respErr); err == nil {
		if respErr.ErrorDetails != "" {
			return respErr.ErrorDetails
		}
		if respErr.Message != "" {
			return respErr.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
