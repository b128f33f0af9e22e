package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aouyang1/theframe/api/models"
	"github.com/aouyang1/theframe/screen"
	"github.com/aouyang1/theframe/settings"
)

// ErrAccessDenied is returned when the frame has no access to its photo library.
var ErrAccessDenied = errors.New("photo library access denied")

// DeniedError carries the deep link returned with a denial.
type DeniedError struct {
	Result models.AccessResponse
}

func (e *DeniedError) Error() string {
	if e.Result.SettingsURL != "" {
		return fmt.Sprintf("%v (state %s, change at %s)", ErrAccessDenied, e.Result.State, e.Result.SettingsURL)
	}
	return fmt.Sprintf("%v (state %s)", ErrAccessDenied, e.Result.State)
}

func (e *DeniedError) Unwrap() error {
	return ErrAccessDenied
}

type FrameClient struct {
	baseURL string
	client  *http.Client
}

func NewFrameClient(baseURL string) *FrameClient {
	return &FrameClient{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// do sends a JSON request and decodes a JSON response into out when out is not nil.
func (fc *FrameClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fc.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := fc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusConflict {
		var res models.AccessResponse
		if err := json.Unmarshal(respBody, &res); err == nil {
			return &DeniedError{Result: res}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp models.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error: %s", errResp.Error)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (fc *FrameClient) AccessStatus(ctx context.Context) (models.AccessResponse, error) {
	var res models.AccessResponse
	err := fc.do(ctx, http.MethodGet, "/access", nil, &res)
	return res, err
}

// RequestAccess answers the access prompt. A refusal returns a *DeniedError.
func (fc *FrameClient) RequestAccess(ctx context.Context, grant bool) (models.AccessResponse, error) {
	var res models.AccessResponse
	if err := fc.do(ctx, http.MethodPost, "/access/request", models.AccessRequest{Grant: &grant}, &res); err != nil {
		return res, err
	}
	slog.Info("access requested", "state", res.State, "next", res.Next)
	return res, nil
}

func (fc *FrameClient) RevokeAccess(ctx context.Context) error {
	return fc.do(ctx, http.MethodPost, "/access/revoke", nil, nil)
}

func (fc *FrameClient) Photos(ctx context.Context, limit int) (models.PhotoListResponse, error) {
	var res models.PhotoListResponse
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	err := fc.do(ctx, http.MethodGet, "/photos?"+q.Encode(), nil, &res)
	return res, err
}

// OpenSettings starts a settings visit.
func (fc *FrameClient) OpenSettings(ctx context.Context) (settings.View, error) {
	var v settings.View
	err := fc.do(ctx, http.MethodGet, "/settings", nil, &v)
	return v, err
}

func (fc *FrameClient) UpdateSettings(ctx context.Context, req models.UpdateSettingsRequest) (settings.View, error) {
	var v settings.View
	err := fc.do(ctx, http.MethodPut, "/settings", req, &v)
	return v, err
}

func (fc *FrameClient) SelectPhoto(ctx context.Context, id string) (settings.View, error) {
	var v settings.View
	err := fc.do(ctx, http.MethodPost, "/settings/select/"+url.PathEscape(id), nil, &v)
	return v, err
}

// Apply saves the settings and returns the launch params for the photo view.
func (fc *FrameClient) Apply(ctx context.Context) (models.LaunchParams, error) {
	var p models.LaunchParams
	err := fc.do(ctx, http.MethodPost, "/settings/apply", nil, &p)
	return p, err
}

// OpenSlideshow starts the photo view at location, as returned by Apply.
func (fc *FrameClient) OpenSlideshow(ctx context.Context, location string) (screen.PhotoViewState, error) {
	var st screen.PhotoViewState
	err := fc.do(ctx, http.MethodGet, location, nil, &st)
	return st, err
}

func (fc *FrameClient) SlideshowState(ctx context.Context) (screen.PhotoViewState, error) {
	var st screen.PhotoViewState
	err := fc.do(ctx, http.MethodGet, "/slideshow/state", nil, &st)
	return st, err
}

func (fc *FrameClient) CloseSlideshow(ctx context.Context) error {
	return fc.do(ctx, http.MethodDelete, "/slideshow", nil, nil)
}
