package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aouyang1/theframe/access"
	"github.com/aouyang1/theframe/api/models"
)

func TestRequestAccessDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.AccessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Grant == nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if *req.Grant {
			json.NewEncoder(w).Encode(access.Result{State: access.Granted, Next: "/settings"})
			return
		}
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(access.Result{State: access.Denied, SettingsURL: "/access/settings"})
	}))
	defer srv.Close()

	fc := NewFrameClient(srv.URL)

	_, err := fc.RequestAccess(context.Background(), false)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
	var denied *DeniedError
	if !errors.As(err, &denied) || denied.Result.SettingsURL != "/access/settings" {
		t.Fatalf("denied error = %#v", err)
	}

	res, err := fc.RequestAccess(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != access.Granted || res.Next != "/settings" {
		t.Fatalf("result = %+v", res)
	}
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Slideshow is not open"})
	}))
	defer srv.Close()

	_, err := NewFrameClient(srv.URL).SlideshowState(context.Background())
	if err == nil || err.Error() != "server error: Slideshow is not open" {
		t.Fatalf("err = %v", err)
	}
}

func TestNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/slideshow" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewFrameClient(srv.URL).CloseSlideshow(context.Background()); err != nil {
		t.Fatal(err)
	}
}
