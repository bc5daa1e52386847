package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "go-performative-rater/internal/errors"
)

func TestFetchImageRetryLogic(t *testing.T) {
	tests := []struct {
		name         string
		responses    []int
		wantRequests int
		wantErrKind  apperrors.Kind
	}{
		{
			name:         "success on first attempt",
			responses:    []int{200},
			wantRequests: 1,
		},
		{
			name:         "success after a 5xx",
			responses:    []int{500, 200},
			wantRequests: 2,
		},
		{
			name:         "4xx fails without retry",
			responses:    []int{404},
			wantRequests: 1,
			wantErrKind:  apperrors.KindValidation,
		},
		{
			name:         "4xx after 5xx stops retrying",
			responses:    []int{500, 404},
			wantRequests: 2,
			wantErrKind:  apperrors.KindValidation,
		},
		{
			name:         "all attempts exhausted on 5xx",
			responses:    []int{500, 502, 503},
			wantRequests: 3,
			wantErrKind:  apperrors.KindNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				status := tt.responses[requests]
				requests++
				if status == 200 {
					w.Write([]byte("image-bytes"))
					return
				}
				w.WriteHeader(status)
			}))
			defer server.Close()

			fetcher := NewHTTPImageFetcher(5*time.Second, 1024)
			data, err := fetcher.FetchImage(context.Background(), server.URL)

			if requests != tt.wantRequests {
				t.Errorf("server saw %d requests, want %d", requests, tt.wantRequests)
			}
			if tt.wantErrKind == "" {
				if err != nil {
					t.Fatalf("FetchImage() error = %v", err)
				}
				if string(data) != "image-bytes" {
					t.Errorf("body = %q, want image-bytes", data)
				}
				return
			}
			if err == nil {
				t.Fatal("FetchImage() should fail")
			}
			if !apperrors.IsKind(err, tt.wantErrKind) {
				t.Errorf("error kind = %s, want %s", apperrors.KindOf(err), tt.wantErrKind)
			}
		})
	}
}

func TestFetchImageRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 2048)))
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher(5*time.Second, 1024)
	_, err := fetcher.FetchImage(context.Background(), server.URL)
	if err == nil {
		t.Fatal("FetchImage() should reject an oversized body")
	}
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Errorf("error kind = %s, want validation", apperrors.KindOf(err))
	}
}

func TestFetchImageRejectsEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher(5*time.Second, 1024)
	_, err := fetcher.FetchImage(context.Background(), server.URL)
	if err == nil {
		t.Fatal("FetchImage() should reject an empty body")
	}
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Errorf("error kind = %s, want validation", apperrors.KindOf(err))
	}
}

func TestFetchImageUnreachableHost(t *testing.T) {
	fetcher := NewHTTPImageFetcher(time.Second, 1024)
	_, err := fetcher.FetchImage(context.Background(), "http://127.0.0.1:1/image.jpg")
	if err == nil {
		t.Fatal("FetchImage() should fail for an unreachable host")
	}
	if !apperrors.IsKind(err, apperrors.KindNetwork) {
		t.Errorf("error kind = %s, want network", apperrors.KindOf(err))
	}
}
