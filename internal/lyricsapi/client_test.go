package lyricsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nvoss/verso/internal/config"
)

func newTestClient(serverURL string) *Client {
	cfg := config.TestConfig()
	cfg.API.BaseURL = serverURL
	return NewClient(cfg)
}

func TestClient_Suggest(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		expectCount    int
		expectErr      error
		expectStatus   bool
	}{
		{
			name: "successful search maps fields",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("User-Agent") != "verso-test/1.0" {
					t.Errorf("expected test User-Agent, got %s", r.Header.Get("User-Agent"))
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{
					"total": 2,
					"data": [
						{
							"title": "Around the World",
							"explicit_lyrics": false,
							"artist": {"name": "Daft Punk"},
							"album": {"title": "Homework", "cover_medium": "http://img/1.jpg"}
						},
						{
							"title": "Around the World (radio edit)",
							"explicit_lyrics": true,
							"artist": {"name": "Daft Punk"},
							"album": {"title": "Homework", "cover_medium": "http://img/2.jpg"}
						}
					]
				}`))
			},
			expectCount: 2,
		},
		{
			name: "zero total yields ErrNoResults",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"total": 0, "data": []}`))
			},
			expectErr: ErrNoResults,
		},
		{
			name: "server error yields StatusError",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectStatus: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			client := newTestClient(server.URL)
			suggestions, err := client.Suggest(context.Background(), "around the world")

			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("expected %v, got %v", tt.expectErr, err)
				}
				return
			}
			if tt.expectStatus {
				var se *StatusError
				if !errors.As(err, &se) {
					t.Fatalf("expected StatusError, got %v", err)
				}
				if se.Code != http.StatusInternalServerError {
					t.Errorf("expected code 500, got %d", se.Code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(suggestions) != tt.expectCount {
				t.Fatalf("expected %d suggestions, got %d", tt.expectCount, len(suggestions))
			}

			first := suggestions[0]
			if first.Artist != "Daft Punk" {
				t.Errorf("expected artist Daft Punk, got %s", first.Artist)
			}
			if first.Title != "Around the World" {
				t.Errorf("expected title Around the World, got %s", first.Title)
			}
			if first.AlbumTitle != "Homework" {
				t.Errorf("expected album Homework, got %s", first.AlbumTitle)
			}
			if first.CoverURL != "http://img/1.jpg" {
				t.Errorf("expected cover URL, got %s", first.CoverURL)
			}
			if first.Explicit {
				t.Error("first result should not be explicit")
			}
			if !suggestions[1].Explicit {
				t.Error("second result should be explicit")
			}
		})
	}
}

func TestClient_Suggest_EmptyQuery(t *testing.T) {
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Suggest(context.Background(), "   ")

	if !errors.Is(err, ErrNoResults) {
		t.Errorf("expected ErrNoResults for empty query, got %v", err)
	}
	if requested {
		t.Error("empty query must not hit the network")
	}
}

func TestClient_Lyrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/Daft Punk/Around the World" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"lyrics": "Paroles de la chanson Around the World par Daft Punk\r\nAround the world\r\n\r\nAround the world"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	lyrics, err := client.Lyrics(context.Background(), "Daft Punk", "Around the World")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Around the world\n\nAround the world"
	if lyrics != expected {
		t.Errorf("expected normalized lyrics %q, got %q", expected, lyrics)
	}
}

func TestClient_Lyrics_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Lyrics(context.Background(), "nobody", "nothing")

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", se.Code)
	}
	if !IsTransport(err) {
		t.Error("a 404 on the lyrics path is a transport failure, not an empty result")
	}
}

func TestNormalizeLyrics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"crlf normalized", "one\r\ntwo", "one\ntwo"},
		{"header stripped", "Paroles de la chanson X par Y\nreal line", "real line"},
		{"surrounding space trimmed", "\n\n  line  \n\n", "line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeLyrics(tt.input); got != tt.expected {
				t.Errorf("normalizeLyrics(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
