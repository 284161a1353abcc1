package tui

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func TestShowBanner(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outC <- buf.String()
	}()

	ShowBanner("1.0.0-test")

	w.Close()
	os.Stdout = old
	out := <-outC

	if !strings.Contains(out, "Lyrics Search") {
		t.Errorf("Expected banner to contain 'Lyrics Search', got: %s", out)
	}
	if !strings.Contains(out, "╔") || !strings.Contains(out, "╝") {
		t.Errorf("Expected banner to contain border characters, got: %s", out)
	}
	if !strings.Contains(out, "v1.0.0-test") {
		t.Errorf("Expected banner to contain version 'v1.0.0-test', got: %s", out)
	}
}

func TestShowBannerDevVersion(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outC <- buf.String()
	}()

	ShowBanner("dev")

	w.Close()
	os.Stdout = old
	out := <-outC

	if strings.Contains(out, "vdev") {
		t.Errorf("Dev builds should not carry a version tag, got: %s", out)
	}
}

func TestGetCompactBanner(t *testing.T) {
	message := "Test message"
	result := GetCompactBanner(message)

	if !strings.Contains(result, message) {
		t.Errorf("Expected compact banner to contain '%s', got: %s", message, result)
	}
	if !strings.Contains(result, "▄▄▄▄▄") {
		t.Errorf("Expected compact banner to contain logo elements, got: %s", result)
	}
}

func TestGetWelcomeMessage(t *testing.T) {
	result := GetWelcomeMessage()

	if !strings.Contains(result, "Type a song title to search") {
		t.Errorf("Expected welcome message to contain search hint, got: %s", result)
	}
}

func TestLogoConstants(t *testing.T) {
	if len(LogoLines) != 4 {
		t.Errorf("Expected 4 logo lines, got %d", len(LogoLines))
	}
	if len(BannerColors) != 5 {
		t.Errorf("Expected 5 banner colors, got %d", len(BannerColors))
	}
}
