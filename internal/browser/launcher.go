// Package browser opens external URLs with the platform opener.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/nvoss/verso/internal/config"
	"github.com/nvoss/verso/internal/debuglog"
)

type Launcher struct {
	opener string
}

func NewLauncher(cfg *config.Config) *Launcher {
	opener := cfg.UI.Opener
	if opener == "" {
		switch runtime.GOOS {
		case "darwin":
			opener = "open"
		case "windows":
			opener = "start"
		default:
			opener = "xdg-open"
		}
	}
	return &Launcher{opener: opener}
}

func (l *Launcher) Open(target string) error {
	if target == "" {
		return fmt.Errorf("nothing to open")
	}

	var cmd *exec.Cmd
	if l.opener == "start" {
		// "start" is a cmd.exe builtin, not an executable
		cmd = exec.Command("cmd", "/c", "start", target)
	} else {
		cmd = exec.Command(l.opener, target)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", l.opener, err)
	}
	debuglog.Debugf("opened %s with %s", target, l.opener)
	return nil
}

// WebSearchURL builds a web search for a song's lyrics, the external
// search link shown in the metadata panel.
func WebSearchURL(artist, title string) string {
	q := url.QueryEscape(artist + " " + title + " lyrics")
	return "https://duckduckgo.com/?q=" + q
}
