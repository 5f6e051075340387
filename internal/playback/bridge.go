// bridge.go
//
// Share, play, like and discuss Strudel live-coding patterns
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of strudel-share.
// strudel-share is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// strudel-share is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with strudel-share.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package playback

import (
	"context"
	"encoding/base64"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// DefaultBaseURL is the public Strudel REPL
const DefaultBaseURL = "https://strudel.cc/"

// Opener opens a url in a new browser context
type Opener func(ctx context.Context, url string) error

// Bridge hands pattern code to the external Strudel player.
// Playback happens elsewhere, so local state is "stopped" as soon as the url is opened.
type Bridge struct {
	BaseURL string
	open    Opener
}

// New creates a bridge. An empty base uses DefaultBaseURL and a nil opener uses the system browser.
func New(baseURL string, open Opener) *Bridge {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if open == nil {
		open = SystemOpener
	}
	return &Bridge{BaseURL: baseURL, open: open}
}

// URL is the player url with the code base64 encoded in the fragment
func (b *Bridge) URL(code string) string {
	base, _, _ := strings.Cut(b.BaseURL, "#")
	return base + "#" + base64.StdEncoding.EncodeToString([]byte(code))
}

// Play opens the player for code and calls onStop once the url has been handed off
func (b *Bridge) Play(ctx context.Context, code string, onStop func()) (string, error) {
	url := b.URL(code)
	err := b.open(ctx, url)
	if onStop != nil {
		onStop()
	}
	if err != nil {
		return url, fmt.Errorf("failed to open player: %w", err)
	}
	return url, nil
}

// SystemOpener opens url with the platform's default browser
func SystemOpener(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}
	return cmd.Start()
}
