// bridge_test.go
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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	b := New("", nil)
	code := `sound("bd bd ~ bd").cpm(120)`

	url := b.URL(code)
	require.True(t, strings.HasPrefix(url, "https://strudel.cc/#"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "https://strudel.cc/#"))
	require.NoError(t, err)
	assert.Equal(t, code, string(decoded))

	assert.Equal(t, "http://local/#YQ==", New("http://local/#old", nil).URL("a"))
}

func TestPlayStopsImmediately(t *testing.T) {
	var opened []string
	b := New("http://local/", func(_ context.Context, url string) error {
		opened = append(opened, url)
		return nil
	})

	stopped := false
	url, err := b.Play(context.Background(), "x", func() { stopped = true })
	require.NoError(t, err)
	assert.True(t, stopped)
	assert.Equal(t, []string{url}, opened)
}

func TestPlayOpenFailure(t *testing.T) {
	b := New("http://local/", func(context.Context, string) error { return errors.New("no browser") })

	stopped := false
	_, err := b.Play(context.Background(), "x", func() { stopped = true })
	assert.Error(t, err)
	assert.True(t, stopped)
}
