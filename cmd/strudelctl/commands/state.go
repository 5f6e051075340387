// state.go
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

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	stateKeyToken = "token"
	stateKeyEmail = "email"
)

// State is the persisted CLI session, a YAML file managed by viper
type State struct {
	v    *viper.Viper
	path string
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "strudel-share", "state.yaml")
}

// LoadState reads the state file. A missing file is an empty state.
func LoadState(path string) (*State, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read state: %w", err)
		}
	}
	return &State{v: v, path: path}, nil
}

// Token returns the stored access token, or ""
func (s *State) Token() string {
	return s.v.GetString(stateKeyToken)
}

// Email returns the email of the stored session
func (s *State) Email() string {
	return s.v.GetString(stateKeyEmail)
}

// Save stores the session
func (s *State) Save(token, email string) error {
	s.v.Set(stateKeyToken, token)
	s.v.Set(stateKeyEmail, email)
	return s.write()
}

// Clear forgets the session
func (s *State) Clear() error {
	return s.Save("", "")
}

func (s *State) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("ensure state dir: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Chmod(s.path, 0o600)
}
