// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package backup creates timestamped pre-mutation copies of target files.
package backup

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// timestampLayout is second-resolution, zero-padded YYYYMMDDHHMMSS.
const timestampLayout = "20060102150405"

// 💾 Manager computes backup paths and copies target bytes into them.
// Backups are never overwritten nor cleaned up; ownership ends at creation.
type Manager struct {
	now func() time.Time
}

// 🏭 New creates a new backup manager using the wall clock.
func New() *Manager {
	return &Manager{now: time.Now}
}

// NewWithClock creates a manager with a fixed clock. Used in tests.
func NewWithClock(now func() time.Time) *Manager {
	return &Manager{now: now}
}

// 📍 Path returns the sibling backup path for target at the current instant,
// <target>.bak.<timestamp>.
func (m *Manager) Path(target string) string {
	return target + ".bak." + m.now().Format(timestampLayout)
}

// 📋 Create copies the target's current bytes to a timestamped sibling path
// and returns that path. Any failure aborts the whole run; a partially
// written backup is removed.
func (m *Manager) Create(ctx context.Context, target string) (string, error) {
	backupPath := m.Path(target)

	if err := copyFile(target, backupPath); err != nil {
		os.Remove(backupPath)
		return "", errors.Errorf("creating backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("target", target).
		Str("backup", backupPath).
		Msg("backup created")

	return backupPath, nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("stating source file: %w", err)
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return nil
}
