// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package framedir finds recent captures in a capture tool's output
// directory.
package framedir

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultLimit is the number of captures Recent returns when called
// with a limit <= 0.
const DefaultLimit = 50

// DefaultDir returns the directory CapFrameX writes captures to, or
// "" if it cannot be determined.
func DefaultDir() string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return ""
	}
	return filepath.Join(appData, "CapFrameX", "Captures")
}

// Recent returns the paths of up to limit JSON captures found anywhere
// under root in fsys, newest first.
//
// Capture tools put the capture time in the file name, so "newest"
// means greatest path in lexical order. A missing root is not an
// error; it yields no paths. Unreadable subdirectories are skipped.
func Recent(fsys fs.FS, root string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var paths []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			return nil
		}
		if !d.IsDir() && strings.EqualFold(path.Ext(p), ".json") {
			paths = append(paths, p)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	if len(paths) > limit {
		paths = paths[:limit]
	}
	return paths, nil
}

// RecentDir is like Recent, but searches the operating system
// directory dir and returns operating system paths.
func RecentDir(dir string, limit int) ([]string, error) {
	paths, err := Recent(os.DirFS(dir), ".", limit)
	if err != nil {
		return nil, err
	}
	for i, p := range paths {
		paths[i] = filepath.Join(dir, filepath.FromSlash(p))
	}
	return paths, nil
}
