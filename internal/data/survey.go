package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"transformer-load/internal/model"
)

// maxConcurrentLoads bounds open files while reading a survey directory.
const maxConcurrentLoads = 8

func LoadSurveyJSON(path string) (*model.Survey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s model.Survey
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse survey %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &s, nil
}

// ExpandPaths turns files and directories into a sorted list of .json files.
// Directories are scanned one level deep.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			out = append(out, filepath.Join(p, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// LoadSurveys reads every survey under paths concurrently. Results keep the
// order of ExpandPaths; the first failure cancels the remaining reads.
func LoadSurveys(ctx context.Context, paths []string) ([]model.Survey, error) {
	files, err := ExpandPaths(paths)
	if err != nil {
		return nil, err
	}

	out := make([]model.Survey, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := LoadSurveyJSON(f)
			if err != nil {
				return err
			}
			out[i] = *s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
