// Package db embeds the dbmate migrations so adapters and tests can apply
// them without the dbmate binary.
package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	upMarker   = "-- migrate:up"
	downMarker = "-- migrate:down"
)

// Execer runs one SQL script.
type Execer func(ctx context.Context, script string) error

// Up applies the up section of every migration in filename order. Migrations
// are written to be idempotent.
func Up(ctx context.Context, exec Execer) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		raw, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		up, err := upSection(string(raw))
		if err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		if err := exec(ctx, up); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

func upSection(script string) (string, error) {
	start := strings.Index(script, upMarker)
	if start < 0 {
		return "", fmt.Errorf("missing %q", upMarker)
	}
	body := script[start+len(upMarker):]
	if end := strings.Index(body, downMarker); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body), nil
}
