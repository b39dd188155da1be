package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	chstore "solana-wallet-pnl/internal/storage/clickhouse"
)

// RunClickhouseMigrations applies all embedded SQL files to an existing
// ClickHouse connection. Migrations are expected to be idempotent.
func RunClickhouseMigrations(ctx context.Context, conn *chstore.Conn) error {
	entries, err := fs.ReadDir(ClickhouseFS, "clickhouse")
	if err != nil {
		return fmt.Errorf("read embedded clickhouse migrations: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		data, err := fs.ReadFile(ClickhouseFS, "clickhouse/"+file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		// The splitter cannot handle semicolons inside string literals.
		if err := validateNoSemicolonInStrings(string(data)); err != nil {
			return fmt.Errorf("validate migration %s: %w", file, err)
		}

		// Execute each statement individually (split by semicolon).
		// The ClickHouse driver doesn't support multiquery in Exec.
		for _, stmt := range splitStatements(string(data)) {
			if err := conn.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply migration %s: %w", file, err)
			}
		}
	}

	return nil
}

// splitStatements splits SQL content into individual statements by
// semicolon. It does NOT handle semicolons inside string literals or
// block comments; migrations must use -- style comments and avoid
// semicolons in strings. validateNoSemicolonInStrings enforces the
// string-literal rule at migration time.
func splitStatements(input string) []string {
	var filtered []string
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		filtered = append(filtered, line)
	}
	joined := strings.Join(filtered, "\n")

	var stmts []string
	for _, part := range strings.Split(joined, ";") {
		stmt := strings.TrimSpace(part)
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// validateNoSemicolonInStrings checks that SQL doesn't contain
// semicolons inside single-quoted strings, which would break the
// statement splitter.
func validateNoSemicolonInStrings(sql string) error {
	inString := false
	for i := 0; i < len(sql); i++ {
		ch := sql[i]
		if ch == '\'' {
			// Handle escaped quotes ''
			if i+1 < len(sql) && sql[i+1] == '\'' {
				i++
				continue
			}
			inString = !inString
		} else if ch == ';' && inString {
			return fmt.Errorf("semicolon found inside string literal - this breaks the migration splitter")
		}
	}
	return nil
}
