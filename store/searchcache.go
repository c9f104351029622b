package store

import (
	"database/sql"
	"strings"
	"time"

	"bitebook/nutrition"
)

// searchCacheTTL is how long cached web search results stay fresh.
const searchCacheTTL = 7 * 24 * time.Hour

// normalizeQuery folds case and trims whitespace so "Banana" and " banana "
// share one cache row.
func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// CachedSearch returns the cached results for query, or ok=false on a miss.
// Expired rows never hit; they stay inert until purged.
func (s *Store) CachedSearch(query string) (results string, ok bool, err error) {
	err = s.db.QueryRow(
		`SELECT results FROM search_cache WHERE query = ? AND expires_at > ?`,
		normalizeQuery(query), nutrition.FormatSQLite(s.now()),
	).Scan(&results)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return results, true, nil
}

// StoreSearch caches results for query with the standard TTL. Upserts, so a
// refreshed search replaces the stale row. Two concurrent identical searches
// may both write; last writer wins with equal content, which is benign.
func (s *Store) StoreSearch(query, results string) error {
	now := s.now()
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO search_cache (query, results, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		normalizeQuery(query), results,
		nutrition.FormatSQLite(now), nutrition.FormatSQLite(now.Add(searchCacheTTL)),
	)
	return err
}

// PurgeExpiredSearches removes rows past their expiry.
func (s *Store) PurgeExpiredSearches() error {
	_, err := s.db.Exec(
		`DELETE FROM search_cache WHERE expires_at <= ?`, nutrition.FormatSQLite(s.now()),
	)
	return err
}

// ClearSearchCache drops all cached searches.
func (s *Store) ClearSearchCache() error {
	_, err := s.db.Exec(`DELETE FROM search_cache`)
	return err
}
