package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPair(t *testing.T) {
	low, high := canonicalPair("user-b", "user-a")
	require.Equal(t, "user-a", low)
	require.Equal(t, "user-b", high)

	// Порядок аргументов не влияет на сохраняемую пару.
	low2, high2 := canonicalPair("user-a", "user-b")
	require.Equal(t, low, low2)
	require.Equal(t, high, high2)
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	require.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, isUniqueViolation(errors.New("connection refused")))
	require.False(t, isUniqueViolation(nil))
}
