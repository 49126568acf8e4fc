package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_SortedAndEmbedded(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_init.sql", names[0])

	script, err := migrationsFS.ReadFile("migrations/" + names[0])
	require.NoError(t, err)
	assert.Contains(t, string(script), "stock_movements")
	assert.Contains(t, string(script), "ON DELETE RESTRICT")
}
