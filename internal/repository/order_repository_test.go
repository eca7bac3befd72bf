package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderScanHandlesDeletedTable(t *testing.T) {
	// Deleting a table sets orders.table_id to NULL, so the scan destination
	// must accept NULL without poisoning the row loop.
	typeMap := pgtype.NewMap()

	var tableID pgtype.Text
	require.NoError(t, typeMap.Scan(pgtype.TextOID, pgtype.TextFormatCode, nil, &tableID))
	assert.False(t, tableID.Valid)
	assert.Empty(t, tableID.String)

	require.NoError(t, typeMap.Scan(pgtype.TextOID, pgtype.TextFormatCode, []byte("table-1"), &tableID))
	assert.True(t, tableID.Valid)
	assert.Equal(t, "table-1", tableID.String)
}

func TestNullableID(t *testing.T) {
	assert.Nil(t, nullableID(""))
	assert.Equal(t, "table-1", nullableID("table-1"))
}
