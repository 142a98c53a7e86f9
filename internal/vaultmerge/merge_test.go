package vaultmerge_test

import (
	"strings"
	"testing"

	"github.com/lanedirt/aliasvault-core/internal/vaultmerge"
	"github.com/lanedirt/aliasvault-core/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecord(id, updatedAt string) protocol.Record {
	return protocol.Record{
		"Id":        id,
		"UpdatedAt": updatedAt,
		"Name":      "Record " + id,
	}
}

func TestMerge_LocalWinsWhenNewer(t *testing.T) {
	input := vaultmerge.MergeInput{
		LocalTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{makeRecord("1", "2024-01-02T00:00:00Z")}},
		},
		ServerTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{makeRecord("1", "2024-01-01T00:00:00Z")}},
		},
	}

	out := vaultmerge.Merge(input)

	assert.Equal(t, uint32(1), out.Stats.RecordsFromLocal)
	assert.Equal(t, uint32(0), out.Stats.RecordsFromServer)
	assert.Empty(t, out.Statements)
}

func TestMerge_ServerWinsWhenNewer(t *testing.T) {
	input := vaultmerge.MergeInput{
		LocalTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{makeRecord("1", "2024-01-01T00:00:00Z")}},
		},
		ServerTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{makeRecord("1", "2024-01-02T00:00:00Z")}},
		},
	}

	out := vaultmerge.Merge(input)

	assert.Equal(t, uint32(1), out.Stats.RecordsFromServer)
	assert.Equal(t, uint32(1), out.Stats.Conflicts)
	require.Len(t, out.Statements, 1)
	assert.True(t, strings.HasPrefix(out.Statements[0].SQL, "UPDATE Items SET"))
}

func TestMerge_EqualTimestampFavorsLocal(t *testing.T) {
	input := vaultmerge.MergeInput{
		LocalTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{makeRecord("1", "2024-01-01T00:00:00Z")}},
		},
		ServerTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{makeRecord("1", "2024-01-01T00:00:00Z")}},
		},
	}

	out := vaultmerge.Merge(input)

	assert.Equal(t, uint32(1), out.Stats.RecordsFromLocal)
	assert.Equal(t, uint32(0), out.Stats.Conflicts)
	assert.Empty(t, out.Statements)
}

func TestMerge_MissingLocalTimestampServerWins(t *testing.T) {
	input := vaultmerge.MergeInput{
		LocalTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{{"Id": "1", "Name": "Record 1"}}},
		},
		ServerTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{makeRecord("1", "2024-01-01T00:00:00Z")}},
		},
	}

	out := vaultmerge.Merge(input)

	assert.Equal(t, uint32(1), out.Stats.RecordsFromServer)
	assert.Equal(t, uint32(1), out.Stats.Conflicts)
	require.Len(t, out.Statements, 1)
	assert.True(t, strings.HasPrefix(out.Statements[0].SQL, "UPDATE Items SET"))
}

func TestMerge_MissingServerTimestampLocalWins(t *testing.T) {
	input := vaultmerge.MergeInput{
		LocalTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{makeRecord("1", "2024-01-01T00:00:00Z")}},
		},
		ServerTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{{"Id": "1", "Name": "Record 1"}}},
		},
	}

	out := vaultmerge.Merge(input)

	assert.Equal(t, uint32(1), out.Stats.RecordsFromLocal)
	assert.Equal(t, uint32(0), out.Stats.Conflicts)
	assert.Empty(t, out.Statements)
}

func TestMerge_ServerOnlyRecordInserted(t *testing.T) {
	input := vaultmerge.MergeInput{
		LocalTables: []vaultmerge.TableData{
			{Name: "Items", Records: nil},
		},
		ServerTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{makeRecord("1", "2024-01-01T00:00:00Z")}},
		},
	}

	out := vaultmerge.Merge(input)

	assert.Equal(t, uint32(1), out.Stats.RecordsInserted)
	require.Len(t, out.Statements, 1)
	assert.True(t, strings.HasPrefix(out.Statements[0].SQL, "INSERT OR REPLACE INTO Items"))
}

func TestMerge_LocalOnlyTableKeptUntouched(t *testing.T) {
	input := vaultmerge.MergeInput{
		LocalTables: []vaultmerge.TableData{
			{Name: "Items", Records: []protocol.Record{makeRecord("1", "2024-01-01T00:00:00Z")}},
		},
		ServerTables: nil,
	}

	out := vaultmerge.Merge(input)

	assert.Equal(t, uint32(1), out.Stats.RecordsCreatedLocally)
	assert.Empty(t, out.Statements)
	assert.Equal(t, uint32(0), out.Stats.TablesProcessed)
}

func TestMerge_CompositeKeyPreservesLocalId(t *testing.T) {
	local := protocol.Record{
		"Id": "local-id", "ItemId": "item-1", "FieldKey": "username",
		"Value": "alice", "UpdatedAt": "2024-01-01T00:00:00Z",
	}
	server := protocol.Record{
		"Id": "server-id", "ItemId": "item-1", "FieldKey": "username",
		"Value": "alice2", "UpdatedAt": "2024-01-02T00:00:00Z",
	}

	input := vaultmerge.MergeInput{
		LocalTables:  []vaultmerge.TableData{{Name: "FieldValues", Records: []protocol.Record{local}}},
		ServerTables: []vaultmerge.TableData{{Name: "FieldValues", Records: []protocol.Record{server}}},
	}

	out := vaultmerge.Merge(input)

	require.Len(t, out.Statements, 1)
	stmt := out.Statements[0]
	assert.True(t, strings.HasPrefix(stmt.SQL, "UPDATE FieldValues SET"))
	assert.Equal(t, "local-id", stmt.Params[len(stmt.Params)-1], "UPDATE must target the local row's Id, not the server's")
}

func TestMerge_OrdersTablesPerSyncableTables(t *testing.T) {
	names := vaultmerge.SyncableTableNames()
	assert.Equal(t, []string{
		"Items", "FieldValues", "Folders", "Tags", "ItemTags",
		"Attachments", "TotpCodes", "Passkeys", "FieldDefinitions",
		"FieldHistories", "Logos",
	}, names)
}

func TestMergeJSON_RoundTrip(t *testing.T) {
	inputJSON := `{
		"local_tables": [{"name": "Items", "records": [{"Id":"1","UpdatedAt":"2024-01-01T00:00:00Z","Name":"Record 1"}]}],
		"server_tables": [{"name": "Items", "records": [{"Id":"1","UpdatedAt":"2024-01-02T00:00:00Z","Name":"Record 1"}]}]
	}`

	outputJSON, err := vaultmerge.MergeJSON(inputJSON)
	require.NoError(t, err)
	assert.Contains(t, outputJSON, `"success":true`)
	assert.Contains(t, outputJSON, "UPDATE Items SET")
}

func TestMergeJSON_InvalidInputReturnsJSONError(t *testing.T) {
	_, err := vaultmerge.MergeJSON("not json")
	require.Error(t, err)

	var vaultErr *protocol.VaultError
	require.ErrorAs(t, err, &vaultErr)
	assert.Equal(t, protocol.ErrCodeJSON, vaultErr.Code)
}

func TestGenerateInsertSQL_SortsColumns(t *testing.T) {
	record := makeRecord("test-id", "2024-01-01T00:00:00Z")

	input := vaultmerge.MergeInput{
		ServerTables: []vaultmerge.TableData{{Name: "Items", Records: []protocol.Record{record}}},
	}
	out := vaultmerge.Merge(input)

	require.Len(t, out.Statements, 1)
	stmt := out.Statements[0]
	assert.Contains(t, stmt.SQL, "INSERT OR REPLACE INTO Items")
	assert.Contains(t, stmt.SQL, "Id")
	assert.Contains(t, stmt.SQL, "Name")
	assert.Contains(t, stmt.SQL, "UpdatedAt")
	assert.Equal(t, "INSERT OR REPLACE INTO Items (Id, Name, UpdatedAt) VALUES (?, ?, ?)", stmt.SQL)
	assert.Len(t, stmt.Params, 3)
}

func TestGenerateUpdateSQL_ExcludesIdFromSetClause(t *testing.T) {
	local := makeRecord("test-id", "2024-01-01T00:00:00Z")
	server := makeRecord("test-id", "2024-01-02T00:00:00Z")

	input := vaultmerge.MergeInput{
		LocalTables:  []vaultmerge.TableData{{Name: "Items", Records: []protocol.Record{local}}},
		ServerTables: []vaultmerge.TableData{{Name: "Items", Records: []protocol.Record{server}}},
	}
	out := vaultmerge.Merge(input)

	require.Len(t, out.Statements, 1)
	stmt := out.Statements[0]
	assert.True(t, strings.HasPrefix(stmt.SQL, "UPDATE Items SET"))
	assert.Contains(t, stmt.SQL, "WHERE Id = ?")
	assert.NotContains(t, stmt.SQL, "Id = ?,")
	assert.Len(t, stmt.Params, 3)
	assert.Equal(t, "test-id", stmt.Params[2])
}
