// Package vaultmerge implements Last-Write-Wins reconciliation between a
// local and a server copy of a vault's syncable tables. It never touches a
// database directly: it compares JSON records and emits the ordered SQL
// statements a caller should execute against its own local store.
package vaultmerge

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/lanedirt/aliasvault-core/pkg/protocol"
)

// TableConfig describes how one table's records are matched across the
// local and server sides during a merge.
type TableConfig struct {
	Name string
	// CompositeKeyColumns, when non-empty, names the columns concatenated
	// with ":" to form the match key instead of the "Id" column.
	CompositeKeyColumns []string
}

func (c TableConfig) usesCompositeKey() bool {
	return len(c.CompositeKeyColumns) > 0
}

// SyncableTables lists every table that participates in vault merge, in
// the fixed processing order clients rely on for deterministic output.
// FieldValues has no stable Id shared across devices before first sync,
// so it matches on (ItemId, FieldKey) instead.
var SyncableTables = []TableConfig{
	{Name: "Items"},
	{Name: "FieldValues", CompositeKeyColumns: []string{"ItemId", "FieldKey"}},
	{Name: "Folders"},
	{Name: "Tags"},
	{Name: "ItemTags"},
	{Name: "Attachments"},
	{Name: "TotpCodes"},
	{Name: "Passkeys"},
	{Name: "FieldDefinitions"},
	{Name: "FieldHistories"},
	{Name: "Logos"},
}

// SyncableTableNames returns the names of SyncableTables, in order, for
// clients that need to know which tables to read before calling Merge.
func SyncableTableNames() []string {
	names := make([]string, len(SyncableTables))
	for i, t := range SyncableTables {
		names[i] = t.Name
	}
	return names
}

// TableData is one table's full record set from one side of the merge.
type TableData struct {
	Name    string            `json:"name"`
	Records []protocol.Record `json:"records"`
}

// MergeInput is the local and server snapshots to reconcile.
type MergeInput struct {
	LocalTables  []TableData `json:"local_tables"`
	ServerTables []TableData `json:"server_tables"`
}

// SqlStatement is one parameterized SQL statement a caller should run
// against its local database, in the order it appears in MergeOutput.
type SqlStatement struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

// MergeStats summarizes what the merge decided, per spec.md's testable
// properties: every record is attributable to exactly one bucket.
type MergeStats struct {
	TablesProcessed       uint32 `json:"tables_processed"`
	RecordsFromLocal      uint32 `json:"records_from_local"`
	RecordsFromServer     uint32 `json:"records_from_server"`
	RecordsCreatedLocally uint32 `json:"records_created_locally"`
	Conflicts             uint32 `json:"conflicts"`
	RecordsInserted       uint32 `json:"records_inserted"`
}

// MergeOutput is the result of Merge: the SQL to apply, in order, plus
// summary statistics.
type MergeOutput struct {
	Success    bool           `json:"success"`
	Statements []SqlStatement `json:"statements"`
	Stats      MergeStats     `json:"stats"`
}

// Merge reconciles local and server table data table-by-table, in
// SyncableTables order, using Last-Write-Wins on each record's UpdatedAt.
func Merge(input MergeInput) MergeOutput {
	var stats MergeStats
	statements := make([]SqlStatement, 0)

	localByName := indexTables(input.LocalTables)
	serverByName := indexTables(input.ServerTables)

	for _, cfg := range SyncableTables {
		local, hasLocal := localByName[cfg.Name]
		server, hasServer := serverByName[cfg.Name]

		switch {
		case hasLocal && hasServer:
			var tableStatements []SqlStatement
			if cfg.usesCompositeKey() {
				tableStatements = mergeByCompositeKey(cfg.Name, local.Records, server.Records, cfg.CompositeKeyColumns, &stats)
			} else {
				tableStatements = mergeByID(cfg.Name, local.Records, server.Records, &stats)
			}
			statements = append(statements, tableStatements...)
			stats.TablesProcessed++
		case hasLocal && !hasServer:
			stats.RecordsCreatedLocally += uint32(len(local.Records))
		case !hasLocal && hasServer:
			for _, record := range server.Records {
				if stmt, ok := generateInsertSQL(cfg.Name, record); ok {
					statements = append(statements, stmt)
					stats.RecordsInserted++
				}
			}
			stats.TablesProcessed++
		}
	}

	return MergeOutput{
		Success:    true,
		Statements: statements,
		Stats:      stats,
	}
}

// MergeJSON is the JSON-in/JSON-out entry point transport adapters call.
func MergeJSON(inputJSON string) (string, error) {
	var input MergeInput
	if err := json.Unmarshal([]byte(inputJSON), &input); err != nil {
		return "", protocol.NewJSONError(err)
	}

	output := Merge(input)

	outputJSON, err := json.Marshal(output)
	if err != nil {
		return "", protocol.NewJSONError(err)
	}
	return string(outputJSON), nil
}

func indexTables(tables []TableData) map[string]TableData {
	byName := make(map[string]TableData, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}
	return byName
}

// mergeByID reconciles records matched on their "Id" column.
func mergeByID(tableName string, localRecords, serverRecords []protocol.Record, stats *MergeStats) []SqlStatement {
	statements := make([]SqlStatement, 0)

	serverByID := make(map[string]protocol.Record, len(serverRecords))
	for _, record := range serverRecords {
		if id, ok := recordID(record); ok {
			serverByID[id] = record
		}
	}

	for _, localRecord := range localRecords {
		localID, ok := recordID(localRecord)
		if !ok {
			continue
		}

		serverRecord, matched := serverByID[localID]
		if !matched {
			stats.RecordsCreatedLocally++
			continue
		}

		if serverWins(serverRecord, localRecord) {
			stats.Conflicts++
			stats.RecordsFromServer++
			if stmt, ok := generateUpdateSQL(tableName, serverRecord, localID); ok {
				statements = append(statements, stmt)
			}
		} else {
			stats.RecordsFromLocal++
		}
		delete(serverByID, localID)
	}

	for _, serverRecord := range serverByID {
		stats.RecordsInserted++
		if stmt, ok := generateInsertSQL(tableName, serverRecord); ok {
			statements = append(statements, stmt)
		}
	}

	return statements
}

// mergeByCompositeKey reconciles records matched on a concatenation of
// keyColumns rather than "Id" — the local Id is always preserved in the
// emitted UPDATE, since the server's own row Id may differ pre-sync.
func mergeByCompositeKey(tableName string, localRecords, serverRecords []protocol.Record, keyColumns []string, stats *MergeStats) []SqlStatement {
	statements := make([]SqlStatement, 0)

	serverByKey := make(map[string]protocol.Record, len(serverRecords))
	for _, record := range serverRecords {
		key := compositeKey(record, keyColumns)
		existing, ok := serverByKey[key]
		if !ok || updatedAtOf(record).After(updatedAtOf(existing)) {
			serverByKey[key] = record
		}
	}

	for _, localRecord := range localRecords {
		key := compositeKey(localRecord, keyColumns)

		localID, ok := recordID(localRecord)
		if !ok {
			continue
		}

		serverRecord, matched := serverByKey[key]
		if !matched {
			stats.RecordsCreatedLocally++
			continue
		}

		if serverWins(serverRecord, localRecord) {
			stats.Conflicts++
			stats.RecordsFromServer++
			if stmt, ok := generateUpdateSQL(tableName, serverRecord, localID); ok {
				statements = append(statements, stmt)
			}
		} else {
			stats.RecordsFromLocal++
		}
		delete(serverByKey, key)
	}

	for _, serverRecord := range serverByKey {
		stats.RecordsInserted++
		if stmt, ok := generateInsertSQL(tableName, serverRecord); ok {
			statements = append(statements, stmt)
		}
	}

	return statements
}

// serverWins reports whether the server's copy of a record is strictly
// newer than the local copy. A missing or unparseable UpdatedAt is
// treated as older than any parseable timestamp: local missing means
// server wins, server missing means local wins. Ties favor local — a
// server timestamp must beat local's, not merely equal it.
func serverWins(serverRecord, localRecord protocol.Record) bool {
	serverTS, serverOK := parseUpdatedAt(serverRecord)
	localTS, localOK := parseUpdatedAt(localRecord)

	switch {
	case !serverOK:
		return false
	case !localOK:
		return true
	default:
		return serverTS.After(localTS)
	}
}

func updatedAtOf(record protocol.Record) time.Time {
	ts, ok := parseUpdatedAt(record)
	if !ok {
		return time.Time{}
	}
	return ts
}

// sqliteTimestampLayout matches the "YYYY-MM-DD HH:MM:SS.ffffff" format
// SQLite's CURRENT_TIMESTAMP-style columns produce, as an alternative to
// RFC3339 for records written directly to a local database.
const sqliteTimestampLayout = "2006-01-02 15:04:05.999999999"

func parseUpdatedAt(record protocol.Record) (time.Time, bool) {
	raw, ok := record.StringField("UpdatedAt")
	if !ok {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts.UTC(), true
	}
	if ts, err := time.Parse(sqliteTimestampLayout, raw); err == nil {
		return ts.UTC(), true
	}
	return time.Time{}, false
}

func recordID(record protocol.Record) (string, bool) {
	return record.StringField("Id")
}

// compositeKey concatenates keyColumns with ":", matching the original
// table format exactly so composite keys built on either side compare equal.
func compositeKey(record protocol.Record, keyColumns []string) string {
	key := ""
	for i, col := range keyColumns {
		if i > 0 {
			key += ":"
		}
		if v, ok := record.StringField(col); ok {
			key += v
		}
	}
	return key
}

// generateInsertSQL builds an "INSERT OR REPLACE" statement covering every
// column in record, in sorted order for deterministic output.
func generateInsertSQL(tableName string, record protocol.Record) (SqlStatement, bool) {
	if len(record) == 0 {
		return SqlStatement{}, false
	}

	columns := sortedColumns(record)

	columnList := ""
	placeholders := ""
	params := make([]any, 0, len(columns))
	for i, col := range columns {
		if i > 0 {
			columnList += ", "
			placeholders += ", "
		}
		columnList += col
		placeholders += "?"
		params = append(params, record[col])
	}

	sql := "INSERT OR REPLACE INTO " + tableName + " (" + columnList + ") VALUES (" + placeholders + ")"
	return SqlStatement{SQL: sql, Params: params}, true
}

// generateUpdateSQL builds an "UPDATE ... WHERE Id = ?" statement for
// every column except Id, which is instead bound as the WHERE parameter
// using the caller-supplied id — this is what preserves the local row's
// Id under composite-key matching.
func generateUpdateSQL(tableName string, record protocol.Record, id string) (SqlStatement, bool) {
	if len(record) == 0 {
		return SqlStatement{}, false
	}

	columns := make([]string, 0, len(record))
	for col := range record {
		if col != "Id" {
			columns = append(columns, col)
		}
	}
	sort.Strings(columns)

	if len(columns) == 0 {
		return SqlStatement{}, false
	}

	setClause := ""
	params := make([]any, 0, len(columns)+1)
	for i, col := range columns {
		if i > 0 {
			setClause += ", "
		}
		setClause += col + " = ?"
		params = append(params, record[col])
	}
	params = append(params, id)

	sql := "UPDATE " + tableName + " SET " + setClause + " WHERE Id = ?"
	return SqlStatement{SQL: sql, Params: params}, true
}

func sortedColumns(record protocol.Record) []string {
	columns := make([]string, 0, len(record))
	for col := range record {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}
