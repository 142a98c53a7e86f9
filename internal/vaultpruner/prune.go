// Package vaultpruner permanently removes vault items that have sat in
// trash past their retention window, cascading the tombstone to every
// table that references the item. Like vaultmerge, it never touches a
// database: it inspects JSON records and returns the SQL a caller runs.
package vaultpruner

import (
	"encoding/json"
	"time"

	"github.com/lanedirt/aliasvault-core/internal/vaultmerge"
	"github.com/lanedirt/aliasvault-core/pkg/protocol"
)

// DefaultRetentionDays is how long a trashed item survives before it is
// eligible for permanent deletion, absent an explicit override.
const DefaultRetentionDays = 30

// cascadeTables lists the child tables pruned alongside an expired Item,
// each keyed by the foreign-key column that references Items.Id.
var cascadeTables = []struct {
	table      string
	foreignKey string
}{
	{"FieldValues", "ItemId"},
	{"Attachments", "ItemId"},
	{"TotpCodes", "ItemId"},
	{"Passkeys", "ItemId"},
}

// TableData is one table's full record set.
type TableData struct {
	Name    string            `json:"name"`
	Records []protocol.Record `json:"records"`
}

// PruneInput names the tables to scan, the caller's current time (RFC3339,
// e.g. "2024-01-15T10:30:00.000Z"), and the retention window in days.
type PruneInput struct {
	Tables        []TableData `json:"tables"`
	CurrentTime   string      `json:"current_time"`
	RetentionDays uint32      `json:"retention_days"`
}

// PruneStats counts what was permanently deleted, per cascaded table.
type PruneStats struct {
	ItemsPruned       uint32 `json:"items_pruned"`
	FieldValuesPruned uint32 `json:"field_values_pruned"`
	AttachmentsPruned uint32 `json:"attachments_pruned"`
	TotpCodesPruned   uint32 `json:"totp_codes_pruned"`
	PasskeysPruned    uint32 `json:"passkeys_pruned"`
}

// PruneOutput is the result of Prune: the SQL to apply, in order, plus
// summary statistics.
type PruneOutput struct {
	Success    bool                      `json:"success"`
	Statements []vaultmerge.SqlStatement `json:"statements"`
	Stats      PruneStats                `json:"stats"`
}

// Prune scans the Items table for records past the trash cutoff
// (current_time - retention_days) and returns SQL to permanently delete
// them and their non-deleted children.
func Prune(input PruneInput) (PruneOutput, error) {
	now, err := parseDateTime(input.CurrentTime)
	if err != nil {
		return PruneOutput{}, protocol.NewGeneralError("invalid current_time format: %s", input.CurrentTime)
	}

	retentionDays := input.RetentionDays
	if retentionDays == 0 {
		retentionDays = DefaultRetentionDays
	}
	cutoff := now.AddDate(0, 0, -int(retentionDays))

	itemsTable, ok := findTable(input.Tables, "Items")
	if !ok {
		return PruneOutput{Success: true, Statements: []vaultmerge.SqlStatement{}}, nil
	}

	expiredItemIDs := expiredItems(itemsTable.Records, cutoff)
	if len(expiredItemIDs) == 0 {
		return PruneOutput{Success: true, Statements: []vaultmerge.SqlStatement{}}, nil
	}

	nowStr := now.UTC().Format("2006-01-02T15:04:05.000Z")
	statements := make([]vaultmerge.SqlStatement, 0, len(expiredItemIDs))
	var stats PruneStats

	for _, itemID := range expiredItemIDs {
		statements = append(statements, vaultmerge.SqlStatement{
			SQL:    "UPDATE Items SET IsDeleted = 1, UpdatedAt = ? WHERE Id = ?",
			Params: []any{nowStr, itemID},
		})
		stats.ItemsPruned++

		for _, cascade := range cascadeTables {
			table, ok := findTable(input.Tables, cascade.table)
			if !ok {
				continue
			}
			related := countRelated(table.Records, cascade.foreignKey, itemID)
			if related == 0 {
				continue
			}

			statements = append(statements, vaultmerge.SqlStatement{
				SQL:    "UPDATE " + cascade.table + " SET IsDeleted = 1, UpdatedAt = ? WHERE " + cascade.foreignKey + " = ? AND IsDeleted = 0",
				Params: []any{nowStr, itemID},
			})

			switch cascade.table {
			case "FieldValues":
				stats.FieldValuesPruned += related
			case "Attachments":
				stats.AttachmentsPruned += related
			case "TotpCodes":
				stats.TotpCodesPruned += related
			case "Passkeys":
				stats.PasskeysPruned += related
			}
		}
	}

	return PruneOutput{Success: true, Statements: statements, Stats: stats}, nil
}

// PruneJSON is the JSON-in/JSON-out entry point transport adapters call.
func PruneJSON(inputJSON string) (string, error) {
	var input PruneInput
	if err := json.Unmarshal([]byte(inputJSON), &input); err != nil {
		return "", protocol.NewJSONError(err)
	}

	output, err := Prune(input)
	if err != nil {
		return "", err
	}

	outputJSON, err := json.Marshal(output)
	if err != nil {
		return "", protocol.NewJSONError(err)
	}
	return string(outputJSON), nil
}

func findTable(tables []TableData, name string) (TableData, bool) {
	for _, t := range tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableData{}, false
}

// expiredItems returns the Id of every Item that is trashed (DeletedAt
// set, not null), not already permanently deleted, and whose DeletedAt
// is strictly before cutoff.
func expiredItems(items []protocol.Record, cutoff time.Time) []string {
	var ids []string
	for _, item := range items {
		if deleted, ok := item.BoolField("IsDeleted"); ok && deleted {
			continue
		}

		deletedAtRaw, ok := item.StringField("DeletedAt")
		if !ok {
			continue
		}

		deletedAt, err := parseDateTime(deletedAtRaw)
		if err != nil {
			continue
		}

		if deletedAt.Before(cutoff) {
			if id, ok := item.StringField("Id"); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// countRelated counts records whose foreignKey column matches value and
// that are not already marked deleted.
func countRelated(records []protocol.Record, foreignKey, value string) uint32 {
	var count uint32
	for _, record := range records {
		fk, ok := record.StringField(foreignKey)
		if !ok || fk != value {
			continue
		}
		if deleted, ok := record.BoolField("IsDeleted"); ok && deleted {
			continue
		}
		count++
	}
	return count
}

const sqliteTimestampLayout = "2006-01-02 15:04:05.999999999"

// parseDateTime accepts RFC3339 ("2025-12-11T06:50:10.674Z") or SQLite's
// space-separated local format ("2025-12-11 06:50:10.674").
func parseDateTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts.UTC(), nil
	}
	return time.Parse(sqliteTimestampLayout, s)
}
