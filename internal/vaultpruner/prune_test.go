package vaultpruner_test

import (
	"testing"

	"github.com/lanedirt/aliasvault-core/internal/vaultpruner"
	"github.com/lanedirt/aliasvault-core/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const now = "2024-03-01T00:00:00.000Z"

func makeItem(id, deletedAt string, isDeleted bool) protocol.Record {
	r := protocol.Record{
		"Id":        id,
		"UpdatedAt": "2024-01-01T00:00:00Z",
		"IsDeleted": boolToFloat(isDeleted),
	}
	if deletedAt == "" {
		r["DeletedAt"] = nil
	} else {
		r["DeletedAt"] = deletedAt
	}
	return r
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func makeFieldValue(id, itemID string, isDeleted bool) protocol.Record {
	return protocol.Record{
		"Id":        id,
		"ItemId":    itemID,
		"UpdatedAt": "2024-01-01T00:00:00Z",
		"IsDeleted": boolToFloat(isDeleted),
	}
}

func TestPrune_ExpiredItemsCascade(t *testing.T) {
	// 2023-12-31 is 61 days before 2024-03-01, well past the 30-day retention cutoff.
	oldDate := "2023-12-31T00:00:00.000Z"

	input := vaultpruner.PruneInput{
		Tables: []vaultpruner.TableData{
			{Name: "Items", Records: []protocol.Record{makeItem("item-1", oldDate, false)}},
			{Name: "FieldValues", Records: []protocol.Record{makeFieldValue("fv-1", "item-1", false)}},
		},
		CurrentTime:   now,
		RetentionDays: 30,
	}

	out, err := vaultpruner.Prune(input)
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, uint32(1), out.Stats.ItemsPruned)
	assert.Equal(t, uint32(1), out.Stats.FieldValuesPruned)
	assert.GreaterOrEqual(t, len(out.Statements), 2)
}

func TestPrune_RecentItemsSurvive(t *testing.T) {
	recentDate := "2024-02-20T00:00:00.000Z" // 10 days before now, within retention

	input := vaultpruner.PruneInput{
		Tables: []vaultpruner.TableData{
			{Name: "Items", Records: []protocol.Record{makeItem("item-1", recentDate, false)}},
		},
		CurrentTime:   now,
		RetentionDays: 30,
	}

	out, err := vaultpruner.Prune(input)
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, uint32(0), out.Stats.ItemsPruned)
	assert.Empty(t, out.Statements)
}

func TestPrune_ActiveItemsNeverPruned(t *testing.T) {
	input := vaultpruner.PruneInput{
		Tables: []vaultpruner.TableData{
			{Name: "Items", Records: []protocol.Record{makeItem("item-1", "", false)}},
		},
		CurrentTime:   now,
		RetentionDays: 30,
	}

	out, err := vaultpruner.Prune(input)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), out.Stats.ItemsPruned)
	assert.Empty(t, out.Statements)
}

func TestPrune_AlreadyDeletedItemsSkipped(t *testing.T) {
	oldDate := "2023-12-31T00:00:00.000Z"

	input := vaultpruner.PruneInput{
		Tables: []vaultpruner.TableData{
			{Name: "Items", Records: []protocol.Record{makeItem("item-1", oldDate, true)}},
		},
		CurrentTime:   now,
		RetentionDays: 30,
	}

	out, err := vaultpruner.Prune(input)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), out.Stats.ItemsPruned)
	assert.Empty(t, out.Statements)
}

func TestPrune_AlreadyDeletedChildrenNotDoubleCounted(t *testing.T) {
	oldDate := "2023-12-31T00:00:00.000Z"

	input := vaultpruner.PruneInput{
		Tables: []vaultpruner.TableData{
			{Name: "Items", Records: []protocol.Record{makeItem("item-1", oldDate, false)}},
			{Name: "FieldValues", Records: []protocol.Record{makeFieldValue("fv-1", "item-1", true)}},
		},
		CurrentTime:   now,
		RetentionDays: 30,
	}

	out, err := vaultpruner.Prune(input)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), out.Stats.ItemsPruned)
	assert.Equal(t, uint32(0), out.Stats.FieldValuesPruned, "already-deleted field values must not be recounted")
}

func TestPrune_MissingItemsTableIsANoOp(t *testing.T) {
	input := vaultpruner.PruneInput{
		Tables:        []vaultpruner.TableData{{Name: "FieldValues", Records: nil}},
		CurrentTime:   now,
		RetentionDays: 30,
	}

	out, err := vaultpruner.Prune(input)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Empty(t, out.Statements)
}

func TestPrune_DefaultRetentionAppliesWhenZero(t *testing.T) {
	// 29 days ago survives the 30-day default; confirms the zero-value
	// retention_days falls back to DefaultRetentionDays rather than 0.
	recentDate := "2024-02-01T00:00:00.000Z"

	input := vaultpruner.PruneInput{
		Tables: []vaultpruner.TableData{
			{Name: "Items", Records: []protocol.Record{makeItem("item-1", recentDate, false)}},
		},
		CurrentTime: now,
	}

	out, err := vaultpruner.Prune(input)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), out.Stats.ItemsPruned)
}

func TestPrune_InvalidCurrentTimeReturnsError(t *testing.T) {
	input := vaultpruner.PruneInput{
		Tables:      []vaultpruner.TableData{{Name: "Items", Records: nil}},
		CurrentTime: "not-a-timestamp",
	}

	_, err := vaultpruner.Prune(input)
	assert.Error(t, err)
}

func TestPruneJSON_RoundTrip(t *testing.T) {
	inputJSON := `{
		"tables": [{"name": "Items", "records": [{"Id":"item-1","UpdatedAt":"2024-01-01T00:00:00Z","IsDeleted":0,"DeletedAt":"2023-12-31T00:00:00.000Z"}]}],
		"current_time": "2024-03-01T00:00:00.000Z",
		"retention_days": 30
	}`

	outputJSON, err := vaultpruner.PruneJSON(inputJSON)
	require.NoError(t, err)
	assert.Contains(t, outputJSON, `"items_pruned":1`)
}

func TestPruneJSON_InvalidInputReturnsJSONError(t *testing.T) {
	_, err := vaultpruner.PruneJSON("not json")
	require.Error(t, err)

	var vaultErr *protocol.VaultError
	require.ErrorAs(t, err, &vaultErr)
	assert.Equal(t, protocol.ErrCodeJSON, vaultErr.Code)
}
