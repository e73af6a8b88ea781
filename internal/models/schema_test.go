package models

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Columns referenced through the db tags must exist in the migration DDL,
// and every DDL column must be carried by a row struct. A drift in either
// direction fails every query against that table at runtime.
func TestSchemaMatchesRowStructs(t *testing.T) {
	ddl, err := os.ReadFile("../../migrations/000001_init.up.sql")
	require.NoError(t, err)
	schema := string(ddl)

	cases := []struct {
		table string
		row   any
	}{
		{"employees", Employee{}},
		{"meetings", Meeting{}},
		{"meeting_attendees", MeetingAttendee{}},
		{"conversations", Conversation{}},
		{"conversation_participants", ConversationParticipant{}},
		{"messages", Message{}},
		{"message_reactions", MessageReaction{}},
		{"read_receipts", ReadReceipt{}},
		{"mention_notifications", MentionNotification{}},
		{"file_attachments", FileAttachment{}},
	}

	for _, tc := range cases {
		t.Run(tc.table, func(t *testing.T) {
			columns := tableColumns(t, schema, tc.table)
			tags := dbTags(reflect.TypeOf(tc.row))

			for _, tag := range tags {
				require.Contains(t, columns, tag,
					"column %s.%s is referenced by the row struct but missing from the DDL", tc.table, tag)
			}
			for column := range columns {
				require.Contains(t, tags, column,
					"column %s.%s exists in the DDL but no row struct carries it", tc.table, column)
			}
		})
	}
}

// tableColumns extracts the column names of one CREATE TABLE block.
func tableColumns(t *testing.T, schema, table string) map[string]bool {
	t.Helper()

	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(schema, marker)
	require.NotEqual(t, -1, start, "table %s not found in migration", table)
	body := schema[start+len(marker):]
	end := strings.Index(body, ");")
	require.NotEqual(t, -1, end, "unterminated DDL block for table %s", table)

	columns := make(map[string]bool)
	for _, line := range strings.Split(body[:end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name := strings.TrimSuffix(strings.Fields(line)[0], ",")
		// Table-level constraints start with an uppercase keyword.
		if name != strings.ToLower(name) {
			continue
		}
		columns[name] = true
	}
	return columns
}

// dbTags collects db struct tags, descending into embedded structs.
func dbTags(rt reflect.Type) []string {
	var tags []string
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			tags = append(tags, dbTags(field.Type)...)
			continue
		}
		if tag, ok := field.Tag.Lookup("db"); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}
