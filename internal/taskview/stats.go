package taskview

import (
	"sort"
	"strings"
	"time"

	"taskboard/internal/domain"
)

// UserRow is one user's line in the statistics table.
type UserRow struct {
	UserID     int64      `json:"user_id"`
	Name       string     `json:"name"`
	Completed  int        `json:"completed"`
	Incomplete int        `json:"incomplete"`
	Important  int        `json:"important"`
	Changes    int        `json:"changes"`
	Inactive   int        `json:"inactive"`
	Short      int        `json:"short"`
	Long       int        `json:"long"`
	LastActive *time.Time `json:"last_active,omitempty"`
}

// StatsColumn names a sortable statistics column.
type StatsColumn string

const (
	ColName       StatsColumn = "name"
	ColCompleted  StatsColumn = "completed"
	ColIncomplete StatsColumn = "incomplete"
	ColImportant  StatsColumn = "important"
	ColChanges    StatsColumn = "changes"
	ColInactive   StatsColumn = "inactive"
	ColShort      StatsColumn = "short"
	ColLong       StatsColumn = "long"
	ColLastActive StatsColumn = "last_active"
)

// ParseStatsColumn maps a query value to a column, falling back to name.
func ParseStatsColumn(v string) StatsColumn {
	switch StatsColumn(v) {
	case ColName, ColCompleted, ColIncomplete, ColImportant, ColChanges,
		ColInactive, ColShort, ColLong, ColLastActive:
		return StatsColumn(v)
	default:
		return ColName
	}
}

// Aggregate derives one row per user from the enriched list. Tasks without an
// owner contribute to no row. Row order follows the users slice.
func Aggregate(tasks []domain.EnrichedTask, users []domain.User) []UserRow {
	byUser := make(map[int64]*UserRow, len(users))
	rows := make([]UserRow, len(users))
	for i, u := range users {
		rows[i] = UserRow{UserID: u.ID, Name: u.Name}
		byUser[u.ID] = &rows[i]
	}

	for _, t := range tasks {
		row, ok := byUser[t.UserID]
		if !ok {
			continue
		}

		if t.Completed {
			row.Completed++
		} else {
			row.Incomplete++
		}
		if t.Important {
			row.Important++
		}
		row.Changes += t.HistoryCount
		if t.Inactive() {
			row.Inactive++
		}
		if t.Quick() {
			row.Short++
		} else {
			row.Long++
		}
		if t.UpdatedAt != nil && (row.LastActive == nil || t.UpdatedAt.After(*row.LastActive)) {
			ts := *t.UpdatedAt
			row.LastActive = &ts
		}
	}

	return rows
}

// SortRows orders the table by one column. Rows with no value for the column
// (no last-active timestamp) sort last regardless of direction; names compare
// case-insensitively.
func SortRows(rows []UserRow, col StatsColumn, desc bool) {
	value := func(r UserRow) int64 {
		switch col {
		case ColCompleted:
			return int64(r.Completed)
		case ColIncomplete:
			return int64(r.Incomplete)
		case ColImportant:
			return int64(r.Important)
		case ColChanges:
			return int64(r.Changes)
		case ColInactive:
			return int64(r.Inactive)
		case ColShort:
			return int64(r.Short)
		case ColLong:
			return int64(r.Long)
		case ColLastActive:
			if r.LastActive == nil {
				return 0
			}
			return r.LastActive.UnixMilli()
		default:
			return 0
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		if col == ColLastActive {
			// missing values always at the bottom
			if (a.LastActive == nil) != (b.LastActive == nil) {
				return b.LastActive == nil
			}
			if a.LastActive == nil {
				return false
			}
		}

		if col == ColName {
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if desc {
				return an > bn
			}
			return an < bn
		}

		av, bv := value(a), value(b)
		if desc {
			return av > bv
		}
		return av < bv
	})
}

// Totals sums the numeric columns over the given rows. LastActive stays empty;
// it is not a numeric column.
func Totals(rows []UserRow) UserRow {
	var total UserRow
	total.Name = "total"
	for _, r := range rows {
		total.Completed += r.Completed
		total.Incomplete += r.Incomplete
		total.Important += r.Important
		total.Changes += r.Changes
		total.Inactive += r.Inactive
		total.Short += r.Short
		total.Long += r.Long
	}
	return total
}
