package handlers

import (
	"strconv"
	"strings"

	"taskboard/internal/taskview"
)

// parseUserIDs splits a comma-separated id list ("1,2,3"). Unparseable parts
// are dropped; an empty parameter means no user filter.
func parseUserIDs(v string) []int64 {
	if v == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// parseBool reads a query flag with a default for the empty value.
func parseBool(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func parseInt(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func parseInt64(v string, def int64) int64 {
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// parseDuration maps the three-way duration selector, falling back to all.
func parseDuration(v string) taskview.DurationFilter {
	switch taskview.DurationFilter(v) {
	case taskview.DurationQuick, taskview.DurationLong:
		return taskview.DurationFilter(v)
	default:
		return taskview.DurationAll
	}
}

// parseImportance maps the three-way importance selector, falling back to all.
func parseImportance(v string) taskview.ImportanceFilter {
	switch taskview.ImportanceFilter(v) {
	case taskview.ImportantOnly, taskview.NotImportant:
		return taskview.ImportanceFilter(v)
	default:
		return taskview.ImportanceAll
	}
}
