package cache

import (
	"fmt"
	"strings"
)

// 快取 key 由操作名稱與正規化後的參數組成

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func UpcomingEventsKey(limit int, fallbackToPast bool) string {
	return fmt.Sprintf("upcoming_events_%d_%t", limit, fallbackToPast)
}

func EventsPageKey(term, eventType string, page, pageSize int) string {
	return fmt.Sprintf("events_all_%s_%s_%d_%d", normalizeTerm(term), eventType, page, pageSize)
}

func EventsPhaseKey(phase, term, eventType string, page, pageSize int) string {
	return fmt.Sprintf("events_%s_%s_%s_%d_%d", phase, normalizeTerm(term), eventType, page, pageSize)
}

func LatestResourcesKey(limit int) string {
	return fmt.Sprintf("latest_resources_%d", limit)
}

func ResourcesPageKey(term, resourceType string, page, pageSize int) string {
	return fmt.Sprintf("resources_%s_%s_%d_%d", normalizeTerm(term), resourceType, page, pageSize)
}

func ResourceCountsKey(term string) string {
	t := normalizeTerm(term)
	if t == "" {
		t = "all"
	}
	return "resource_counts_" + t
}
