// Copyright (c) 2026 ICB Software JSC <dev@icb.vn>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"icbcrm/internal/models"
	"icbcrm/internal/store"
)

// dashboardStats is the GET /api/stats/dashboard response body.
type dashboardStats struct {
	Customers customerStats `json:"customers"`
	Staff     entityCount   `json:"staff"`
	Templates entityCount   `json:"templates"`
}

type customerStats struct {
	Total      int                             `json:"total"`
	ThisMonth  int                             `json:"thisMonth"`
	LastMonth  int                             `json:"lastMonth"`
	Growth     string                          `json:"growth"`
	ByCategory map[models.CustomerCategory]int `json:"byCategory"`
}

type entityCount struct {
	Total int `json:"total"`
}

// StatsDashboard handles GET /api/stats/dashboard. The computed blob is
// cached in Valkey with a short TTL; mutations invalidate it.
func (a *API) StatsDashboard(w http.ResponseWriter, r *http.Request) {
	if cached, ok := a.statsCache.Get(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	stats, err := a.collectStats()
	if err != nil {
		slog.Error("collect dashboard stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tải thống kê")
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		slog.Error("encode dashboard stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Không thể tải thống kê")
		return
	}

	a.statsCache.Set(r.Context(), payload)
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// collectStats gathers all dashboard numbers from the stores.
func (a *API) collectStats() (*dashboardStats, error) {
	customerTotal, err := a.customerStore.Count()
	if err != nil {
		return nil, err
	}
	byCategory, err := a.customerStore.CountByCategory()
	if err != nil {
		return nil, err
	}
	staffTotal, err := a.staffStore.Count()
	if err != nil {
		return nil, err
	}
	templateTotal, err := a.templateStore.Count()
	if err != nil {
		return nil, err
	}

	thisMonth, lastMonth := monthWindows(a.customerStore)

	return &dashboardStats{
		Customers: customerStats{
			Total:      customerTotal,
			ThisMonth:  thisMonth,
			LastMonth:  lastMonth,
			Growth:     growthString(thisMonth, lastMonth),
			ByCategory: byCategory,
		},
		Staff:     entityCount{Total: staffTotal},
		Templates: entityCount{Total: templateTotal},
	}, nil
}

// monthWindows returns how many customers were created this calendar
// month and the month before. Errors degrade to zero counts; the stats
// are informational.
func monthWindows(customers *store.CustomerStore) (thisMonth, lastMonth int) {
	now := time.Now()
	startThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startLast := startThis.AddDate(0, -1, 0)

	thisMonth, err := customers.CountCreatedBetween(startThis, now)
	if err != nil {
		slog.Error("count customers this month failed", "error", err)
	}
	lastMonth, err = customers.CountCreatedBetween(startLast, startThis)
	if err != nil {
		slog.Error("count customers last month failed", "error", err)
	}
	return thisMonth, lastMonth
}

// growthString formats month-over-month growth as a signed percentage.
// Growth from zero is reported as +100%, no change from zero as 0%.
func growthString(current, previous int) string {
	switch {
	case previous == 0 && current > 0:
		return "+100%"
	case previous == 0:
		return "0%"
	}
	pct := (current - previous) * 100 / previous
	if pct >= 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}
