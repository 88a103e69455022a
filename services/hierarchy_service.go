package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"backend/models"
)

// ErrInvalidRange is returned when a month range has its start after its end.
var ErrInvalidRange = errors.New("invalid month range: start is after end")

// MonthKeysInRange expands an inclusive [start, end] month-key range
// ("2006-01" format) into the ordered list of month keys it covers.
func MonthKeysInRange(start, end string) ([]string, error) {
	startT, err := time.Parse("2006-01", start)
	if err != nil {
		return nil, fmt.Errorf("invalid start month %q: %w", start, err)
	}
	endT, err := time.Parse("2006-01", end)
	if err != nil {
		return nil, fmt.Errorf("invalid end month %q: %w", end, err)
	}
	if startT.After(endT) {
		return nil, ErrInvalidRange
	}

	var keys []string
	for t := startT; !t.After(endT); t = t.AddDate(0, 1, 0) {
		keys = append(keys, t.Format("2006-01"))
	}
	return keys, nil
}

// ZoneMatches reports whether a meter zone matches the filter using the
// case-insensitive substring semantics the dashboard filters use. An empty
// filter matches everything.
func ZoneMatches(zone, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(zone), strings.ToLower(filter))
}

// AggregateHierarchy computes the per-level consumption totals and the stage
// losses between adjacent levels for the given month range and optional zone
// filter. All four loss-chain levels are always present in the output, and
// all three adjacent segments are always emitted, even when a level has no
// meters. The result is a pure function of its inputs.
func AggregateHierarchy(meters []models.WaterMeter, startMonth, endMonth, zoneFilter string) (*models.HierarchyAnalysis, error) {
	keys, err := MonthKeysInRange(startMonth, endMonth)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(models.LossChainLevels))
	counts := make(map[string]int, len(models.LossChainLevels))
	var dcTotal float64
	var matched int

	for i := range meters {
		m := &meters[i]
		if !ZoneMatches(m.Zone, zoneFilter) {
			continue
		}
		matched++
		if m.Label == models.LevelDC {
			dcTotal += m.TotalForMonths(keys)
			continue
		}
		totals[m.Label] += m.TotalForMonths(keys)
		counts[m.Label]++
	}

	analysis := &models.HierarchyAnalysis{
		PeriodStart: startMonth,
		PeriodEnd:   endMonth,
		ZoneFilter:  zoneFilter,
		DCTotal:     dcTotal,
		TotalMeters: matched,
	}

	for _, level := range models.LossChainLevels {
		analysis.Levels = append(analysis.Levels, models.HierarchyLevelTotal{
			Level:            level,
			PeriodStart:      startMonth,
			PeriodEnd:        endMonth,
			TotalConsumption: totals[level],
			MeterCount:       counts[level],
		})
	}

	for i := 0; i < len(models.LossChainLevels)-1; i++ {
		from := models.LossChainLevels[i]
		to := models.LossChainLevels[i+1]
		loss := totals[from] - totals[to]
		analysis.LossSegments = append(analysis.LossSegments, models.LossSegment{
			FromLevel:      from,
			ToLevel:        to,
			LossVolume:     loss,
			LossPercentage: safePercentage(loss, totals[from]),
		})
	}

	return analysis, nil
}

// safePercentage returns part/whole*100 with a zero result instead of a
// division error when the whole is zero.
func safePercentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// AnalyzeZone compares the bulk (L2) intake of a zone against the individual
// meters inside it over a month range. Zone matching here is exact: the
// caller names one zone.
func AnalyzeZone(meters []models.WaterMeter, zone, startMonth, endMonth string) (*models.ZoneAnalysis, error) {
	keys, err := MonthKeysInRange(startMonth, endMonth)
	if err != nil {
		return nil, err
	}

	analysis := &models.ZoneAnalysis{
		Zone:        zone,
		PeriodStart: startMonth,
		PeriodEnd:   endMonth,
	}

	for i := range meters {
		m := &meters[i]
		if m.Zone != zone {
			continue
		}
		if m.Label == models.LevelL2 {
			analysis.BulkTotal += m.TotalForMonths(keys)
			analysis.BulkMeters++
		} else {
			analysis.IndividualTotal += m.TotalForMonths(keys)
			analysis.IndividualMeters++
		}
	}

	analysis.Loss = analysis.BulkTotal - analysis.IndividualTotal
	analysis.LossPercentage = safePercentage(analysis.Loss, analysis.BulkTotal)
	analysis.Efficiency = safePercentage(analysis.IndividualTotal, analysis.BulkTotal)

	return analysis, nil
}

// ConsumptionByType aggregates meter consumption per raw type string over a
// month range, sorted by descending total.
func ConsumptionByType(meters []models.WaterMeter, startMonth, endMonth string) ([]models.TypeBreakdown, error) {
	keys, err := MonthKeysInRange(startMonth, endMonth)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*models.TypeBreakdown)
	for i := range meters {
		m := &meters[i]
		t := m.Type
		if t == "" {
			t = "Unknown"
		}
		entry, ok := totals[t]
		if !ok {
			entry = &models.TypeBreakdown{Type: t}
			totals[t] = entry
		}
		entry.Total += m.TotalForMonths(keys)
		entry.MeterCount++
	}

	breakdown := make([]models.TypeBreakdown, 0, len(totals))
	for _, entry := range totals {
		breakdown = append(breakdown, *entry)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Total != breakdown[j].Total {
			return breakdown[i].Total > breakdown[j].Total
		}
		return breakdown[i].Type < breakdown[j].Type
	})
	return breakdown, nil
}

// UniqueZones returns the sorted distinct zones present in a meter set.
func UniqueZones(meters []models.WaterMeter) []string {
	seen := make(map[string]struct{})
	var zones []string
	for i := range meters {
		z := meters[i].Zone
		if z == "" {
			continue
		}
		if _, ok := seen[z]; ok {
			continue
		}
		seen[z] = struct{}{}
		zones = append(zones, z)
	}
	sort.Strings(zones)
	return zones
}
