package services

import (
	"fmt"
	"sort"
	"time"

	"backend/models"
)

// electricityMonthKeysInRange expands an inclusive month range restricted to
// the tracked electricity billing year.
func electricityMonthKeysInRange(start, end string) ([]string, error) {
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
	for _, key := range models.ElectricityMonthKeys {
		t, _ := time.Parse("2006-01", key)
		if !t.Before(startT) && !t.After(endT) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// AnalyzeElectricity summarizes an electricity meter set over a month range:
// total kWh, cost at the standard tariff, top consumer and monthly trend.
func AnalyzeElectricity(meters []models.ElectricityMeter, startMonth, endMonth string) (*models.ElectricityAnalysis, error) {
	keys, err := electricityMonthKeysInRange(startMonth, endMonth)
	if err != nil {
		return nil, err
	}

	analysis := &models.ElectricityAnalysis{
		PeriodStart: startMonth,
		PeriodEnd:   endMonth,
		MeterCount:  len(meters),
	}

	typeTotals := make(map[string]*models.TypeBreakdown)
	var top *models.TopConsumer

	for i := range meters {
		m := &meters[i]
		total := m.TotalForMonths(keys)
		analysis.TotalConsumption += total

		if top == nil || total > top.TotalConsumption {
			top = &models.TopConsumer{
				MeterID:          m.AccountNumber,
				MeterLabel:       m.Name,
				AccountNumber:    m.AccountNumber,
				Zone:             m.Zone,
				MeterType:        m.Type,
				TotalConsumption: total,
			}
		}

		t := m.Type
		if t == "" {
			t = "Unknown"
		}
		entry, ok := typeTotals[t]
		if !ok {
			entry = &models.TypeBreakdown{Type: t}
			typeTotals[t] = entry
		}
		entry.Total += total
		entry.MeterCount++
	}

	analysis.TotalCost = analysis.TotalConsumption * models.ElectricityRateOMR
	if top != nil && top.TotalConsumption > 0 {
		analysis.TopConsumer = top
	}

	for _, key := range keys {
		var monthTotal float64
		for i := range meters {
			monthTotal += meters[i].MonthValue(key)
		}
		analysis.MonthlyTrend = append(analysis.MonthlyTrend, models.MonthConsumption{
			Month:       key,
			Consumption: monthTotal,
		})
	}

	for _, entry := range typeTotals {
		analysis.ByType = append(analysis.ByType, *entry)
	}
	sort.Slice(analysis.ByType, func(i, j int) bool {
		if analysis.ByType[i].Total != analysis.ByType[j].Total {
			return analysis.ByType[i].Total > analysis.ByType[j].Total
		}
		return analysis.ByType[i].Type < analysis.ByType[j].Type
	})

	return analysis, nil
}
