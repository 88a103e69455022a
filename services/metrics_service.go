package services

import (
	"math"
	"sort"

	"backend/models"
)

// Trend classification: below this absolute percentage the series is
// considered stable.
const trendStableBand = 5.0

// Summarize reduces a set of dated consumption records into the dashboard
// metrics shape. Records are grouped by date and summed across meters first.
// With no records, or with a single date (no trend possible), the numeric
// fields are zero and InsufficientData is set; the function never produces
// NaN or infinities.
func Summarize(records []models.DailyConsumptionRecord) models.ConsumptionMetrics {
	var metrics models.ConsumptionMetrics
	if len(records) == 0 {
		metrics.Trend = "stable"
		metrics.InsufficientData = true
		return metrics
	}

	dailyTotals := make(map[string]float64)
	meterSeen := make(map[string]struct{})
	meterActive := make(map[string]struct{})
	for i := range records {
		r := &records[i]
		dailyTotals[r.Date] += r.Consumption
		meterSeen[r.MeterID] = struct{}{}
		if r.Consumption > 0 {
			meterActive[r.MeterID] = struct{}{}
		}
	}

	dates := make([]string, 0, len(dailyTotals))
	for date := range dailyTotals {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var total float64
	for _, date := range dates {
		total += dailyTotals[date]
	}
	metrics.TotalConsumption = total
	metrics.AverageDaily = total / float64(len(dates))
	metrics.TotalMeters = len(meterSeen)
	metrics.ActiveMeters = len(meterActive)

	// Peak and low day; ties go to the earliest date.
	peak := models.DayConsumption{Date: dates[0], Consumption: dailyTotals[dates[0]]}
	low := peak
	for _, date := range dates[1:] {
		v := dailyTotals[date]
		if v > peak.Consumption {
			peak = models.DayConsumption{Date: date, Consumption: v}
		}
		if v < low.Consumption {
			low = models.DayConsumption{Date: date, Consumption: v}
		}
	}
	metrics.PeakDay = peak
	metrics.LowDay = low

	metrics.Trend = "stable"
	if len(dates) < 2 {
		metrics.InsufficientData = true
		return metrics
	}

	// Trend: first half vs second half of the date range; for odd counts the
	// extra date belongs to the second half.
	mid := len(dates) / 2
	firstMean := meanOf(dates[:mid], dailyTotals)
	secondMean := meanOf(dates[mid:], dailyTotals)

	var pct float64
	if firstMean > 0 {
		pct = (secondMean - firstMean) / firstMean * 100
	}
	metrics.TrendPercentage = math.Abs(pct)
	switch {
	case math.Abs(pct) < trendStableBand:
		metrics.Trend = "stable"
	case pct > 0:
		metrics.Trend = "up"
	default:
		metrics.Trend = "down"
	}

	return metrics
}

func meanOf(dates []string, totals map[string]float64) float64 {
	if len(dates) == 0 {
		return 0
	}
	var sum float64
	for _, date := range dates {
		sum += totals[date]
	}
	return sum / float64(len(dates))
}

// DailyTrend returns the per-date totals of a record set in ascending date
// order, ready for charting.
func DailyTrend(records []models.DailyConsumptionRecord) []models.DayConsumption {
	totals := make(map[string]float64)
	for i := range records {
		totals[records[i].Date] += records[i].Consumption
	}

	trend := make([]models.DayConsumption, 0, len(totals))
	for date, v := range totals {
		trend = append(trend, models.DayConsumption{Date: date, Consumption: v})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend
}

// ZoneBreakdown sums consumption per zone, sorted by descending total.
func ZoneBreakdown(records []models.DailyConsumptionRecord) []models.ZoneConsumption {
	totals := make(map[string]float64)
	for i := range records {
		totals[records[i].Zone] += records[i].Consumption
	}

	breakdown := make([]models.ZoneConsumption, 0, len(totals))
	for zone, v := range totals {
		breakdown = append(breakdown, models.ZoneConsumption{Zone: zone, Consumption: v})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Consumption != breakdown[j].Consumption {
			return breakdown[i].Consumption > breakdown[j].Consumption
		}
		return breakdown[i].Zone < breakdown[j].Zone
	})
	return breakdown
}

// TopConsumers ranks meters by total consumption over the record set and
// returns at most limit entries.
func TopConsumers(records []models.DailyConsumptionRecord, limit int) []models.TopConsumer {
	byMeter := make(map[string]*models.TopConsumer)
	for i := range records {
		r := &records[i]
		entry, ok := byMeter[r.MeterID]
		if !ok {
			entry = &models.TopConsumer{
				MeterID:       r.MeterID,
				MeterLabel:    r.MeterLabel,
				AccountNumber: r.AccountNumber,
				Zone:          r.Zone,
				Level:         r.Level,
				MeterType:     r.MeterType,
			}
			byMeter[r.MeterID] = entry
		}
		entry.TotalConsumption += r.Consumption
	}

	consumers := make([]models.TopConsumer, 0, len(byMeter))
	for _, entry := range byMeter {
		consumers = append(consumers, *entry)
	}
	sort.Slice(consumers, func(i, j int) bool {
		if consumers[i].TotalConsumption != consumers[j].TotalConsumption {
			return consumers[i].TotalConsumption > consumers[j].TotalConsumption
		}
		return consumers[i].MeterID < consumers[j].MeterID
	})
	if limit > 0 && len(consumers) > limit {
		consumers = consumers[:limit]
	}
	return consumers
}
