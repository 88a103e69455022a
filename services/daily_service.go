package services

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"backend/models"
)

// Rand is the randomness source for daily jitter. Tests substitute a fixed
// seed or UnitJitter; production uses NewJitterSource.
type Rand interface {
	Float64() float64
}

// NewJitterSource returns the default time-seeded jitter source.
func NewJitterSource() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// unitJitter always yields the midpoint of the jitter band, i.e. a factor of
// exactly 1.0. Used to disable jitter.
type unitJitter struct{}

func (unitJitter) Float64() float64 { return 0.5 }

// UnitJitter is a jitter source that applies no variation.
var UnitJitter Rand = unitJitter{}

// typeMultiplier returns the weekday-dependent consumption multiplier for a
// meter category. Commercial demand drops on weekends, residential rises,
// irrigation runs flat and high.
func typeMultiplier(category models.MeterCategory, weekend bool) float64 {
	switch category {
	case models.CategoryCommercial:
		if weekend {
			return 0.6
		}
		return 1.3
	case models.CategoryResidential:
		if weekend {
			return 1.2
		}
		return 1.0
	case models.CategoryIrrigation:
		return 1.5
	}
	return 1.0
}

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

func daysInMonth(d time.Time) int {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// SynthesizeDaily expands a meter's monthly totals into one pseudo-daily
// value per day of the inclusive [start, end] date range. Ranges spanning
// several months are handled per month using that month's total. Each value
// is baseline (monthTotal / daysInMonth) scaled by the category multiplier
// and a jitter factor uniform in [0.75, 1.25] drawn from rng, rounded, never
// negative. Output is ascending by date.
func SynthesizeDaily(meter *models.WaterMeter, start, end time.Time, rng Rand) ([]models.DailyConsumptionRecord, error) {
	start = start.Truncate(24 * time.Hour)
	end = end.Truncate(24 * time.Hour)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s after %s", ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if rng == nil {
		rng = NewJitterSource()
	}

	category := meter.Category()

	var records []models.DailyConsumptionRecord
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		monthKey := d.Format("2006-01")
		baseline := meter.MonthValue(monthKey) / float64(daysInMonth(d))

		factor := typeMultiplier(category, isWeekend(d))
		factor *= 0.75 + rng.Float64()*0.5

		value := math.Round(math.Max(0, baseline*factor))

		records = append(records, models.DailyConsumptionRecord{
			Date:          d.Format("2006-01-02"),
			MeterID:       meter.AccountNumber,
			MeterLabel:    meter.MeterLabel,
			AccountNumber: meter.AccountNumber,
			Zone:          meter.Zone,
			Level:         meter.Label,
			MeterType:     meter.Type,
			Consumption:   value,
		})
	}
	return records, nil
}

// SynthesizeDailyAll runs SynthesizeDaily over a whole meter set, keeping the
// per-day ordering: all meters for a date appear before the next date.
func SynthesizeDailyAll(meters []models.WaterMeter, start, end time.Time, rng Rand) ([]models.DailyConsumptionRecord, error) {
	start = start.Truncate(24 * time.Hour)
	end = end.Truncate(24 * time.Hour)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s after %s", ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if rng == nil {
		rng = NewJitterSource()
	}

	var records []models.DailyConsumptionRecord
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for i := range meters {
			day, err := SynthesizeDaily(&meters[i], d, d, rng)
			if err != nil {
				return nil, err
			}
			records = append(records, day...)
		}
	}
	return records, nil
}
