package services

import (
	"sort"

	"backend/models"
)

// SummarizeSTP rolls a set of STP operation records up into overview metrics.
// Financial fields are derived from the operational figures where the
// database left them null.
func SummarizeSTP(records []models.STPRecord) models.STPMetrics {
	var metrics models.STPMetrics
	for i := range records {
		r := &records[i]
		r.DeriveFinancials()
		metrics.TotalInletSewage += r.TotalInletSewage
		metrics.TotalTSE += r.TSEWaterToIrrigation
		metrics.TotalTankers += r.TankersDischarged
		metrics.TotalIncome += r.IncomeFromTankers
		metrics.TotalSavings += r.SavingFromTSE
	}
	metrics.TotalImpact = metrics.TotalIncome + metrics.TotalSavings
	metrics.RecordCount = len(records)
	return metrics
}

// MonthlySTPSummary groups STP operation records per calendar month in
// chronological order.
func MonthlySTPSummary(records []models.STPRecord) []models.STPMonthlySummary {
	byMonth := make(map[string]*models.STPMonthlySummary)
	for i := range records {
		r := &records[i]
		if len(r.OperationDate) < 7 {
			continue
		}
		r.DeriveFinancials()
		month := r.OperationDate[:7]
		entry, ok := byMonth[month]
		if !ok {
			entry = &models.STPMonthlySummary{Month: month}
			byMonth[month] = entry
		}
		entry.SewageInput += r.TotalInletSewage
		entry.TSEOutput += r.TSEWaterToIrrigation
		entry.TankerTrips += r.TankersDischarged
		entry.Income += r.IncomeFromTankers
		entry.Savings += r.SavingFromTSE
		entry.OperatingDays++
	}

	summary := make([]models.STPMonthlySummary, 0, len(byMonth))
	for _, entry := range byMonth {
		summary = append(summary, *entry)
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].Month < summary[j].Month })
	return summary
}
