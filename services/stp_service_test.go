package services

import (
	"testing"

	"backend/models"
)

func TestSummarizeSTPDerivesFinancials(t *testing.T) {
	records := []models.STPRecord{
		{OperationDate: "2025-01-05", TotalInletSewage: 85, TSEWaterToIrrigation: 75, TankersDischarged: 3},
		{OperationDate: "2025-01-06", TotalInletSewage: 92, TSEWaterToIrrigation: 82, TankersDischarged: 4},
	}
	m := SummarizeSTP(records)

	if m.TotalInletSewage != 177 {
		t.Errorf("inlet = %v, want 177", m.TotalInletSewage)
	}
	if m.TotalTankers != 7 {
		t.Errorf("tankers = %v, want 7", m.TotalTankers)
	}
	// 7 trips at 5 OMR.
	if m.TotalIncome != 35 {
		t.Errorf("income = %v, want 35", m.TotalIncome)
	}
	// 157 m3 of TSE at 0.45 OMR.
	if m.TotalSavings != 157*0.45 {
		t.Errorf("savings = %v, want %v", m.TotalSavings, 157*0.45)
	}
	if m.TotalImpact != m.TotalIncome+m.TotalSavings {
		t.Errorf("impact = %v, want income+savings", m.TotalImpact)
	}
}

func TestSummarizeSTPKeepsRecordedFinancials(t *testing.T) {
	records := []models.STPRecord{
		{OperationDate: "2025-01-05", TankersDischarged: 3, IncomeFromTankers: 99, SavingFromTSE: 1, TotalSavingIncome: 100},
	}
	m := SummarizeSTP(records)
	if m.TotalIncome != 99 {
		t.Errorf("recorded income overridden: got %v, want 99", m.TotalIncome)
	}
}

func TestMonthlySTPSummary(t *testing.T) {
	records := []models.STPRecord{
		{OperationDate: "2024-07-05", TotalInletSewage: 85, TSEWaterToIrrigation: 75, TankersDischarged: 3},
		{OperationDate: "2024-07-15", TotalInletSewage: 92, TSEWaterToIrrigation: 82, TankersDischarged: 4},
		{OperationDate: "2024-08-08", TotalInletSewage: 88, TSEWaterToIrrigation: 79, TankersDischarged: 5},
	}
	monthly := MonthlySTPSummary(records)
	if len(monthly) != 2 {
		t.Fatalf("got %d months, want 2", len(monthly))
	}
	if monthly[0].Month != "2024-07" || monthly[1].Month != "2024-08" {
		t.Errorf("month order = %s, %s", monthly[0].Month, monthly[1].Month)
	}
	if monthly[0].SewageInput != 177 {
		t.Errorf("july sewage = %v, want 177", monthly[0].SewageInput)
	}
	if monthly[0].OperatingDays != 2 {
		t.Errorf("july operating days = %d, want 2", monthly[0].OperatingDays)
	}
}
