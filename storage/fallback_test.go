package storage

import (
	"testing"

	"backend/models"
)

func TestFallbackWaterMetersCoversHierarchy(t *testing.T) {
	meters := FallbackWaterMeters()

	if len(meters) != 10 {
		t.Fatalf("expected 10 fallback meters, got %d", len(meters))
	}

	counts := map[string]int{}
	for _, m := range meters {
		counts[m.Label]++
	}
	if counts[models.LevelL1] != 1 {
		t.Errorf("expected exactly one L1 meter, got %d", counts[models.LevelL1])
	}
	if counts[models.LevelL2] != 4 {
		t.Errorf("expected 4 L2 meters, got %d", counts[models.LevelL2])
	}
	if counts[models.LevelL3] != 3 {
		t.Errorf("expected 3 L3 meters, got %d", counts[models.LevelL3])
	}
	if counts[models.LevelDC] != 2 {
		t.Errorf("expected 2 DC meters, got %d", counts[models.LevelDC])
	}
}

func TestFallbackWaterMetersKnownValues(t *testing.T) {
	meters := FallbackWaterMeters()

	var mainBulk *models.WaterMeter
	for i := range meters {
		if meters[i].AccountNumber == "C43659" {
			mainBulk = &meters[i]
		}
	}
	if mainBulk == nil {
		t.Fatal("main bulk meter C43659 missing from fallback set")
	}
	if mainBulk.Jan25 != 32580 {
		t.Errorf("main bulk jan_25 = %v, want 32580", mainBulk.Jan25)
	}
	if mainBulk.Label != models.LevelL1 {
		t.Errorf("main bulk level = %q, want L1", mainBulk.Label)
	}
}

func TestFallbackWaterMetersReturnsFreshSlice(t *testing.T) {
	first := FallbackWaterMeters()
	first[0].Jan25 = -1

	second := FallbackWaterMeters()
	if second[0].Jan25 == -1 {
		t.Error("mutating a returned slice leaked into subsequent calls")
	}
}

func TestFallbackSTPRecordsDeriveFinancials(t *testing.T) {
	records := FallbackSTPRecords()
	for i := range records {
		records[i].DeriveFinancials()
		if records[i].IncomeFromTankers != float64(records[i].TankersDischarged)*models.STPTankerIncomeOMR {
			t.Errorf("record %d tanker income not derived from trips", records[i].ID)
		}
		if records[i].TotalSavingIncome == 0 {
			t.Errorf("record %d total saving/income still zero after derivation", records[i].ID)
		}
	}
}
