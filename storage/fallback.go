package storage

import (
	"time"

	"backend/models"
)

// FallbackConnectionMessage explains to API consumers why sample data is
// being served instead of live readings.
const FallbackConnectionMessage = "Serving built-in sample data: the live database could not be reached or the expected table does not exist. Verify the DB_* settings in .env and that the water_meters table is present."

var fallbackSeededAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// FallbackWaterMeters returns the built-in sample meter set used when the
// database is unreachable. The set covers every hierarchy level plus direct
// connections so the dashboard stays fully navigable while degraded.
func FallbackWaterMeters() []models.WaterMeter {
	return []models.WaterMeter{
		{
			ID: 1, MeterLabel: "Main Bulk (NAMA)", AccountNumber: "C43659",
			Label: models.LevelL1, Zone: "Main Bulk", ParentMeter: "NAMA", Type: "Main Bulk",
			Jan25: 32580, Feb25: 44043, Mar25: 34915, Apr25: 46039, May25: 58425, Jun25: 41840, Jul25: 41475,
			CreatedAt: fallbackSeededAt, UpdatedAt: fallbackSeededAt,
		},
		{
			ID: 2, MeterLabel: "ZONE 8 (Bulk Zone 8)", AccountNumber: "4300342",
			Label: models.LevelL2, Zone: "Zone_08", ParentMeter: "Main Bulk (NAMA)", Type: "Zone Bulk",
			Jan25: 1547, Feb25: 1498, Mar25: 2605, Apr25: 3203, May25: 2937, Jun25: 3142, Jul25: 2800,
			CreatedAt: fallbackSeededAt, UpdatedAt: fallbackSeededAt,
		},
		{
			ID: 3, MeterLabel: "ZONE 3A (BULK Zone 3A)", AccountNumber: "4300343",
			Label: models.LevelL2, Zone: "Zone_03_(A)", ParentMeter: "Main Bulk (NAMA)", Type: "Zone Bulk",
			Jan25: 4235, Feb25: 4273, Mar25: 3591, Apr25: 4041, May25: 4898, Jun25: 6484, Jul25: 5200,
			CreatedAt: fallbackSeededAt, UpdatedAt: fallbackSeededAt,
		},
		{
			ID: 4, MeterLabel: "ZONE 3B (BULK Zone 3B)", AccountNumber: "4300344",
			Label: models.LevelL2, Zone: "Zone_03_(B)", ParentMeter: "Main Bulk (NAMA)", Type: "Zone Bulk",
			Jan25: 3256, Feb25: 2962, Mar25: 3331, Apr25: 2157, May25: 3093, Jun25: 2917, Jul25: 2800,
			CreatedAt: fallbackSeededAt, UpdatedAt: fallbackSeededAt,
		},
		{
			ID: 5, MeterLabel: "ZONE 5 (Bulk Zone 5)", AccountNumber: "4300345",
			Label: models.LevelL2, Zone: "Zone_05", ParentMeter: "Main Bulk (NAMA)", Type: "Zone Bulk",
			Jan25: 4267, Feb25: 4231, Mar25: 3862, Apr25: 3737, May25: 3849, Jun25: 4113, Jul25: 3900,
			CreatedAt: fallbackSeededAt, UpdatedAt: fallbackSeededAt,
		},
		{
			ID: 6, MeterLabel: "Hotel Main Building", AccountNumber: "4300334",
			Label: models.LevelDC, Zone: "Direct Connection", ParentMeter: "Main Bulk (NAMA)", Type: "Retail",
			Jan25: 18048, Feb25: 19482, Mar25: 22151, Apr25: 27676, May25: 26963, Jun25: 17379, Jul25: 14713,
			CreatedAt: fallbackSeededAt, UpdatedAt: fallbackSeededAt,
		},
		{
			ID: 7, MeterLabel: "Z8-1", AccountNumber: "4300188",
			Label: models.LevelL3, Zone: "Zone_08", ParentMeter: "ZONE 8 (Bulk Zone 8)", Type: "Residential (Villa)",
			Jan25: 1, Feb25: 2, Mar25: 3, Apr25: 16, May25: 7, Jun25: 0, Jul25: 12,
			CreatedAt: fallbackSeededAt, UpdatedAt: fallbackSeededAt,
		},
		{
			ID: 8, MeterLabel: "Z8-11", AccountNumber: "4300023",
			Label: models.LevelL3, Zone: "Zone_08", ParentMeter: "ZONE 8 (Bulk Zone 8)", Type: "Residential (Villa)",
			Jan25: 0, Feb25: 1, Mar25: 0, Apr25: 0, May25: 0, Jun25: 0, Jul25: 2,
			CreatedAt: fallbackSeededAt, UpdatedAt: fallbackSeededAt,
		},
		{
			ID: 9, MeterLabel: "Z8-13", AccountNumber: "4300024",
			Label: models.LevelL3, Zone: "Zone_08", ParentMeter: "ZONE 8 (Bulk Zone 8)", Type: "Residential (Villa)",
			Jan25: 0, Feb25: 0, Mar25: 0, Apr25: 0, May25: 0, Jun25: 1, Jul25: 1,
			CreatedAt: fallbackSeededAt, UpdatedAt: fallbackSeededAt,
		},
		{
			ID: 10, MeterLabel: "Irrigation- Controller UP", AccountNumber: "4300340",
			Label: models.LevelDC, Zone: "Direct Connection", ParentMeter: "Main Bulk (NAMA)", Type: "IRR_Services",
			Jan25: 0, Feb25: 0, Mar25: 0, Apr25: 1000, May25: 313, Jun25: 491, Jul25: 554,
			CreatedAt: fallbackSeededAt, UpdatedAt: fallbackSeededAt,
		},
	}
}

// FallbackElectricityMeters returns a small sample of electricity meters for
// degraded operation.
func FallbackElectricityMeters() []models.ElectricityMeter {
	return []models.ElectricityMeter{
		{
			ID: 1, Name: "Pumping Station 01", Type: "PS", AccountNumber: "R52330", Zone: "Infrastructure",
			Aug24: 1608, Sep24: 1940, Oct24: 1783, Nov24: 1874, Dec24: 1662, Jan25: 1562,
			Feb25: 1593, Mar25: 1940, Apr25: 1783, May25: 1874, Jun25: 1662, Jul25: 1720,
		},
		{
			ID: 2, Name: "Beachwell", Type: "D_Building", AccountNumber: "R51903", Zone: "Infrastructure",
			Aug24: 24383, Sep24: 37236, Oct24: 38168, Nov24: 18422, Dec24: 40, Jan25: 27749,
			Feb25: 23674, Mar25: 25720, Apr25: 31879, May25: 35000, Jun25: 30000, Jul25: 28000,
		},
		{
			ID: 3, Name: "Central Park", Type: "D_Building", AccountNumber: "R54672", Zone: "Common Areas",
			Aug24: 9604, Sep24: 19032, Oct24: 22819, Nov24: 19974, Dec24: 14071, Jan25: 12970,
			Feb25: 12739, Mar25: 24545, Apr25: 28776, May25: 30000, Jun25: 32000, Jul25: 31000,
		},
	}
}

// FallbackSTPRecords returns sample STP daily operation rows for degraded
// operation. Financial figures are left zero so derivation from the plant
// tariffs is exercised on the same path as live rows.
func FallbackSTPRecords() []models.STPRecord {
	return []models.STPRecord{
		{ID: 1, OperationDate: "2025-07-01", TotalInletSewage: 480, TSEWaterToIrrigation: 440, TankersDischarged: 7},
		{ID: 2, OperationDate: "2025-07-02", TotalInletSewage: 520, TSEWaterToIrrigation: 476, TankersDischarged: 8},
		{ID: 3, OperationDate: "2025-07-03", TotalInletSewage: 475, TSEWaterToIrrigation: 437, TankersDischarged: 6},
	}
}
