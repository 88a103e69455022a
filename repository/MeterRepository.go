package repository

import (
	"backend/models"
	"backend/utils"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNoDailyTable is returned when none of the known daily-consumption table
// names exist in the connected database.
var ErrNoDailyTable = errors.New("no daily consumption table found")

// DailyTableCandidates lists the table names daily water readings have been
// loaded under across deployments, in resolution order.
var DailyTableCandidates = []string{
	"july25_daily_water_consumption_data",
	"daily_water_consumption_july25",
	"daily_consumption_july25",
	"water_daily_consumption",
	"daily_water_consumption",
}

// WaterMeterFilters narrows a water meter listing. Zero values mean no
// filtering on that dimension.
type WaterMeterFilters struct {
	Level string // exact match on the hierarchy label
	Zone  string // case-insensitive substring match
	Limit int
}

const waterMeterColumns = `id, meter_label, account_number, label, zone, parent_meter, type,
	COALESCE(jan_25, 0), COALESCE(feb_25, 0), COALESCE(mar_25, 0), COALESCE(apr_25, 0),
	COALESCE(may_25, 0), COALESCE(jun_25, 0), COALESCE(jul_25, 0), COALESCE(aug_25, 0),
	COALESCE(sep_25, 0), COALESCE(oct_25, 0), COALESCE(nov_25, 0), COALESCE(dec_25, 0)`

// FetchWaterMeters retrieves water meters from the water_meters table with
// optional level and zone filters.
func FetchWaterMeters(ctx context.Context, db *sql.DB, filters WaterMeterFilters) ([]models.WaterMeter, error) {
	queryCtx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM water_meters`, waterMeterColumns)

	var conditions []string
	var args []interface{}

	if filters.Level != "" {
		args = append(args, filters.Level)
		conditions = append(conditions, fmt.Sprintf("label = $%d", len(args)))
	}
	if filters.Zone != "" {
		args = append(args, "%"+filters.Zone+"%")
		conditions = append(conditions, fmt.Sprintf("zone ILIKE $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := db.QueryContext(queryCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query water meters: %w", err)
	}
	defer rows.Close()

	var meters []models.WaterMeter
	for rows.Next() {
		var m models.WaterMeter
		err := rows.Scan(
			&m.ID, &m.MeterLabel, &m.AccountNumber, &m.Label, &m.Zone, &m.ParentMeter, &m.Type,
			&m.Jan25, &m.Feb25, &m.Mar25, &m.Apr25, &m.May25, &m.Jun25, &m.Jul25,
			&m.Aug25, &m.Sep25, &m.Oct25, &m.Nov25, &m.Dec25,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan water meter row: %w", err)
		}
		meters = append(meters, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating water meter rows: %w", err)
	}

	return meters, nil
}

// tableExists reports whether a table is present in the public schema.
func tableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	queryCtx, cancel := utils.GetFastQueryContext(ctx)
	defer cancel()

	var exists bool
	err := db.QueryRowContext(queryCtx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)`, table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return exists, nil
}

// ResolveDailyTable returns the first known daily-consumption table that
// exists in the connected database, or ErrNoDailyTable.
func ResolveDailyTable(ctx context.Context, db *sql.DB) (string, error) {
	for _, candidate := range DailyTableCandidates {
		exists, err := tableExists(ctx, db, candidate)
		if err != nil {
			return "", err
		}
		if exists {
			return candidate, nil
		}
	}
	return "", ErrNoDailyTable
}

// FetchDailyConsumption retrieves stored per-day readings for the inclusive
// date range. It resolves the table name from DailyTableCandidates; when no
// candidate exists the caller is expected to synthesize the series instead.
func FetchDailyConsumption(ctx context.Context, db *sql.DB, startDate, endDate string) ([]models.DailyConsumptionRecord, error) {
	table, err := ResolveDailyTable(ctx, db)
	if err != nil {
		return nil, err
	}

	queryCtx, cancel := utils.GetSlowQueryContext(ctx)
	defer cancel()

	// Table name comes from the fixed candidate list, never from input.
	// date is cast to text so a DATE column scans as YYYY-MM-DD and matches
	// the format synthesized records carry.
	query := fmt.Sprintf(`
		SELECT id, date::text, meter_id, meter_label, account_number, zone, level, meter_type, COALESCE(consumption, 0)
		FROM %s
		WHERE date >= $1 AND date <= $2
		ORDER BY date, meter_label`, table)

	rows, err := db.QueryContext(queryCtx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily consumption from %s: %w", table, err)
	}
	defer rows.Close()

	var records []models.DailyConsumptionRecord
	for rows.Next() {
		var r models.DailyConsumptionRecord
		err := rows.Scan(&r.ID, &r.Date, &r.MeterID, &r.MeterLabel, &r.AccountNumber, &r.Zone, &r.Level, &r.MeterType, &r.Consumption)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily consumption row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily consumption rows: %w", err)
	}

	return records, nil
}

const electricityMeterColumns = `id, name, account_number, COALESCE(zone, ''), COALESCE(type, ''),
	COALESCE(aug_24, 0), COALESCE(sep_24, 0), COALESCE(oct_24, 0), COALESCE(nov_24, 0),
	COALESCE(dec_24, 0), COALESCE(jan_25, 0), COALESCE(feb_25, 0), COALESCE(mar_25, 0),
	COALESCE(apr_25, 0), COALESCE(may_25, 0), COALESCE(jun_25, 0), COALESCE(jul_25, 0)`

// FetchElectricityMeters retrieves electricity meters. Older deployments
// loaded the data under energy_meters, so that name is tried second.
func FetchElectricityMeters(ctx context.Context, db *sql.DB) ([]models.ElectricityMeter, error) {
	var table string
	for _, candidate := range []string{"electricity_meters", "energy_meters"} {
		exists, err := tableExists(ctx, db, candidate)
		if err != nil {
			return nil, err
		}
		if exists {
			table = candidate
			break
		}
	}
	if table == "" {
		return nil, fmt.Errorf("no electricity meters table found")
	}

	queryCtx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, electricityMeterColumns, table)

	rows, err := db.QueryContext(queryCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query electricity meters: %w", err)
	}
	defer rows.Close()

	var meters []models.ElectricityMeter
	for rows.Next() {
		var m models.ElectricityMeter
		err := rows.Scan(
			&m.ID, &m.Name, &m.AccountNumber, &m.Zone, &m.Type,
			&m.Aug24, &m.Sep24, &m.Oct24, &m.Nov24, &m.Dec24,
			&m.Jan25, &m.Feb25, &m.Mar25, &m.Apr25, &m.May25, &m.Jun25, &m.Jul25,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan electricity meter row: %w", err)
		}
		meters = append(meters, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating electricity meter rows: %w", err)
	}

	return meters, nil
}

// FetchSTPRecords retrieves daily plant operation rows, optionally limited to
// an inclusive date range. Empty bounds mean no restriction on that side.
func FetchSTPRecords(ctx context.Context, db *sql.DB, startDate, endDate string) ([]models.STPRecord, error) {
	queryCtx, cancel := utils.GetDefaultQueryContext(ctx)
	defer cancel()

	// operation_date::text keeps a DATE column scanning as YYYY-MM-DD.
	query := `
		SELECT id, operation_date::text, COALESCE(total_inlet_sewage, 0), COALESCE(tse_water_to_irrigation, 0),
			   COALESCE(tankers_discharged, 0), COALESCE(income_from_tankers, 0),
			   COALESCE(saving_from_tse, 0), COALESCE(total_saving_income, 0)
		FROM stp_operations`

	var conditions []string
	var args []interface{}

	if startDate != "" {
		args = append(args, startDate)
		conditions = append(conditions, fmt.Sprintf("operation_date >= $%d", len(args)))
	}
	if endDate != "" {
		args = append(args, endDate)
		conditions = append(conditions, fmt.Sprintf("operation_date <= $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY operation_date"

	rows, err := db.QueryContext(queryCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stp operations: %w", err)
	}
	defer rows.Close()

	var records []models.STPRecord
	for rows.Next() {
		var r models.STPRecord
		err := rows.Scan(
			&r.ID, &r.OperationDate, &r.TotalInletSewage, &r.TSEWaterToIrrigation,
			&r.TankersDischarged, &r.IncomeFromTankers, &r.SavingFromTSE, &r.TotalSavingIncome,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stp operation row: %w", err)
		}
		r.DeriveFinancials()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stp operation rows: %w", err)
	}

	return records, nil
}
