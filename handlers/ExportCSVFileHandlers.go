package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"backend/models"
	"backend/repository"
	"backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var waterMeterExportHeader = []string{
	"MeterLabel", "AccountNumber", "Level", "Zone", "ParentMeter", "Type",
	"Jan-25", "Feb-25", "Mar-25", "Apr-25", "May-25", "Jun-25", "Jul-25", "Total",
}

var exportMonthKeys = []string{
	"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06", "2025-07",
}

func waterMeterExportRow(m *models.WaterMeter) []string {
	row := []string{m.MeterLabel, m.AccountNumber, m.Label, m.Zone, m.ParentMeter, m.Type}
	for _, key := range exportMonthKeys {
		row = append(row, strconv.FormatFloat(m.MonthValue(key), 'f', -1, 64))
	}
	row = append(row, strconv.FormatFloat(m.TotalForMonths(exportMonthKeys), 'f', -1, 64))
	return row
}

// ExportWaterMetersCSV godoc
// @Summary      Export water meters as CSV
// @Tags         export
// @Produce      text/csv
// @Param        level  query  string  false  "Hierarchy level filter"
// @Param        zone   query  string  false  "Zone substring filter"
// @Success      200  {file}  file  "CSV file"
// @Router       /api/export/water-meters.csv [get]
func ExportWaterMetersCSV(c *gin.Context) {
	db := storage.GetDB()

	filters := repository.WaterMeterFilters{
		Level: c.Query("level"),
		Zone:  c.Query("zone"),
	}
	meters, err := repository.FetchWaterMeters(c.Request.Context(), db, filters)
	if err != nil {
		log.Printf("water meter export falling back to sample data: %v", err)
		meters = filterFallbackMeters(storage.FallbackWaterMeters(), filters)
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=water_meters.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write(waterMeterExportHeader); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV header"})
		return
	}
	for i := range meters {
		if err := writer.Write(waterMeterExportRow(&meters[i])); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV row"})
			return
		}
	}
}

// ExportWaterMetersXLSX godoc
// @Summary      Export water meters as XLSX
// @Description  Styled spreadsheet of the meter inventory with monthly consumption and row totals.
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        level  query  string  false  "Hierarchy level filter"
// @Param        zone   query  string  false  "Zone substring filter"
// @Success      200  {file}  file  "XLSX file"
// @Router       /api/export/water-meters.xlsx [get]
func ExportWaterMetersXLSX(c *gin.Context) {
	db := storage.GetDB()

	filters := repository.WaterMeterFilters{
		Level: c.Query("level"),
		Zone:  c.Query("zone"),
	}
	meters, err := repository.FetchWaterMeters(c.Request.Context(), db, filters)
	if err != nil {
		log.Printf("water meter export falling back to sample data: %v", err)
		meters = filterFallbackMeters(storage.FallbackWaterMeters(), filters)
	}

	f := excelize.NewFile()
	sheetName := "Water Meters"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"4F81BD"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating header style"})
		return
	}

	for i, title := range waterMeterExportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing cell name"})
			return
		}
		f.SetCellValue(sheetName, cell, title)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx := range meters {
		m := &meters[rowIdx]
		values := []interface{}{
			m.MeterLabel, m.AccountNumber, m.Label, m.Zone, m.ParentMeter, m.Type,
		}
		for _, key := range exportMonthKeys {
			values = append(values, m.MonthValue(key))
		}
		values = append(values, m.TotalForMonths(exportMonthKeys))

		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing cell name"})
				return
			}
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "F", 18)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment;filename=water_meters.xlsx")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing XLSX file"})
		return
	}
}

// ExportDailyConsumptionCSV godoc
// @Summary      Export daily consumption as CSV
// @Tags         export
// @Produce      text/csv
// @Param        start_date  query  string  false  "First day, YYYY-MM-DD"  default(2025-07-01)
// @Param        end_date    query  string  false  "Last day, YYYY-MM-DD"   default(2025-07-31)
// @Success      200  {file}  file  "CSV file"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/export/daily-consumption.csv [get]
func ExportDailyConsumptionCSV(c *gin.Context) {
	db := storage.GetDB()

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	records, source, _ := loadDailyRecords(c, db, start, end)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=daily_consumption_%s.csv", source))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	header := []string{"Date", "MeterLabel", "AccountNumber", "Zone", "Level", "Type", "Consumption"}
	if err := writer.Write(header); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV header"})
		return
	}
	for _, r := range records {
		row := []string{
			r.Date, r.MeterLabel, r.AccountNumber, r.Zone, r.Level, r.MeterType,
			strconv.FormatFloat(r.Consumption, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV row"})
			return
		}
	}
}

// ExportSTPOperationsCSV godoc
// @Summary      Export STP operations as CSV
// @Tags         export
// @Produce      text/csv
// @Param        start_date  query  string  false  "First day, YYYY-MM-DD"
// @Param        end_date    query  string  false  "Last day, YYYY-MM-DD"
// @Success      200  {file}  file  "CSV file"
// @Router       /api/export/stp-operations.csv [get]
func ExportSTPOperationsCSV(c *gin.Context) {
	db := storage.GetDB()

	records, _ := loadSTPRecords(c, db, c.Query("start_date"), c.Query("end_date"))

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=stp_operations.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	header := []string{
		"OperationDate", "TotalInletSewage", "TSEWaterToIrrigation", "TankersDischarged",
		"IncomeFromTankers", "SavingFromTSE", "TotalSavingIncome",
	}
	if err := writer.Write(header); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV header"})
		return
	}
	for _, r := range records {
		row := []string{
			r.OperationDate,
			strconv.FormatFloat(r.TotalInletSewage, 'f', -1, 64),
			strconv.FormatFloat(r.TSEWaterToIrrigation, 'f', -1, 64),
			strconv.Itoa(r.TankersDischarged),
			strconv.FormatFloat(r.IncomeFromTankers, 'f', 2, 64),
			strconv.FormatFloat(r.SavingFromTSE, 'f', 2, 64),
			strconv.FormatFloat(r.TotalSavingIncome, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV row"})
			return
		}
	}
}
