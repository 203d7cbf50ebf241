package handler

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"expense-api/internal/logging"
	"expense-api/internal/models"
	"expense-api/internal/store"
	"expense-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Expenses"

var exportHeaders = []string{"ID", "Date", "Title", "Category", "Amount", "Description"}

// ExportHandler downloads the caller's ledger as CSV or XLSX.
type ExportHandler struct {
	Expenses *store.Expenses
	Log      *slog.Logger
}

func NewExportHandler(expenses *store.Expenses, log *slog.Logger) *ExportHandler {
	return &ExportHandler{
		Expenses: expenses,
		Log:      logging.WithComponent(log, logging.ComponentHTTP),
	}
}

// Export: ?format=csv|xlsx, optional &month=&year= (both or neither)
func (h *ExportHandler) Export(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var period *store.Period
	if c.Query("month") != "" || c.Query("year") != "" {
		p, ok := requiredPeriod(c)
		if !ok {
			return
		}
		period = &p
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "format must be csv or xlsx")
		return
	}

	expenses, err := h.Expenses.Within(c.Request.Context(), user.ID, period)
	if err != nil {
		respondError(c, h.Log, "export expenses", err)
		return
	}

	filename := fmt.Sprintf("expenses_%s.%s", time.Now().Format("20060102"), format)
	if format == "xlsx" {
		h.writeXLSX(c, filename, expenses)
		return
	}
	h.writeCSV(c, filename, expenses)
}

func exportRow(e *models.Expense) []string {
	return []string{
		fmt.Sprint(e.ID),
		e.Date.Format(time.RFC3339),
		e.Title,
		string(e.Category),
		e.Amount.String(),
		e.Description,
	}
}

func (h *ExportHandler) writeCSV(c *gin.Context, filename string, expenses []models.Expense) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(exportHeaders)
	for i := range expenses {
		_ = w.Write(exportRow(&expenses[i]))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.Log.Error("write csv", logging.FieldError, err)
	}
}

func (h *ExportHandler) writeXLSX(c *gin.Context, filename string, expenses []models.Expense) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		respondError(c, h.Log, "xlsx sheet", err)
		return
	}

	header := make([]interface{}, len(exportHeaders))
	for i, v := range exportHeaders {
		header[i] = v
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		respondError(c, h.Log, "xlsx header", err)
		return
	}

	for i := range expenses {
		e := &expenses[i]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			e.ID,
			e.Date.Format("2006-01-02 15:04:05"),
			e.Title,
			string(e.Category),
			e.Amount.InexactFloat64(),
			e.Description,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			respondError(c, h.Log, "xlsx row", err)
			return
		}
	}

	_ = f.SetColWidth(exportSheet, "B", "B", 20)
	_ = f.SetColWidth(exportSheet, "C", "C", 30)
	_ = f.SetColWidth(exportSheet, "D", "D", 15)
	_ = f.SetColWidth(exportSheet, "F", "F", 40)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.Log.Error("write xlsx", logging.FieldError, err)
	}
}
