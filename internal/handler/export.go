package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"potion-shop/internal/store"
	"potion-shop/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出药水清单
type ExportHandler struct {
	Potions *store.PotionStore
}

func NewExportHandler(potions *store.PotionStore) *ExportHandler {
	return &ExportHandler{Potions: potions}
}

var exportHeaders = []string{
	"id", "name", "price", "score", "vendor_id",
	"strength", "flavor", "ingredients", "categories", "try_date",
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ExportCSV 导出药水为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	potions, err := h.Potions.All()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not export potions")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"potions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range potions {
		p := &potions[i]
		writer.Write([]string{
			p.ID,
			p.Name,
			formatFloat(p.Price),
			formatFloat(p.Score),
			p.VendorID,
			formatFloat(p.Ratings.Strength),
			formatFloat(p.Ratings.Flavor),
			strings.Join(p.Ingredients, ";"),
			strings.Join(p.Categories, ";"),
			p.TryDate.Format("2006-01-02"),
		})
	}
}

// ExportXLSX 导出药水为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	potions, err := h.Potions.All()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not export potions")
		return
	}

	f := excelize.NewFile()
	sheetName := "Potions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "could not create sheet")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range potions {
		p := &potions[idx]
		row := idx + 2
		values := []interface{}{
			p.ID,
			p.Name,
			p.Price,
			p.Score,
			p.VendorID,
			p.Ratings.Strength,
			p.Ratings.Flavor,
			strings.Join(p.Ingredients, ";"),
			strings.Join(p.Categories, ";"),
			p.TryDate.Format("2006-01-02"),
		}
		for i, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "H", "I", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"potions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "could not export potions")
	}
}
