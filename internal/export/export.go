// Package export writes the tracked-items list to a spreadsheet so
// users can take their list elsewhere.
package export

import (
	"fmt"
	"io"

	"github.com/mroshb/watch_club/internal/models"
	"github.com/xuri/excelize/v2"
)

var columns = []string{"Title", "Status", "Rating", "My Rating", "Added"}

// WriteXLSX writes one sheet with a header row and one row per item,
// in the order given.
func WriteXLSX(w io.Writer, items []models.TrackedItem) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for row, it := range items {
		rating := ""
		if it.ExternalRating != nil {
			rating = fmt.Sprintf("%.1f", *it.ExternalRating)
		}
		myRating := ""
		if it.UserRating > 0 {
			myRating = fmt.Sprintf("%.1f", it.UserRating)
		}

		values := []interface{}{
			it.Title,
			it.Status,
			rating,
			myRating,
			it.AddedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
