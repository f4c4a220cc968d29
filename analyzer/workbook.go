// Copyright 2025 Maple Leaf Latte <mapleleaflatte03@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook renders the whole analysis as one spreadsheet: an
// overview sheet, one sheet per query and the correlation matrix.
func writeWorkbook(summary *Summary, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const overview = "Overview"
	if err := f.SetSheetName("Sheet1", overview); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	f.SetCellValue(overview, "A1", "Automotive Sales Analysis")
	f.SetCellValue(overview, "A3", "Rows analyzed")
	f.SetCellValue(overview, "B3", summary.NumRows)
	f.SetCellValue(overview, "A4", "Queries")
	f.SetCellValue(overview, "B4", len(summary.Results))
	for i, result := range summary.Results {
		f.SetCellValue(overview, fmt.Sprintf("A%d", 6+i), result.Name)
		f.SetCellValue(overview, fmt.Sprintf("B%d", 6+i), len(result.Rows))
	}

	sheets := append([]*QueryResult{}, summary.Results...)
	if summary.Correlations != nil {
		sheets = append(sheets, summary.Correlations)
	}
	for _, result := range sheets {
		if err := writeResultSheet(f, result); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeResultSheet(f *excelize.File, result *QueryResult) error {
	if _, err := f.NewSheet(result.Name); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	for col, name := range result.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		f.SetCellValue(result.Name, cell, name)
	}
	for row, record := range result.Rows {
		for col, value := range record {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("failed to write workbook: %w", err)
			}
			if num, err := strconv.ParseFloat(value, 64); err == nil {
				f.SetCellValue(result.Name, cell, num)
			} else {
				f.SetCellValue(result.Name, cell, value)
			}
		}
	}
	return nil
}
