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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/dataset"
	"github.com/rs/zerolog/log"
)

// Summary collects everything one analyze run produced.
type Summary struct {
	NumRows      int
	Results      []*QueryResult
	Correlations *QueryResult
	WorkbookPath string
}

// Run loads the table into an in-memory database, executes the
// exploratory queries and the correlation analysis, and writes one
// CSV per result plus an XLSX workbook into outDir.
func Run(tbl *dataset.Table, numericColumns []string, outDir string) (*Summary, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to run analysis: %w", err)
	}
	database, err := OpenDatabase()
	if err != nil {
		return nil, err
	}
	defer database.Close()
	if err := database.ImportTable(tbl); err != nil {
		return nil, err
	}

	summary := &Summary{NumRows: tbl.NumRows()}
	for _, query := range EDAQueries {
		result, err := database.RunQuery(query)
		if err != nil {
			return nil, err
		}
		if err := writeResultCSV(result, outDir); err != nil {
			return nil, err
		}
		log.Info().
			Str("query", query.Name).
			Int("numRows", len(result.Rows)).
			Msg("finished query")
		summary.Results = append(summary.Results, result)
	}

	correlations, err := CorrelationMatrix(tbl, numericColumns)
	if err != nil {
		return nil, err
	}
	if err := writeResultCSV(correlations, outDir); err != nil {
		return nil, err
	}
	summary.Correlations = correlations

	summary.WorkbookPath = filepath.Join(outDir, "analysis.xlsx")
	if err := writeWorkbook(summary, summary.WorkbookPath); err != nil {
		return nil, err
	}
	return summary, nil
}

func writeResultCSV(result *QueryResult, outDir string) error {
	path := filepath.Join(outDir, result.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", result.Name, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(result.Columns); err != nil {
		return fmt.Errorf("failed to write %s: %w", result.Name, err)
	}
	if err := w.WriteAll(result.Rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", result.Name, err)
	}
	w.Flush()
	return w.Error()
}
