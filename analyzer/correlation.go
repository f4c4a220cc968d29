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

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/dataset"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix computes pairwise Pearson correlations over the
// listed numeric columns; columns absent from the table are skipped
// so the analysis also works on a raw table without derived columns.
func CorrelationMatrix(tbl *dataset.Table, columns []string) (*QueryResult, error) {
	present := make([]string, 0, len(columns))
	data := make([][]float64, 0, len(columns))
	for _, col := range columns {
		if !tbl.HasColumn(col) {
			continue
		}
		values, err := tbl.Floats(col)
		if err != nil {
			return nil, fmt.Errorf("failed to compute correlations: %w", err)
		}
		present = append(present, col)
		data = append(data, values)
	}
	if len(present) < 2 {
		return nil, fmt.Errorf("failed to compute correlations: fewer than two numeric columns available")
	}

	result := &QueryResult{
		Name:    "correlation_matrix",
		Columns: append([]string{"Column"}, present...),
	}
	for i, col := range present {
		record := make([]string, 0, len(present)+1)
		record = append(record, col)
		for j := range present {
			r := stat.Correlation(data[i], data[j], nil)
			record = append(record, strconv.FormatFloat(r, 'f', 4, 64))
		}
		result.Rows = append(result.Rows, record)
	}
	return result, nil
}
