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

package dataset

import (
	"fmt"
	"os"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is an ordered collection of records sharing a fixed schema.
// It wraps a gota dataframe; row order is preserved through all
// operations so the cleaned output lines up with the source file.
type Table struct {
	df dataframe.DataFrame
}

// Load reads a headered CSV file into a Table. Empty cells and the
// usual NA spellings become missing values.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load table: %w", err)
	}
	defer f.Close()
	df := dataframe.ReadCSV(
		f,
		dataframe.HasHeader(true),
		dataframe.NaNValues([]string{"", "NA", "NaN", "null"}),
	)
	if df.Error() != nil {
		return nil, fmt.Errorf("failed to load table: %w", df.Error())
	}
	return &Table{df: df}, nil
}

// FromDataFrame wraps an existing dataframe.
func FromDataFrame(df dataframe.DataFrame) *Table {
	return &Table{df: df}
}

// Save writes the table as a headered CSV file.
func (t *Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save table: %w", err)
	}
	defer f.Close()
	if err := t.df.WriteCSV(f); err != nil {
		return fmt.Errorf("failed to save table: %w", err)
	}
	return nil
}

func (t *Table) DataFrame() dataframe.DataFrame {
	return t.df
}

func (t *Table) NumRows() int {
	return t.df.Nrow()
}

func (t *Table) Names() []string {
	return t.df.Names()
}

func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.df.Names(), name)
}

// Floats returns a numeric column with NaN marking missing values.
func (t *Table) Floats(name string) ([]float64, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("no such column: %s", name)
	}
	return t.df.Col(name).Float(), nil
}

// Strings returns a categorical column with "" marking missing values.
func (t *Table) Strings(name string) ([]string, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("no such column: %s", name)
	}
	col := t.df.Col(name)
	ans := make([]string, col.Len())
	for i := 0; i < col.Len(); i++ {
		el := col.Elem(i)
		if el.IsNA() {
			continue
		}
		ans[i] = el.String()
	}
	return ans, nil
}

// SetFloats replaces or appends a numeric column.
func (t *Table) SetFloats(name string, values []float64) {
	t.df = t.df.Mutate(series.New(values, series.Float, name))
}

// SetInts replaces or appends an integer column.
func (t *Table) SetInts(name string, values []int) {
	t.df = t.df.Mutate(series.New(values, series.Int, name))
}

// SetStrings replaces or appends a categorical column.
func (t *Table) SetStrings(name string, values []string) {
	t.df = t.df.Mutate(series.New(values, series.String, name))
}

// Subset keeps only the rows at the given positions, in the given
// order.
func (t *Table) Subset(indexes []int) *Table {
	return &Table{df: t.df.Subset(indexes)}
}

// NumMissing counts missing values in a column.
func (t *Table) NumMissing(name string) int {
	if !t.HasColumn(name) {
		return 0
	}
	col := t.df.Col(name)
	ans := 0
	for i := 0; i < col.Len(); i++ {
		if col.Elem(i).IsNA() {
			ans++
		}
	}
	return ans
}
