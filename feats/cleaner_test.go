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

package feats

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/cnf"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))
	tbl, err := dataset.Load(path)
	require.NoError(t, err)
	return tbl
}

const rawHeader = "Year,Month,Season,Vehicle_Type,Region,Sales,Price," +
	"Advertising_Expenditure,Unemployment_Rate,GDP\n"

// tenRowFixture has one row with a missing target (Sales) and one row
// with a missing Price inside the Sedan group.
const tenRowFixture = rawHeader +
	"2020,1,Winter,Sedan,North,120,24,40,5,70\n" +
	"2020,2,Winter,Sedan,North,130,,45,5,70\n" +
	"2020,4,Spring,Sedan,South,140,30,50,5,71\n" +
	"2020,5,Spring,SUV,North,150,36,55,5,71\n" +
	"2020,7,Summer,SUV,South,,35,60,6,72\n" +
	"2020,8,Summer,SUV,West,160,37,42,6,72\n" +
	"2020,10,Fall,Truck,East,90,41,33,6,73\n" +
	"2020,11,Fall,Truck,West,95,42,28,7,73\n" +
	"2021,1,Winter,Hatchback,Central,80,19,25,7,74\n" +
	"2021,3,Spring,Gyrocopter,North,85,21,75,7,74\n"

func TestCleanerEndToEnd(t *testing.T) {
	tbl := loadFixture(t, tenRowFixture)
	cleaner := NewCleaner(cnf.DefaultCleaning())
	cleaned, rep, err := cleaner.Run(tbl)
	require.NoError(t, err)

	assert.Equal(t, 10, rep.RowsIn)
	assert.Equal(t, 9, rep.RowsOut)
	assert.Equal(t, 1, rep.DroppedRows)
	assert.Equal(t, 9, cleaned.NumRows())

	// the missing Sedan price becomes the Sedan group median (24, 30)
	prices, err := cleaned.Floats("Price")
	require.NoError(t, err)
	assert.InDelta(t, 27.0, prices[1], 1e-9)
	assert.Equal(t, 1, rep.ImputedCells["Price"])

	// no modeling column may stay missing
	for _, col := range cnf.DefaultFeatures().Numeric {
		values, err := cleaned.Floats(col)
		require.NoError(t, err)
		for _, v := range values {
			assert.False(t, math.IsNaN(v), col)
		}
	}

	// unknown vehicle type lands in the Other bucket
	types, err := cleaned.Strings("Vehicle_Type")
	require.NoError(t, err)
	assert.Equal(t, "Other", types[8])

	// labels split around the Sales median
	labels, err := cleaned.Floats("High_Sales")
	require.NoError(t, err)
	numHigh := 0
	for _, v := range labels {
		if v == 1 {
			numHigh++
		}
	}
	assert.Equal(t, 4, numHigh)
}

func TestCleanerImputedWithinGroupRange(t *testing.T) {
	tbl := loadFixture(t, tenRowFixture)
	cleaner := NewCleaner(cnf.DefaultCleaning())
	cleaned, _, err := cleaner.Run(tbl)
	require.NoError(t, err)

	prices, err := cleaned.Floats("Price")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, prices[1], 24.0)
	assert.LessOrEqual(t, prices[1], 30.0)
}

func TestCleanerIdempotent(t *testing.T) {
	tbl := loadFixture(t, tenRowFixture)
	cleaner := NewCleaner(cnf.DefaultCleaning())
	once, _, err := cleaner.Run(tbl)
	require.NoError(t, err)

	// persist and reload to exercise the same path the CLI takes
	path := filepath.Join(t.TempDir(), "cleaned.csv")
	require.NoError(t, once.Save(path))
	reloaded, err := dataset.Load(path)
	require.NoError(t, err)

	twice, rep, err := cleaner.Run(reloaded)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.DroppedRows)
	assert.Equal(t, 0, len(rep.ImputedCells))
	assert.Equal(t, once.NumRows(), twice.NumRows())

	for _, col := range []string{"Price", "Economic_Index", "High_Sales", "Quarter"} {
		a, err := once.Floats(col)
		require.NoError(t, err)
		b, err := twice.Floats(col)
		require.NoError(t, err)
		assert.Equal(t, a, b, col)
	}
	for _, col := range []string{"Vehicle_Type", "Region", "Season", "Price_Tier", "Advertising_Category"} {
		a, err := once.Strings(col)
		require.NoError(t, err)
		b, err := twice.Strings(col)
		require.NoError(t, err)
		assert.Equal(t, a, b, col)
	}
}

func TestCleanerGlobalMedianFallback(t *testing.T) {
	csv := rawHeader +
		"2020,1,Winter,Sedan,North,120,10,40,5,70\n" +
		"2020,2,Winter,Sedan,North,130,20,45,5,70\n" +
		"2020,3,Spring,Van,South,140,,50,5,71\n"
	tbl := loadFixture(t, csv)
	cleaner := NewCleaner(cnf.DefaultCleaning())
	cleaned, _, err := cleaner.Run(tbl)
	require.NoError(t, err)

	// the Van group has no observed price, so the global median applies
	prices, err := cleaned.Floats("Price")
	require.NoError(t, err)
	assert.InDelta(t, 15.0, prices[2], 1e-9)
}

func TestCleanerDerivedColumns(t *testing.T) {
	csv := rawHeader +
		"2020,1,,Sedan,North,120,24,25,5,70\n" +
		"2020,6,,SUV,South,150,36,55,10,80\n" +
		"2020,12,,Truck,East,90,45,72,6,73\n"
	tbl := loadFixture(t, csv)
	cleaner := NewCleaner(cnf.DefaultCleaning())
	cleaned, rep, err := cleaner.Run(tbl)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.SeasonsFilled)

	seasons, err := cleaned.Strings("Season")
	require.NoError(t, err)
	assert.Equal(t, []string{"Winter", "Summer", "Winter"}, seasons)

	quarters, err := cleaned.Floats("Quarter")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 4}, quarters)

	index, err := cleaned.Floats("Economic_Index")
	require.NoError(t, err)
	assert.InDelta(t, (80.0/100)*0.5+(90.0/100)*0.5, index[1], 1e-9)

	tiers, err := cleaned.Strings("Price_Tier")
	require.NoError(t, err)
	assert.Equal(t, []string{"Budget", "Mid-Range", "Premium"}, tiers)

	adCats, err := cleaned.Strings("Advertising_Category")
	require.NoError(t, err)
	assert.Equal(t, []string{"Low", "High", "Very High"}, adCats)
}

func TestCleanerInvalidMonth(t *testing.T) {
	csv := rawHeader + "2020,13,Winter,Sedan,North,120,24,40,5,70\n"
	tbl := loadFixture(t, csv)
	cleaner := NewCleaner(cnf.DefaultCleaning())
	_, _, err := cleaner.Run(tbl)
	assert.Error(t, err)
}

func TestCleanerAllTargetsMissing(t *testing.T) {
	csv := rawHeader + "2020,1,Winter,Sedan,North,,24,40,5,70\n"
	tbl := loadFixture(t, csv)
	cleaner := NewCleaner(cnf.DefaultCleaning())
	_, _, err := cleaner.Run(tbl)
	assert.Error(t, err)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 2, 3}))
	assert.True(t, math.IsNaN(median(nil)))
}
