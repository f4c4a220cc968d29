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

// Package feats turns a raw sales table into a cleaned table and a
// model-ready feature matrix. All thresholds, grouping keys and known
// category lists come from the versioned rule table in the
// configuration so a cleaning run stays attributable to a rule set.
package feats

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/cnf"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/dataset"
	"github.com/rs/zerolog/log"
)

const (
	quarterColumn       = "Quarter"
	economicIndexColumn = "Economic_Index"
	gdpColumn           = "GDP"
	unemploymentColumn  = "Unemployment_Rate"
)

// Report summarizes what a cleaning run changed. Dropped rows are
// reported here, never treated as an error.
type Report struct {
	RulesVersion  string         `json:"rulesVersion"`
	RowsIn        int            `json:"rowsIn"`
	RowsOut       int            `json:"rowsOut"`
	DroppedRows   int            `json:"droppedRows"`
	SeasonsFilled int            `json:"seasonsFilled"`
	ImputedCells  map[string]int `json:"imputedCells"`
	RecodedCells  map[string]int `json:"recodedCells"`
	TargetMedian  float64        `json:"targetMedian"`
}

// Cleaner applies a versioned rule table to a raw table: group-median
// imputation, derived temporal and economic columns, threshold
// buckets, category canonicalization and binary target labeling.
type Cleaner struct {
	conf cnf.CleaningConf
}

func NewCleaner(conf cnf.CleaningConf) *Cleaner {
	return &Cleaner{conf: conf}
}

// median interpolates between the two middle values for even-sized
// input, matching the convention the target definition assumes.
func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func observed(values []float64) []float64 {
	ans := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			ans = append(ans, v)
		}
	}
	return ans
}

// Run cleans the table in place and returns it along with a change
// report. Running it again on its own output is a no-op.
func (c *Cleaner) Run(tbl *dataset.Table) (*dataset.Table, *Report, error) {
	rep := &Report{
		RulesVersion: c.conf.RulesVersion,
		RowsIn:       tbl.NumRows(),
		ImputedCells: make(map[string]int),
		RecodedCells: make(map[string]int),
	}

	months, err := tbl.Floats(c.conf.MonthColumn)
	if err != nil {
		return nil, nil, fmt.Errorf("cleaning failed: %w", err)
	}
	for _, v := range months {
		if math.IsNaN(v) || v < 1 || v > 12 {
			return nil, nil, fmt.Errorf("cleaning failed: invalid value in column %s", c.conf.MonthColumn)
		}
	}

	if err := c.fillSeasons(tbl, months, rep); err != nil {
		return nil, nil, err
	}
	for _, rule := range c.conf.Imputation {
		if err := c.impute(tbl, rule, rep); err != nil {
			return nil, nil, err
		}
	}
	if err := c.deriveTemporal(tbl, months); err != nil {
		return nil, nil, err
	}
	for _, rule := range c.conf.Buckets {
		if err := c.bucket(tbl, rule); err != nil {
			return nil, nil, err
		}
	}
	for _, rule := range c.conf.Categories {
		if err := c.canonicalize(tbl, rule, rep); err != nil {
			return nil, nil, err
		}
	}
	tbl, err = c.labelTarget(tbl, rep)
	if err != nil {
		return nil, nil, err
	}
	rep.RowsOut = tbl.NumRows()

	log.Info().
		Str("rulesVersion", rep.RulesVersion).
		Int("rowsIn", rep.RowsIn).
		Int("rowsOut", rep.RowsOut).
		Int("droppedRows", rep.DroppedRows).
		Msg("cleaning finished")
	return tbl, rep, nil
}

// fillSeasons recomputes the season column from the month column for
// rows where the season is missing (or the whole column is absent).
func (c *Cleaner) fillSeasons(tbl *dataset.Table, months []float64, rep *Report) error {
	seasons := make([]string, tbl.NumRows())
	if tbl.HasColumn(c.conf.SeasonColumn) {
		var err error
		seasons, err = tbl.Strings(c.conf.SeasonColumn)
		if err != nil {
			return fmt.Errorf("cleaning failed: %w", err)
		}
	}
	for i, s := range seasons {
		if s == "" {
			seasons[i] = dataset.SeasonOfMonth(int(months[i]))
			rep.SeasonsFilled++
		}
	}
	tbl.SetStrings(c.conf.SeasonColumn, seasons)
	return nil
}

// impute fills missing numeric cells with the median of the rule's
// grouping key; a group without any observed value falls back to the
// global median of the column.
func (c *Cleaner) impute(tbl *dataset.Table, rule cnf.ImputeRule, rep *Report) error {
	values, err := tbl.Floats(rule.Column)
	if err != nil {
		return fmt.Errorf("cleaning failed: %w", err)
	}
	groups, err := tbl.Strings(rule.GroupBy)
	if err != nil {
		return fmt.Errorf("cleaning failed: %w", err)
	}

	byGroup := make(map[string][]float64)
	for i, v := range values {
		if !math.IsNaN(v) {
			byGroup[groups[i]] = append(byGroup[groups[i]], v)
		}
	}
	globalMedian := median(observed(values))
	if math.IsNaN(globalMedian) {
		return fmt.Errorf("cleaning failed: column %s has no observed values", rule.Column)
	}

	for i, v := range values {
		if !math.IsNaN(v) {
			continue
		}
		m := median(byGroup[groups[i]])
		if math.IsNaN(m) {
			m = globalMedian
		}
		values[i] = m
		rep.ImputedCells[rule.Column]++
	}
	tbl.SetFloats(rule.Column, values)
	return nil
}

// deriveTemporal adds the quarter and the composite economic index.
func (c *Cleaner) deriveTemporal(tbl *dataset.Table, months []float64) error {
	quarters := make([]int, len(months))
	for i, m := range months {
		quarters[i] = (int(m)-1)/3 + 1
	}
	tbl.SetInts(quarterColumn, quarters)

	gdp, err := tbl.Floats(gdpColumn)
	if err != nil {
		return fmt.Errorf("cleaning failed: %w", err)
	}
	unemployment, err := tbl.Floats(unemploymentColumn)
	if err != nil {
		return fmt.Errorf("cleaning failed: %w", err)
	}
	index := make([]float64, len(gdp))
	for i := range gdp {
		index[i] = (gdp[i]/100)*0.5 + ((100-unemployment[i])/100)*0.5
	}
	tbl.SetFloats(economicIndexColumn, index)
	return nil
}

// bucket derives a categorical column from numeric thresholds. The
// last bucket is open-ended so no value can fall outside the rule.
func (c *Cleaner) bucket(tbl *dataset.Table, rule cnf.BucketRule) error {
	if len(rule.Labels) != len(rule.Bounds)+1 {
		return fmt.Errorf("cleaning failed: bucket rule %s has %d labels for %d bounds",
			rule.Target, len(rule.Labels), len(rule.Bounds))
	}
	values, err := tbl.Floats(rule.Source)
	if err != nil {
		return fmt.Errorf("cleaning failed: %w", err)
	}
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = rule.Labels[len(rule.Bounds)]
		for j, bound := range rule.Bounds {
			if v < bound {
				labels[i] = rule.Labels[j]
				break
			}
		}
	}
	tbl.SetStrings(rule.Target, labels)
	return nil
}

// canonicalize maps every value outside the rule's known list (missing
// cells included) to the explicit Other bucket.
func (c *Cleaner) canonicalize(tbl *dataset.Table, rule cnf.LookupRule, rep *Report) error {
	values, err := tbl.Strings(rule.Column)
	if err != nil {
		return fmt.Errorf("cleaning failed: %w", err)
	}
	for i, v := range values {
		if !slices.Contains(rule.Known, v) {
			values[i] = rule.Other
			rep.RecodedCells[rule.Column]++
		}
	}
	tbl.SetStrings(rule.Column, values)
	return nil
}

// labelTarget computes the binary label from the source column median
// and drops rows where the source value is missing.
func (c *Cleaner) labelTarget(tbl *dataset.Table, rep *Report) (*dataset.Table, error) {
	values, err := tbl.Floats(c.conf.Target.Source)
	if err != nil {
		return nil, fmt.Errorf("cleaning failed: %w", err)
	}
	keep := make([]int, 0, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("cleaning failed: column %s has no observed values", c.conf.Target.Source)
	}
	if len(keep) < tbl.NumRows() {
		rep.DroppedRows = tbl.NumRows() - len(keep)
		tbl = tbl.Subset(keep)
		values, err = tbl.Floats(c.conf.Target.Source)
		if err != nil {
			return nil, fmt.Errorf("cleaning failed: %w", err)
		}
	}
	med := median(values)
	rep.TargetMedian = med
	labels := make([]int, len(values))
	for i, v := range values {
		if v > med {
			labels[i] = 1
		}
	}
	tbl.SetInts(c.conf.Target.Column, labels)
	return tbl, nil
}
