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
	"fmt"
	"math"
	"os"
	"slices"
	"sort"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/cnf"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/dataset"
	"github.com/vmihailenco/msgpack/v5"
)

// FeatureSet is a model-ready matrix plus everything needed to encode
// new rows the same way: column order and the per-column vocabularies
// used for label encoding. It serializes to a msgpack file between the
// featurize and train steps.
type FeatureSet struct {
	RulesVersion string              `msgpack:"rulesVersion"`
	Columns      []string            `msgpack:"columns"`
	Vocabs       map[string][]string `msgpack:"vocabs"`
	Matrix       [][]float64         `msgpack:"matrix"`
	Labels       []int               `msgpack:"labels"`
}

func (fs *FeatureSet) Len() int {
	return len(fs.Matrix)
}

func (fs *FeatureSet) NumFeatures() int {
	return len(fs.Columns)
}

// EncodeCategory maps a raw categorical value to its label-encoded
// index. Values outside the stored vocabulary resolve to the Other
// entry when present, otherwise to 0.
func (fs *FeatureSet) EncodeCategory(column, value string) float64 {
	vocab := fs.Vocabs[column]
	if idx := slices.Index(vocab, value); idx >= 0 {
		return float64(idx)
	}
	if idx := slices.Index(vocab, "Other"); idx >= 0 {
		return float64(idx)
	}
	return 0
}

// Save writes the feature set as a msgpack file.
func (fs *FeatureSet) Save(path string) error {
	data, err := msgpack.Marshal(fs)
	if err != nil {
		return fmt.Errorf("failed to save feature set: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save feature set: %w", err)
	}
	return nil
}

// LoadFeatureSet reads a msgpack feature file written by Save.
func LoadFeatureSet(path string) (*FeatureSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load feature set: %w", err)
	}
	var fs FeatureSet
	if err := msgpack.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("failed to load feature set: %w", err)
	}
	return &fs, nil
}

// BuildFeatureSet converts a cleaned table to a feature matrix:
// numeric columns pass through, categorical columns are label-encoded
// against a sorted vocabulary so the encoding is stable across runs.
// The table must be cleaned first; a missing value anywhere in the
// selected columns is an error.
func BuildFeatureSet(
	tbl *dataset.Table,
	conf cnf.FeaturesConf,
	target string,
	rulesVersion string,
) (*FeatureSet, error) {
	numRows := tbl.NumRows()
	if numRows == 0 {
		return nil, fmt.Errorf("failed to build features: empty table")
	}

	fs := &FeatureSet{
		RulesVersion: rulesVersion,
		Columns:      slices.Concat(conf.Numeric, conf.Categorical),
		Vocabs:       make(map[string][]string),
		Matrix:       make([][]float64, numRows),
		Labels:       make([]int, numRows),
	}
	for i := range fs.Matrix {
		fs.Matrix[i] = make([]float64, 0, len(fs.Columns))
	}

	for _, col := range conf.Numeric {
		values, err := tbl.Floats(col)
		if err != nil {
			return nil, fmt.Errorf("failed to build features: %w", err)
		}
		for i, v := range values {
			if math.IsNaN(v) {
				return nil, fmt.Errorf(
					"failed to build features: column %s contains missing values, clean the table first", col)
			}
			fs.Matrix[i] = append(fs.Matrix[i], v)
		}
	}

	for _, col := range conf.Categorical {
		values, err := tbl.Strings(col)
		if err != nil {
			return nil, fmt.Errorf("failed to build features: %w", err)
		}
		vocabSet := make(map[string]bool)
		for _, v := range values {
			vocabSet[v] = true
		}
		vocab := make([]string, 0, len(vocabSet))
		for v := range vocabSet {
			vocab = append(vocab, v)
		}
		sort.Strings(vocab)
		fs.Vocabs[col] = vocab
		for i, v := range values {
			fs.Matrix[i] = append(fs.Matrix[i], fs.EncodeCategory(col, v))
		}
	}

	labels, err := tbl.Floats(target)
	if err != nil {
		return nil, fmt.Errorf("failed to build features: %w", err)
	}
	for i, v := range labels {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("failed to build features: non-binary label in column %s", target)
		}
		fs.Labels[i] = int(v)
	}
	return fs, nil
}
