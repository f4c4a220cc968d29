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

// Package rf implements the ensemble tree model family on top of a
// random forest classifier.
package rf

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/eval/predict"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/feats"
	randomforest "github.com/malaschitz/randomForest"
	"github.com/rs/zerolog/log"
)

type jsonizedModel struct {
	Forest         json.RawMessage `json:"forest"`
	NumTrees       int             `json:"numTrees"`
	ClassThreshold float64         `json:"classThreshold"`
}

type Model struct {
	Forest         *randomforest.Forest
	NumTrees       int
	ClassThreshold float64
}

func NewModel(numTrees int, classThreshold float64) *Model {
	return &Model{
		Forest:         &randomforest.Forest{},
		NumTrees:       numTrees,
		ClassThreshold: classThreshold,
	}
}

func (m *Model) Name() string {
	return "rf"
}

func (m *Model) GetInfo() string {
	return fmt.Sprintf("random forest, num. trees: %d", m.NumTrees)
}

func (m *Model) GetClassThreshold() float64 {
	return m.ClassThreshold
}

func (m *Model) SetClassThreshold(v float64) {
	m.ClassThreshold = v
}

// Train grows the forest on the selected rows of the feature set.
func (m *Model) Train(ctx context.Context, fs *feats.FeatureSet, rows []int) error {
	if len(rows) == 0 {
		return fmt.Errorf("no training data provided")
	}
	if m.NumTrees <= 0 {
		return fmt.Errorf("failed to train RF model - invalid value of NumTrees")
	}
	if ctx != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	xData := make([][]float64, 0, len(rows))
	yData := make([]int, 0, len(rows))
	numPositive := 0
	for _, row := range rows {
		xData = append(xData, fs.Matrix[row])
		yData = append(yData, fs.Labels[row])
		if fs.Labels[row] == 1 {
			numPositive++
		}
	}
	log.Debug().
		Int("numPositive", numPositive).
		Int("dataSize", len(rows)).
		Msg("prepared training vectors")

	data := randomforest.ForestData{
		X:     xData,
		Class: yData,
	}
	// a bulk Train call grows all trees in parallel goroutines drawing
	// bootstrap samples from the shared rand source, so repeated seeded
	// runs diverge; single-tree forests grown one at a time keep the
	// draw order fixed and their collected trees vote the same way
	for i := 0; i < m.NumTrees; i++ {
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		one := &randomforest.Forest{Data: data}
		one.Train(1)
		if i == 0 {
			m.Forest = one
		} else {
			m.Forest.Trees = append(m.Forest.Trees, one.Trees...)
		}
	}
	m.Forest.NTrees = len(m.Forest.Trees)
	return nil
}

func (m *Model) Predict(features []float64) predict.Prediction {
	votes := m.Forest.Vote(features)
	var class int
	if votes[1] >= m.ClassThreshold {
		class = 1
	}
	return predict.Prediction{
		Votes:          votes,
		PredictedClass: class,
	}
}

// SaveToFile stores the model as a JSON artifact.
func (m *Model) SaveToFile(filePath string) error {
	forestData, err := json.Marshal(m.Forest)
	if err != nil {
		return fmt.Errorf("failed to save RF model: %w", err)
	}
	tmpModel := jsonizedModel{
		Forest:         forestData,
		NumTrees:       m.NumTrees,
		ClassThreshold: m.ClassThreshold,
	}
	data, err := json.Marshal(tmpModel)
	if err != nil {
		return fmt.Errorf("failed to save RF model: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to save RF model: %w", err)
	}
	return nil
}

// LoadFromFile restores a model saved by SaveToFile.
func LoadFromFile(filePath string) (*Model, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load RF model: %w", err)
	}
	var tmpModel jsonizedModel
	if err := json.Unmarshal(data, &tmpModel); err != nil {
		return nil, fmt.Errorf("failed to load RF model: %w", err)
	}
	forest := &randomforest.Forest{}
	if err := json.Unmarshal(tmpModel.Forest, forest); err != nil {
		return nil, fmt.Errorf("failed to load RF model: %w", err)
	}
	return &Model{
		Forest:         forest,
		NumTrees:       tmpModel.NumTrees,
		ClassThreshold: tmpModel.ClassThreshold,
	}, nil
}
