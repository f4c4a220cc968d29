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

// Package logit implements the linear model family: a logistic
// regression expressed as a single sigmoid unit so both model
// families share the same prediction surface.
package logit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/eval/predict"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/feats"
	deep "github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
	"github.com/rs/zerolog/log"
)

// FeatureStats keeps the observed range of one feature column. The
// ranges come from the training partition and are stored with the
// model so inference scales new rows the same way.
type FeatureStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type jsonizedModel struct {
	NeuralNet      *deep.Dump     `json:"neuralNet"`
	DataRanges     []FeatureStats `json:"dataRanges"`
	ClassThreshold float64        `json:"classThreshold"`
	Epochs         int            `json:"epochs"`
	LearningRate   float64        `json:"learningRate"`
}

type Model struct {
	NeuralNet      *deep.Neural
	DataRanges     []FeatureStats
	ClassThreshold float64
	Epochs         int
	LearningRate   float64
}

func NewModel(epochs int, learningRate, classThreshold float64) *Model {
	return &Model{
		Epochs:         epochs,
		LearningRate:   learningRate,
		ClassThreshold: classThreshold,
	}
}

func (m *Model) Name() string {
	return "logreg"
}

func (m *Model) GetInfo() string {
	return fmt.Sprintf("logistic regression, epochs: %d, learning rate: %.4f", m.Epochs, m.LearningRate)
}

func (m *Model) GetClassThreshold() float64 {
	return m.ClassThreshold
}

func (m *Model) SetClassThreshold(v float64) {
	m.ClassThreshold = v
}

func (m *Model) dataStats(rows training.Examples) []FeatureStats {
	if len(rows) == 0 {
		return nil
	}
	stats := make([]FeatureStats, len(rows[0].Input))
	for i := range stats {
		stats[i] = FeatureStats{Min: rows[0].Input[i], Max: rows[0].Input[i]}
	}
	for _, item := range rows {
		for i, v := range item.Input {
			if v > stats[i].Max {
				stats[i].Max = v
			}
			if v < stats[i].Min {
				stats[i].Min = v
			}
		}
	}
	return stats
}

func (m *Model) normalize(data []float64) {
	for i := range data {
		min := m.DataRanges[i].Min
		max := m.DataRanges[i].Max
		if max == min {
			data[i] = 0
		} else {
			data[i] = (data[i] - min) / (max - min)
		}
	}
}

// Train fits the sigmoid unit on the selected rows of the feature set.
func (m *Model) Train(ctx context.Context, fs *feats.FeatureSet, rows []int) error {
	if len(rows) == 0 {
		return fmt.Errorf("no training data provided")
	}
	if ctx != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	examples := make(training.Examples, 0, len(rows))
	for _, row := range rows {
		examples = append(examples, training.Example{
			Input:    slices.Clone(fs.Matrix[row]),
			Response: []float64{float64(fs.Labels[row])},
		})
	}
	m.DataRanges = m.dataStats(examples)
	for _, item := range examples {
		m.normalize(item.Input)
	}

	m.NeuralNet = deep.NewNeural(&deep.Config{
		Inputs:     fs.NumFeatures(),
		Layout:     []int{1},
		Activation: deep.ActivationSigmoid,
		Mode:       deep.ModeBinary,
		Weight:     deep.NewUniform(0.5, 0),
		Bias:       true,
	})
	optimizer := training.NewAdam(m.LearningRate, 0.9, 0.999, 1e-8)
	trainer := training.NewTrainer(optimizer, 0)
	trainer.Train(m.NeuralNet, examples, nil, m.Epochs)

	log.Debug().
		Int("rows", len(rows)).
		Int("epochs", m.Epochs).
		Msg("trained logistic regression")
	return nil
}

func (m *Model) Predict(features []float64) predict.Prediction {
	x := slices.Clone(features)
	m.normalize(x)
	out := m.NeuralNet.Predict(x)
	var class int
	if out[0] >= m.ClassThreshold {
		class = 1
	}
	return predict.Prediction{
		Votes:          []float64{1 - out[0], out[0]},
		PredictedClass: class,
	}
}

// SaveToFile stores the model as a JSON artifact.
func (m *Model) SaveToFile(filePath string) error {
	tmpModel := jsonizedModel{
		NeuralNet:      m.NeuralNet.Dump(),
		DataRanges:     m.DataRanges,
		ClassThreshold: m.ClassThreshold,
		Epochs:         m.Epochs,
		LearningRate:   m.LearningRate,
	}
	data, err := json.Marshal(tmpModel)
	if err != nil {
		return fmt.Errorf("failed to save logreg model: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to save logreg model: %w", err)
	}
	return nil
}

// LoadFromFile restores a model saved by SaveToFile.
func LoadFromFile(filePath string) (*Model, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load logreg model: %w", err)
	}
	var tmpModel jsonizedModel
	if err := json.Unmarshal(data, &tmpModel); err != nil {
		return nil, fmt.Errorf("failed to load logreg model: %w", err)
	}
	return &Model{
		NeuralNet:      deep.FromDump(tmpModel.NeuralNet),
		DataRanges:     tmpModel.DataRanges,
		ClassThreshold: tmpModel.ClassThreshold,
		Epochs:         tmpModel.Epochs,
		LearningRate:   tmpModel.LearningRate,
	}, nil
}
