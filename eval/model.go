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

// Package eval trains and scores the two classifier families on an
// identical feature matrix and picks the better one.
package eval

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/eval/logit"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/eval/predict"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/eval/rf"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/feats"
)

var ErrNoSuchModel = errors.New("no such model")

// MLModel is a generalization of a binary classifier over the tabular
// feature matrix. Both model families train on the identical matrix;
// the only comparison variable is the family itself.
type MLModel interface {
	Train(ctx context.Context, fs *feats.FeatureSet, rows []int) error
	Predict(features []float64) predict.Prediction
	SetClassThreshold(v float64)
	GetClassThreshold() float64
	SaveToFile(filePath string) error
	GetInfo() string
	Name() string
}

// LoadModel restores a saved model artifact, inferring the model
// family from the file name written by the trainer.
func LoadModel(modelPath string) (MLModel, error) {
	switch {
	case strings.HasSuffix(modelPath, ".logreg.json"):
		return logit.LoadFromFile(modelPath)
	case strings.HasSuffix(modelPath, ".rf.json"):
		return rf.LoadFromFile(modelPath)
	}
	return nil, fmt.Errorf("cannot load %s: %w", modelPath, ErrNoSuchModel)
}

// PrecAndRecall is a single point of the decision threshold sweep.
type PrecAndRecall struct {
	Precision float64
	Recall    float64
	FBeta     float64
}

func (pr PrecAndRecall) CSV(x float64) string {
	return fmt.Sprintf("%.2f;%.2f;%.2f;%.2f", x, pr.Precision, pr.Recall, pr.FBeta)
}
