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

package eval

import (
	"context"
	"testing"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/eval/predict"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/feats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedVotesModel replays a prepared vote for each row; the row index
// travels in the single feature column.
type fixedVotesModel struct {
	votes     []float64
	threshold float64
}

func (m *fixedVotesModel) Train(ctx context.Context, fs *feats.FeatureSet, rows []int) error {
	return nil
}

func (m *fixedVotesModel) Predict(features []float64) predict.Prediction {
	vote := m.votes[int(features[0])]
	var class int
	if vote >= m.threshold {
		class = 1
	}
	return predict.Prediction{
		Votes:          []float64{1 - vote, vote},
		PredictedClass: class,
	}
}

func (m *fixedVotesModel) SetClassThreshold(v float64) { m.threshold = v }
func (m *fixedVotesModel) GetClassThreshold() float64  { return m.threshold }
func (m *fixedVotesModel) SaveToFile(string) error     { return nil }
func (m *fixedVotesModel) GetInfo() string             { return "fixed votes" }
func (m *fixedVotesModel) Name() string                { return "fixed" }

func indexedFeatureSet(labels []int) *feats.FeatureSet {
	fs := &feats.FeatureSet{
		Columns: []string{"idx"},
		Labels:  labels,
		Matrix:  make([][]float64, len(labels)),
	}
	for i := range labels {
		fs.Matrix[i] = []float64{float64(i)}
	}
	return fs
}

func allRows(fs *feats.FeatureSet) []int {
	rows := make([]int, fs.Len())
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestEvaluateModelTextbookValues(t *testing.T) {
	fs := indexedFeatureSet([]int{1, 1, 1, 0, 0})
	model := &fixedVotesModel{
		votes:     []float64{0.9, 0.4, 0.8, 0.3, 0.6},
		threshold: 0.5,
	}
	scores, err := EvaluateModel(model, fs, allRows(fs))
	require.NoError(t, err)

	assert.Equal(t, 2, scores.Confusion.TruePositives)
	assert.Equal(t, 1, scores.Confusion.FalsePositives)
	assert.Equal(t, 1, scores.Confusion.TrueNegatives)
	assert.Equal(t, 1, scores.Confusion.FalseNegatives)
	assert.Equal(t, 5, scores.Confusion.Total())

	assert.InDelta(t, 0.6, scores.Accuracy, 1e-9)
	assert.InDelta(t, 2.0/3, scores.Precision, 1e-9)
	assert.InDelta(t, 2.0/3, scores.Recall, 1e-9)
	assert.InDelta(t, 2.0/3, scores.F1, 1e-9)
	assert.InDelta(t, 5.0/6, scores.ROCAUC, 1e-9)
}

func TestEvaluateModelSingleClassFails(t *testing.T) {
	fs := indexedFeatureSet([]int{1, 1, 1})
	model := &fixedVotesModel{votes: []float64{0.9, 0.8, 0.7}, threshold: 0.5}
	_, err := EvaluateModel(model, fs, allRows(fs))
	assert.Error(t, err)
}

func TestROCAUCPerfectRanking(t *testing.T) {
	assert.InDelta(t, 1.0, rocAUC([]float64{0.1, 0.2, 0.8, 0.9}, []int{0, 0, 1, 1}), 1e-9)
	assert.InDelta(t, 0.0, rocAUC([]float64{0.9, 0.8, 0.2, 0.1}, []int{0, 0, 1, 1}), 1e-9)
}

func TestROCAUCTiesAverageOut(t *testing.T) {
	// all votes identical: every positive/negative pair is a tie
	assert.InDelta(t, 0.5, rocAUC([]float64{0.5, 0.5, 0.5, 0.5}, []int{0, 1, 0, 1}), 1e-9)
}

func TestPrecisionAndRecallAtThreshold(t *testing.T) {
	fs := indexedFeatureSet([]int{1, 1, 0, 0})
	model := &fixedVotesModel{votes: []float64{0.9, 0.6, 0.7, 0.2}, threshold: 0.5}

	precall := PrecisionAndRecall(model, fs, allRows(fs))
	assert.InDelta(t, 2.0/3, precall.Precision, 1e-9)
	assert.InDelta(t, 1.0, precall.Recall, 1e-9)

	model.SetClassThreshold(0.8)
	precall = PrecisionAndRecall(model, fs, allRows(fs))
	assert.InDelta(t, 1.0, precall.Precision, 1e-9)
	assert.InDelta(t, 0.5, precall.Recall, 1e-9)
}

func TestPrecAndRecallCSV(t *testing.T) {
	pr := PrecAndRecall{Precision: 0.75, Recall: 0.5, FBeta: 0.6}
	assert.Equal(t, "0.55;0.75;0.50;0.60", pr.CSV(0.55))
}

func TestBestModelArgmax(t *testing.T) {
	models := []ModelResult{
		{Name: "logreg", Scores: Scores{Accuracy: 0.81, ROCAUC: 0.9}},
		{Name: "rf", Scores: Scores{Accuracy: 0.85, ROCAUC: 0.8}},
	}
	assert.Equal(t, "rf", bestModel(models))

	// accuracy tie goes to the higher ROC-AUC
	models[0].Scores.Accuracy = 0.85
	assert.Equal(t, "logreg", bestModel(models))
}
