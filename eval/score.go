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
	"fmt"
	"sort"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/feats"
)

// ConfusionMatrix holds the four outcome counts of a binary
// classifier on a test partition; the counts always sum to the
// partition size.
type ConfusionMatrix struct {
	TruePositives  int `json:"truePositives"`
	FalsePositives int `json:"falsePositives"`
	TrueNegatives  int `json:"trueNegatives"`
	FalseNegatives int `json:"falseNegatives"`
}

func (cm ConfusionMatrix) Total() int {
	return cm.TruePositives + cm.FalsePositives + cm.TrueNegatives + cm.FalseNegatives
}

// Scores bundles the standard evaluation metrics of one model run.
type Scores struct {
	Accuracy  float64         `json:"accuracy"`
	Precision float64         `json:"precision"`
	Recall    float64         `json:"recall"`
	F1        float64         `json:"f1"`
	ROCAUC    float64         `json:"rocAuc"`
	Confusion ConfusionMatrix `json:"confusionMatrix"`
}

// EvaluateModel scores a trained model on the given rows of the
// feature set. It refuses a single-class partition - the metrics
// would be meaningless.
func EvaluateModel(model MLModel, fs *feats.FeatureSet, rows []int) (Scores, error) {
	if err := requireBothClasses(fs.Labels, rows); err != nil {
		return Scores{}, fmt.Errorf("cannot evaluate model: %w", err)
	}
	var scores Scores
	votes := make([]float64, len(rows))
	truth := make([]int, len(rows))
	for i, row := range rows {
		prediction := model.Predict(fs.Matrix[row])
		votes[i] = prediction.PositiveVote()
		truth[i] = fs.Labels[row]
		switch {
		case prediction.PredictedClass == 1 && truth[i] == 1:
			scores.Confusion.TruePositives++
		case prediction.PredictedClass == 1 && truth[i] == 0:
			scores.Confusion.FalsePositives++
		case prediction.PredictedClass == 0 && truth[i] == 0:
			scores.Confusion.TrueNegatives++
		default:
			scores.Confusion.FalseNegatives++
		}
	}
	cm := scores.Confusion
	scores.Accuracy = float64(cm.TruePositives+cm.TrueNegatives) / float64(cm.Total())
	if cm.TruePositives+cm.FalsePositives > 0 {
		scores.Precision = float64(cm.TruePositives) / float64(cm.TruePositives+cm.FalsePositives)
	}
	if cm.TruePositives+cm.FalseNegatives > 0 {
		scores.Recall = float64(cm.TruePositives) / float64(cm.TruePositives+cm.FalseNegatives)
	}
	if scores.Precision+scores.Recall > 0 {
		scores.F1 = 2 * scores.Precision * scores.Recall / (scores.Precision + scores.Recall)
	}
	scores.ROCAUC = rocAUC(votes, truth)
	return scores, nil
}

// rocAUC computes the area under the ROC curve via the rank-sum
// identity, averaging ranks over tied votes.
func rocAUC(votes []float64, truth []int) float64 {
	n := len(votes)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return votes[order[a]] < votes[order[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && votes[order[j]] == votes[order[i]] {
			j++
		}
		avgRank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = avgRank
		}
		i = j
	}

	numPositive := 0
	rankSum := 0.0
	for i, label := range truth {
		if label == 1 {
			numPositive++
			rankSum += ranks[i]
		}
	}
	numNegative := n - numPositive
	if numPositive == 0 || numNegative == 0 {
		return 0
	}
	return (rankSum - float64(numPositive)*float64(numPositive+1)/2) /
		(float64(numPositive) * float64(numNegative))
}

// PrecisionAndRecall recomputes precision/recall of a model at its
// current decision threshold over the given rows.
func PrecisionAndRecall(model MLModel, fs *feats.FeatureSet, rows []int) PrecAndRecall {
	numTruePositives := 0
	numRelevant := 0
	numRetrieved := 0
	for _, row := range rows {
		prediction := model.Predict(fs.Matrix[row])
		if fs.Labels[row] == 1 {
			numRelevant++
		}
		if prediction.PredictedClass == 1 {
			numRetrieved++
			if fs.Labels[row] == 1 {
				numTruePositives++
			}
		}
	}
	var ans PrecAndRecall
	if numRetrieved > 0 {
		ans.Precision = float64(numTruePositives) / float64(numRetrieved)
	}
	if numRelevant > 0 {
		ans.Recall = float64(numTruePositives) / float64(numRelevant)
	}
	if ans.Precision+ans.Recall > 0 {
		ans.FBeta = 2 * ans.Precision * ans.Recall / (ans.Precision + ans.Recall)
	}
	return ans
}
