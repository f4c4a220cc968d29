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
	"fmt"
	"math"
	mrand "math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/cnf"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/eval/logit"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/eval/rf"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/feats"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// ModelResult is the outcome of training and scoring one model
// family.
type ModelResult struct {
	Name         string `json:"name"`
	Info         string `json:"info"`
	Scores       Scores `json:"scores"`
	ArtifactPath string `json:"artifactPath"`
	SweepPath    string `json:"sweepPath"`
}

// TrainingResult compares the two model families trained on the same
// split.
type TrainingResult struct {
	RulesVersion string        `json:"rulesVersion"`
	TrainSize    int           `json:"trainSize"`
	TestSize     int           `json:"testSize"`
	Models       []ModelResult `json:"models"`
	BestModel    string        `json:"bestModel"`
}

// Trainer runs the whole comparison: one seeded stratified split, two
// model families fitted on the identical training rows, metrics on
// the identical test rows.
type Trainer struct {
	conf *cnf.Conf
}

func NewTrainer(conf *cnf.Conf) *Trainer {
	return &Trainer{conf: conf}
}

// Run trains both classifiers on fs and writes model artifacts and
// per-model threshold sweep files into outDir.
func (t *Trainer) Run(ctx context.Context, fs *feats.FeatureSet, outDir string) (*TrainingResult, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to run training: %w", err)
	}

	// the forest and the network initialization draw from the global
	// math/rand source; a fixed seed keeps repeated runs identical
	mrand.Seed(int64(t.conf.Split.Seed))

	train, test, err := StratifiedSplit(fs.Labels, t.conf.Split.TestRatio, t.conf.Split.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to run training: %w", err)
	}
	log.Info().
		Int("trainSize", len(train)).
		Int("testSize", len(test)).
		Uint64("seed", t.conf.Split.Seed).
		Msg("partitioned the feature set")

	models := []MLModel{
		logit.NewModel(
			t.conf.Models.Epochs,
			t.conf.Models.LearningRate,
			t.conf.Models.VoteThreshold,
		),
		rf.NewModel(t.conf.Models.NumTrees, t.conf.Models.VoteThreshold),
	}

	result := &TrainingResult{
		RulesVersion: fs.RulesVersion,
		TrainSize:    len(train),
		TestSize:     len(test),
	}
	for _, model := range models {
		log.Info().Str("model", model.Name()).Msg("training model")
		if err := model.Train(ctx, fs, train); err != nil {
			return nil, fmt.Errorf("failed to train %s: %w", model.Name(), err)
		}
		scores, err := EvaluateModel(model, fs, test)
		if err != nil {
			return nil, fmt.Errorf("failed to score %s: %w", model.Name(), err)
		}
		sweepPath := filepath.Join(outDir, fmt.Sprintf("sweep.%s.csv", model.Name()))
		if err := t.thresholdSweep(ctx, model, fs, test, sweepPath); err != nil {
			return nil, err
		}
		artifactPath := filepath.Join(outDir, fmt.Sprintf("model.%s.json", model.Name()))
		if err := model.SaveToFile(artifactPath); err != nil {
			return nil, err
		}
		result.Models = append(result.Models, ModelResult{
			Name:         model.Name(),
			Info:         model.GetInfo(),
			Scores:       scores,
			ArtifactPath: artifactPath,
			SweepPath:    sweepPath,
		})
	}
	result.BestModel = bestModel(result.Models)
	return result, nil
}

// thresholdSweep walks the decision threshold from 0.5 towards 1 and
// records precision/recall at each step so the operating point can be
// picked from the curve.
func (t *Trainer) thresholdSweep(
	ctx context.Context,
	model MLModel,
	fs *feats.FeatureSet,
	rows []int,
	outPath string,
) error {
	origThreshold := model.GetClassThreshold()
	defer model.SetClassThreshold(origThreshold)

	bar := progressbar.Default(int64(math.Ceil((1-0.5)/0.01)), "testing the model")
	var csv strings.Builder
	csv.WriteString("vote;precision;recall;f-beta\n")
	for v := 0.5; v < 1; v += 0.01 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		model.SetClassThreshold(v)
		precall := PrecisionAndRecall(model, fs, rows)
		csv.WriteString(precall.CSV(v) + "\n")
		bar.Add(1)
	}
	if err := os.WriteFile(outPath, []byte(csv.String()), 0644); err != nil {
		return fmt.Errorf("failed to write threshold sweep: %w", err)
	}
	return nil
}

// bestModel is a plain argmax over accuracy with ROC-AUC breaking
// ties.
func bestModel(models []ModelResult) string {
	best := ""
	bestAcc := math.Inf(-1)
	bestAUC := math.Inf(-1)
	for _, m := range models {
		if m.Scores.Accuracy > bestAcc ||
			(m.Scores.Accuracy == bestAcc && m.Scores.ROCAUC > bestAUC) {
			best = m.Name
			bestAcc = m.Scores.Accuracy
			bestAUC = m.Scores.ROCAUC
		}
	}
	return best
}
