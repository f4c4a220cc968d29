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
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/cnf"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/feats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separableFeatureSet builds a two-feature set where the classes are
// linearly separable with a wide margin, so both model families must
// score well on it.
func separableFeatureSet(numRows int, seed uint64) *feats.FeatureSet {
	rnd := rand.New(rand.NewPCG(seed, seed+1))
	fs := &feats.FeatureSet{
		RulesVersion: "test-1",
		Columns:      []string{"a", "b"},
		Matrix:       make([][]float64, numRows),
		Labels:       make([]int, numRows),
	}
	for i := 0; i < numRows; i++ {
		label := i % 2
		offset := float64(label) * 4
		fs.Matrix[i] = []float64{
			offset + rnd.Float64(),
			-offset + rnd.Float64(),
		}
		fs.Labels[i] = label
	}
	return fs
}

func trainerTestConf() *cnf.Conf {
	return &cnf.Conf{
		Split: cnf.SplitConf{TestRatio: 0.2, Seed: 42},
		Models: cnf.ModelsConf{
			NumTrees:      50,
			Epochs:        300,
			LearningRate:  0.05,
			VoteThreshold: 0.5,
		},
	}
}

func TestTrainerRun(t *testing.T) {
	fs := separableFeatureSet(200, 7)
	outDir := t.TempDir()

	trainer := NewTrainer(trainerTestConf())
	result, err := trainer.Run(context.Background(), fs, outDir)
	require.NoError(t, err)

	assert.Equal(t, 160, result.TrainSize)
	assert.Equal(t, 40, result.TestSize)
	assert.Equal(t, "test-1", result.RulesVersion)
	require.Equal(t, 2, len(result.Models))
	assert.Contains(t, []string{"logreg", "rf"}, result.BestModel)

	for _, m := range result.Models {
		assert.Equal(t, result.TestSize, m.Scores.Confusion.Total(), m.Name)
		assert.Greater(t, m.Scores.Accuracy, 0.9, m.Name)
		assert.Greater(t, m.Scores.ROCAUC, 0.9, m.Name)

		data, err := os.ReadFile(m.SweepPath)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Equal(t, "vote;precision;recall;f-beta", lines[0])
		assert.GreaterOrEqual(t, len(lines), 51)

		_, err = os.Stat(m.ArtifactPath)
		assert.NoError(t, err)
	}
}

func TestTrainerRunReproducible(t *testing.T) {
	fs := separableFeatureSet(200, 7)
	trainer := NewTrainer(trainerTestConf())

	result1, err := trainer.Run(context.Background(), fs, t.TempDir())
	require.NoError(t, err)
	result2, err := trainer.Run(context.Background(), fs, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, result1.TrainSize, result2.TrainSize)
	assert.Equal(t, result1.TestSize, result2.TestSize)
	// both families draw only from the seeded source, so the metrics
	// must match exactly between runs
	require.Equal(t, len(result1.Models), len(result2.Models))
	for i, m := range result1.Models {
		assert.Equal(t, m.Scores, result2.Models[i].Scores, m.Name)
	}
	assert.Equal(t, result1.BestModel, result2.BestModel)
}

func TestTrainerRunDegenerateLabels(t *testing.T) {
	fs := separableFeatureSet(100, 7)
	for i := range fs.Labels {
		fs.Labels[i] = 1
	}
	trainer := NewTrainer(trainerTestConf())
	_, err := trainer.Run(context.Background(), fs, t.TempDir())
	assert.Error(t, err)
}

func TestModelArtifactRoundTrip(t *testing.T) {
	fs := separableFeatureSet(100, 9)
	outDir := t.TempDir()
	trainer := NewTrainer(trainerTestConf())
	result, err := trainer.Run(context.Background(), fs, outDir)
	require.NoError(t, err)

	for _, m := range result.Models {
		loaded, err := LoadModel(m.ArtifactPath)
		require.NoError(t, err, m.Name)
		assert.Equal(t, m.Name, loaded.Name())

		scores, err := EvaluateModel(loaded, fs, allRows(fs))
		require.NoError(t, err)
		assert.Greater(t, scores.Accuracy, 0.9, m.Name)
	}
}

func TestLoadModelUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.mystery.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	_, err := LoadModel(path)
	assert.ErrorIs(t, err, ErrNoSuchModel)
}
