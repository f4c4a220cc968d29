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

// Package report renders training results for humans (colored console
// summary) and for downstream consumers (metrics JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/eval"
)

// PrintTrainingResult writes a per-model metrics summary to w, the
// best model highlighted.
func PrintTrainingResult(w io.Writer, result *eval.TrainingResult) {
	titleColor := color.New(color.FgHiMagenta).SprintFunc()
	bestColor := color.New(color.FgGreen, color.Bold).SprintFunc()
	dimColor := color.New(color.Faint).SprintFunc()

	fmt.Fprintln(w, titleColor("model comparison"))
	fmt.Fprintf(w, "rules version: %s\n", result.RulesVersion)
	fmt.Fprintf(w, "train/test partition: %d/%d\n\n", result.TrainSize, result.TestSize)

	for _, m := range result.Models {
		name := m.Name
		if m.Name == result.BestModel {
			name = bestColor(name + " *")
		}
		fmt.Fprintf(w, "%s (%s)\n", name, dimColor(m.Info))
		fmt.Fprintf(w, "  accuracy:  %.4f\n", m.Scores.Accuracy)
		fmt.Fprintf(w, "  precision: %.4f\n", m.Scores.Precision)
		fmt.Fprintf(w, "  recall:    %.4f\n", m.Scores.Recall)
		fmt.Fprintf(w, "  F1:        %.4f\n", m.Scores.F1)
		fmt.Fprintf(w, "  ROC-AUC:   %.4f\n", m.Scores.ROCAUC)
		cm := m.Scores.Confusion
		fmt.Fprintf(w, "  confusion: TP=%d FP=%d TN=%d FN=%d\n\n",
			cm.TruePositives, cm.FalsePositives, cm.TrueNegatives, cm.FalseNegatives)
	}
	fmt.Fprintf(w, "best model: %s\n", bestColor(result.BestModel))
}

// SaveMetrics writes the full training result as a JSON file.
func SaveMetrics(result *eval.TrainingResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save metrics: %w", err)
	}
	defer file.Close()
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to save metrics: %w", err)
	}
	return nil
}

// PrintScores writes a single model's metrics, used by the evaluate
// action.
func PrintScores(w io.Writer, info string, scores eval.Scores) {
	titleColor := color.New(color.FgHiMagenta).SprintFunc()
	fmt.Fprintln(w, titleColor(info))
	fmt.Fprintf(w, "  accuracy:  %.4f\n", scores.Accuracy)
	fmt.Fprintf(w, "  precision: %.4f\n", scores.Precision)
	fmt.Fprintf(w, "  recall:    %.4f\n", scores.Recall)
	fmt.Fprintf(w, "  F1:        %.4f\n", scores.F1)
	fmt.Fprintf(w, "  ROC-AUC:   %.4f\n", scores.ROCAUC)
	cm := scores.Confusion
	fmt.Fprintf(w, "  confusion: TP=%d FP=%d TN=%d FN=%d\n",
		cm.TruePositives, cm.FalsePositives, cm.TrueNegatives, cm.FalseNegatives)
}
