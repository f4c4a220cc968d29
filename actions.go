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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fatih/color"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/analyzer"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/cnf"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/dataset"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/eval"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/feats"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/report"
	"github.com/rs/zerolog/log"
)

const (
	errColor = color.FgHiRed
)

func runActionDatagen(conf *cnf.Conf, outPath string) {
	tbl := dataset.GenerateSales(conf.Synthetic.NumRecords, conf.Synthetic.Seed, true)
	if err := tbl.Save(outPath); err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Info().
		Int("numRecords", tbl.NumRows()).
		Uint64("seed", conf.Synthetic.Seed).
		Str("path", outPath).
		Msg("generated synthetic dataset")
}

func runActionClean(conf *cnf.Conf, inPath, outPath string) {
	tbl, err := dataset.Load(inPath)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cleaner := feats.NewCleaner(conf.Cleaning)
	cleaned, rep, err := cleaner.Run(tbl)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cleaned.Save(outPath); err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	repData, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	repPath := outPath + ".report.json"
	if err := os.WriteFile(repPath, repData, 0644); err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("cleaned %d rows (%d dropped), report written to %s\n",
		rep.RowsOut, rep.DroppedRows, repPath)
}

func runActionAnalyze(conf *cnf.Conf, inPath, outDir string) {
	tbl, err := dataset.Load(inPath)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	numericColumns := slices.Clone(conf.Features.Numeric)
	numericColumns = append(numericColumns, conf.Cleaning.Target.Source, "Revenue")
	summary, err := analyzer.Run(tbl, numericColumns, outDir)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("analyzed %d rows, %d query results and %s written\n",
		summary.NumRows, len(summary.Results), summary.WorkbookPath)
}

func runActionFeaturize(conf *cnf.Conf, inPath, outPath string) {
	tbl, err := dataset.Load(inPath)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !tbl.HasColumn(conf.Cleaning.Target.Column) {
		color.New(errColor).Fprintf(
			os.Stderr,
			"input has no %s column - run `clean` first\n", conf.Cleaning.Target.Column)
		os.Exit(1)
	}
	fs, err := feats.BuildFeatureSet(
		tbl, conf.Features, conf.Cleaning.Target.Column, conf.Cleaning.RulesVersion)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := fs.Save(outPath); err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Info().
		Int("numRows", fs.Len()).
		Int("numFeatures", fs.NumFeatures()).
		Str("path", outPath).
		Msg("wrote feature file")
}

func runActionTrain(ctx context.Context, conf *cnf.Conf, featsPath, outDir string) {
	fs, err := feats.LoadFeatureSet(featsPath)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	trainer := eval.NewTrainer(conf)
	result, err := trainer.Run(ctx, fs, outDir)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	report.PrintTrainingResult(os.Stdout, result)
	metricsPath := filepath.Join(outDir, "metrics.json")
	if err := report.SaveMetrics(result, metricsPath); err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Info().Str("path", metricsPath).Msg("wrote metrics")
}

func runActionEvaluate(conf *cnf.Conf, modelPath, featsPath string) {
	fs, err := feats.LoadFeatureSet(featsPath)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	model, err := eval.LoadModel(modelPath)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rows := make([]int, fs.Len())
	for i := range rows {
		rows[i] = i
	}
	scores, err := eval.EvaluateModel(model, fs, rows)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	report.PrintScores(os.Stdout, model.GetInfo(), scores)
}
