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
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/cnf"
)

const (
	actionVersion   = "version"
	actionHelp      = "help"
	actionDatagen   = "datagen"
	actionClean     = "clean"
	actionAnalyze   = "analyze"
	actionFeaturize = "featurize"
	actionTrain     = "train"
	actionEvaluate  = "evaluate"
)

var (
	version   string
	buildDate string
	gitCommit string
)

// VersionInfo provides a detailed information about the actual build
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
}

func topLevelUsage() {
	fmt.Fprintf(os.Stderr, "CAPSTONE - automotive sales analysis and prediction pipeline\n")
	fmt.Fprintf(os.Stderr, "-----------------------------\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "\t%s\t\tshow version info\n", actionVersion)
	fmt.Fprintf(os.Stderr, "\t%s\t\tgenerate a synthetic sales dataset\n", actionDatagen)
	fmt.Fprintf(os.Stderr, "\t%s\t\tclean a raw dataset and derive features\n", actionClean)
	fmt.Fprintf(os.Stderr, "\t%s\t\trun exploratory SQL queries and correlations\n", actionAnalyze)
	fmt.Fprintf(os.Stderr, "\t%s\tbuild a model-ready feature file\n", actionFeaturize)
	fmt.Fprintf(os.Stderr, "\t%s\t\ttrain and compare the two classifiers\n", actionTrain)
	fmt.Fprintf(os.Stderr, "\t%s\tre-score a saved model on a feature file\n", actionEvaluate)
	fmt.Fprintf(os.Stderr, "\nUse `capstone help ACTION` for information about a specific action\n\n")
}

func setup(confPath string) *cnf.Conf {
	conf := cnf.LoadConfig(confPath)
	if conf.Logging.Level == "" {
		conf.Logging.Level = "info"
	}
	logging.SetupLogging(conf.Logging)
	cnf.ValidateAndDefaults(conf)
	return conf
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

func runActionVersion(ver VersionInfo) {
	fmt.Fprintln(os.Stderr, "Capstone version: ", ver)
}

func subcommandUsage(cmd *flag.FlagSet, args, description string) func() {
	return func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s %s\n",
			filepath.Base(os.Args[0]), cmd.Name(), args)
		fmt.Fprintf(os.Stderr, "\n%s\n", description)
	}
}

func main() {
	version := VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}

	cmdVersion := flag.NewFlagSet(actionVersion, flag.ExitOnError)
	cmdHelp := flag.NewFlagSet(actionHelp, flag.ExitOnError)

	cmdDatagen := flag.NewFlagSet(actionDatagen, flag.ExitOnError)
	cmdDatagen.Usage = subcommandUsage(cmdDatagen, "config.json out.csv",
		"Generate a synthetic automotive sales dataset (seeded, reproducible)")

	cmdClean := flag.NewFlagSet(actionClean, flag.ExitOnError)
	cmdClean.Usage = subcommandUsage(cmdClean, "config.json in.csv out.csv",
		"Impute missing values, derive feature columns and label the target")

	cmdAnalyze := flag.NewFlagSet(actionAnalyze, flag.ExitOnError)
	cmdAnalyze.Usage = subcommandUsage(cmdAnalyze, "config.json in.csv outDir",
		"Run the exploratory SQL queries and the correlation analysis")

	cmdFeaturize := flag.NewFlagSet(actionFeaturize, flag.ExitOnError)
	cmdFeaturize.Usage = subcommandUsage(cmdFeaturize, "config.json in.csv out.feats",
		"Convert a cleaned dataset to a model-ready feature file")

	cmdTrain := flag.NewFlagSet(actionTrain, flag.ExitOnError)
	cmdTrain.Usage = subcommandUsage(cmdTrain, "config.json in.feats outDir",
		"Train both classifier families on the same split and compare them")

	cmdEvaluate := flag.NewFlagSet(actionEvaluate, flag.ExitOnError)
	cmdEvaluate.Usage = subcommandUsage(cmdEvaluate, "config.json model.json in.feats",
		"Load a saved model artifact and score it against a feature file")

	action := actionHelp
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	switch action {
	case actionHelp:
		var subj string
		if len(os.Args) > 2 {
			cmdHelp.Parse(os.Args[2:])
			subj = cmdHelp.Arg(0)
		}
		if subj == "" {
			topLevelUsage()
			return
		}
		switch subj {
		case actionDatagen:
			cmdDatagen.Usage()
		case actionClean:
			cmdClean.Usage()
		case actionAnalyze:
			cmdAnalyze.Usage()
		case actionFeaturize:
			cmdFeaturize.Usage()
		case actionTrain:
			cmdTrain.Usage()
		case actionEvaluate:
			cmdEvaluate.Usage()
		default:
			topLevelUsage()
		}
	case actionVersion:
		cmdVersion.Parse(os.Args[2:])
		runActionVersion(version)
	case actionDatagen:
		cmdDatagen.Parse(os.Args[2:])
		conf := setup(cmdDatagen.Arg(0))
		runActionDatagen(conf, cmdDatagen.Arg(1))
	case actionClean:
		cmdClean.Parse(os.Args[2:])
		conf := setup(cmdClean.Arg(0))
		runActionClean(conf, cmdClean.Arg(1), cmdClean.Arg(2))
	case actionAnalyze:
		cmdAnalyze.Parse(os.Args[2:])
		conf := setup(cmdAnalyze.Arg(0))
		runActionAnalyze(conf, cmdAnalyze.Arg(1), cmdAnalyze.Arg(2))
	case actionFeaturize:
		cmdFeaturize.Parse(os.Args[2:])
		conf := setup(cmdFeaturize.Arg(0))
		runActionFeaturize(conf, cmdFeaturize.Arg(1), cmdFeaturize.Arg(2))
	case actionTrain:
		cmdTrain.Parse(os.Args[2:])
		conf := setup(cmdTrain.Arg(0))
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		runActionTrain(ctx, conf, cmdTrain.Arg(1), cmdTrain.Arg(2))
	case actionEvaluate:
		cmdEvaluate.Parse(os.Args[2:])
		conf := setup(cmdEvaluate.Arg(0))
		runActionEvaluate(conf, cmdEvaluate.Arg(1), cmdEvaluate.Arg(2))
	default:
		fmt.Fprintf(os.Stderr, "Unknown action, please use 'help' to get more information")
	}
}
