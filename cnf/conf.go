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

package cnf

import (
	"encoding/json"
	"os"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltTestRatio     = 0.2
	dfltSplitSeed     = 42
	dfltNumTrees      = 100
	dfltEpochs        = 600
	dfltLearningRate  = 0.001
	dfltVoteThreshold = 0.5
	dfltNumRecords    = 2000
	dfltTimeZone      = "America/New_York"
)

// ImputeRule tells the cleaner how to fill a missing numeric value:
// take the median of Column within the group defined by GroupBy.
// A group with no observed values falls back to the global median.
type ImputeRule struct {
	Column  string `json:"column"`
	GroupBy string `json:"groupBy"`
}

// BucketRule derives a categorical column from a numeric one.
// Bounds are upper bounds of the buckets; the last bucket is
// open-ended, so len(Labels) == len(Bounds)+1.
type BucketRule struct {
	Source string    `json:"source"`
	Target string    `json:"target"`
	Bounds []float64 `json:"bounds"`
	Labels []string  `json:"labels"`
}

// LookupRule canonicalizes a categorical column against a closed list
// of known values. Anything else maps to the Other bucket instead of
// failing the run.
type LookupRule struct {
	Column string   `json:"column"`
	Known  []string `json:"known"`
	Other  string   `json:"other"`
}

// TargetRule defines the binary label: 1 if the source column value
// exceeds the median of the source column, 0 otherwise. Rows where the
// source value cannot be resolved are dropped before training.
type TargetRule struct {
	Source string `json:"source"`
	Column string `json:"column"`
}

// CleaningConf is the versioned rule table driving the
// cleaner/feature-builder. Thresholds and grouping keys live here
// rather than in code so a cleaning run stays attributable to a rule
// set version.
type CleaningConf struct {
	RulesVersion string       `json:"rulesVersion"`
	MonthColumn  string       `json:"monthColumn"`
	SeasonColumn string       `json:"seasonColumn"`
	Imputation   []ImputeRule `json:"imputation"`
	Buckets      []BucketRule `json:"buckets"`
	Categories   []LookupRule `json:"categories"`
	Target       TargetRule   `json:"target"`
}

type FeaturesConf struct {
	Numeric     []string `json:"numeric"`
	Categorical []string `json:"categorical"`
}

// SplitConf drives the train/test partitioning. ValidateAndDefaults
// treats a zero field as "not set", so TestRatio 0 and Seed 0 cannot
// be selected explicitly; the defaults apply instead.
type SplitConf struct {
	TestRatio float64 `json:"testRatio"`
	Seed      uint64  `json:"seed"`
}

type ModelsConf struct {
	NumTrees      int     `json:"numTrees"`
	Epochs        int     `json:"epochs"`
	LearningRate  float64 `json:"learningRate"`
	VoteThreshold float64 `json:"voteThreshold"`
}

type SyntheticConf struct {
	NumRecords int    `json:"numRecords"`
	Seed       uint64 `json:"seed"`
}

type Conf struct {
	srcPath   string
	Logging   logging.LoggingConf `json:"logging"`
	TimeZone  string              `json:"timeZone"`
	Cleaning  CleaningConf        `json:"cleaning"`
	Features  FeaturesConf        `json:"features"`
	Split     SplitConf           `json:"split"`
	Models    ModelsConf          `json:"models"`
	Synthetic SyntheticConf       `json:"synthetic"`
}

func (conf *Conf) GetSourcePath() string {
	return conf.srcPath
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

func ValidateAndDefaults(conf *Conf) {
	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		log.Fatal().Err(err).Msg("invalid time zone")
	}
	if conf.Split.TestRatio == 0 {
		conf.Split.TestRatio = dfltTestRatio
		log.Warn().
			Float64("testRatio", dfltTestRatio).
			Msg("split.testRatio not specified, using default")
	}
	if conf.Split.TestRatio < 0 || conf.Split.TestRatio >= 1 {
		log.Fatal().Float64("testRatio", conf.Split.TestRatio).Msg("invalid split.testRatio")
	}
	if conf.Split.Seed == 0 {
		conf.Split.Seed = dfltSplitSeed
		log.Warn().
			Uint64("seed", uint64(dfltSplitSeed)).
			Msg("split.seed not specified, using default")
	}
	if conf.Models.NumTrees == 0 {
		conf.Models.NumTrees = dfltNumTrees
	}
	if conf.Models.Epochs == 0 {
		conf.Models.Epochs = dfltEpochs
	}
	if conf.Models.LearningRate == 0 {
		conf.Models.LearningRate = dfltLearningRate
	}
	if conf.Models.VoteThreshold == 0 {
		conf.Models.VoteThreshold = dfltVoteThreshold
	}
	if conf.Synthetic.NumRecords == 0 {
		conf.Synthetic.NumRecords = dfltNumRecords
	}
	if conf.Synthetic.Seed == 0 {
		conf.Synthetic.Seed = dfltSplitSeed
	}
	if conf.Cleaning.RulesVersion == "" {
		log.Warn().Msg("cleaning rules not specified, using the bundled automotive ruleset")
		conf.Cleaning = DefaultCleaning()
	}
	if len(conf.Features.Numeric) == 0 && len(conf.Features.Categorical) == 0 {
		conf.Features = DefaultFeatures()
	}
}

// DefaultCleaning returns the rule table for the bundled automotive
// sales schema (rule set "automotive-1"). The version string must
// change whenever a threshold or grouping key changes.
func DefaultCleaning() CleaningConf {
	return CleaningConf{
		RulesVersion: "automotive-1",
		MonthColumn:  "Month",
		SeasonColumn: "Season",
		Imputation: []ImputeRule{
			{Column: "Price", GroupBy: "Vehicle_Type"},
			{Column: "Advertising_Expenditure", GroupBy: "Region"},
			{Column: "GDP", GroupBy: "Year"},
			{Column: "Unemployment_Rate", GroupBy: "Year"},
		},
		Buckets: []BucketRule{
			{
				Source: "Price",
				Target: "Price_Tier",
				Bounds: []float64{25, 40},
				Labels: []string{"Budget", "Mid-Range", "Premium"},
			},
			{
				Source: "Advertising_Expenditure",
				Target: "Advertising_Category",
				Bounds: []float64{30, 50, 70},
				Labels: []string{"Low", "Medium", "High", "Very High"},
			},
		},
		Categories: []LookupRule{
			{
				Column: "Vehicle_Type",
				Known: []string{
					"Sedan", "SUV", "Truck", "Coupe",
					"Hatchback", "Van", "Hybrid", "Electric",
				},
				Other: "Other",
			},
			{
				Column: "Region",
				Known:  []string{"North", "South", "East", "West", "Central"},
				Other:  "Other",
			},
		},
		Target: TargetRule{Source: "Sales", Column: "High_Sales"},
	}
}

func DefaultFeatures() FeaturesConf {
	return FeaturesConf{
		Numeric: []string{
			"Price", "Advertising_Expenditure", "Unemployment_Rate",
			"GDP", "Quarter", "Economic_Index", "Year",
		},
		Categorical: []string{"Vehicle_Type", "Region", "Season"},
	}
}
