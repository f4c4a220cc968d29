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

package feats

import (
	"path/filepath"
	"testing"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/cnf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFeaturesConf = cnf.FeaturesConf{
	Numeric:     []string{"Price"},
	Categorical: []string{"Vehicle_Type"},
}

func TestBuildFeatureSet(t *testing.T) {
	csv := "Vehicle_Type,Price,High_Sales\n" +
		"Sedan,24,1\n" +
		"SUV,36,0\n" +
		"Other,21,1\n" +
		"Sedan,26,0\n"
	tbl := loadFixture(t, csv)
	fs, err := BuildFeatureSet(tbl, testFeaturesConf, "High_Sales", "automotive-1")
	require.NoError(t, err)

	assert.Equal(t, 4, fs.Len())
	assert.Equal(t, 2, fs.NumFeatures())
	assert.Equal(t, []string{"Price", "Vehicle_Type"}, fs.Columns)
	assert.Equal(t, []int{1, 0, 1, 0}, fs.Labels)

	// vocabulary is sorted, so the encoding is stable across runs
	assert.Equal(t, []string{"Other", "SUV", "Sedan"}, fs.Vocabs["Vehicle_Type"])
	assert.Equal(t, []float64{24, 2}, fs.Matrix[0])
	assert.Equal(t, []float64{36, 1}, fs.Matrix[1])
	assert.Equal(t, []float64{21, 0}, fs.Matrix[2])
}

func TestEncodeCategoryUnknownMapsToOther(t *testing.T) {
	fs := &FeatureSet{
		Vocabs: map[string][]string{
			"Vehicle_Type": {"Other", "SUV", "Sedan"},
		},
	}
	assert.Equal(t, 2.0, fs.EncodeCategory("Vehicle_Type", "Sedan"))
	assert.Equal(t, 0.0, fs.EncodeCategory("Vehicle_Type", "Gyrocopter"))
}

func TestBuildFeatureSetRejectsMissing(t *testing.T) {
	csv := "Vehicle_Type,Price,High_Sales\nSedan,,1\n"
	tbl := loadFixture(t, csv)
	_, err := BuildFeatureSet(tbl, testFeaturesConf, "High_Sales", "automotive-1")
	assert.Error(t, err)
}

func TestBuildFeatureSetRejectsNonBinaryLabel(t *testing.T) {
	csv := "Vehicle_Type,Price,High_Sales\nSedan,24,2\n"
	tbl := loadFixture(t, csv)
	_, err := BuildFeatureSet(tbl, testFeaturesConf, "High_Sales", "automotive-1")
	assert.Error(t, err)
}

func TestFeatureSetRoundTrip(t *testing.T) {
	csv := "Vehicle_Type,Price,High_Sales\nSedan,24,1\nSUV,36,0\n"
	tbl := loadFixture(t, csv)
	fs, err := BuildFeatureSet(tbl, testFeaturesConf, "High_Sales", "automotive-1")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "data.feats")
	require.NoError(t, fs.Save(path))
	loaded, err := LoadFeatureSet(path)
	require.NoError(t, err)

	assert.Equal(t, fs.RulesVersion, loaded.RulesVersion)
	assert.Equal(t, fs.Columns, loaded.Columns)
	assert.Equal(t, fs.Vocabs, loaded.Vocabs)
	assert.Equal(t, fs.Matrix, loaded.Matrix)
	assert.Equal(t, fs.Labels, loaded.Labels)
}
