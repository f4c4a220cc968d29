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

// Package predict holds the shared prediction value passed between
// model implementations and their consumers.
package predict

// Prediction is a classifier's answer for a single row. Votes holds
// the per-class vote fractions (index 0 = low, index 1 = high), the
// class is the thresholded decision.
type Prediction struct {
	Votes          []float64
	PredictedClass int
}

// PositiveVote returns the vote fraction of the positive class, the
// value the decision threshold applies to.
func (p Prediction) PositiveVote() float64 {
	if len(p.Votes) < 2 {
		return 0
	}
	return p.Votes[1]
}
