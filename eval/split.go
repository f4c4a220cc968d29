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
	"math"
	"math/rand/v2"
	"sort"
)

// StratifiedSplit partitions row indices into train and test sets,
// sampling each class separately so both partitions keep the source
// class ratio. The same seed always yields the same partition.
func StratifiedSplit(labels []int, testRatio float64, seed uint64) (train, test []int, err error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("invalid test ratio %.2f", testRatio)
	}
	byClass := make(map[int][]int)
	for i, label := range labels {
		byClass[label] = append(byClass[label], i)
	}
	if len(byClass) < 2 {
		return nil, nil, fmt.Errorf("fewer than two distinct classes in the data")
	}

	classes := make([]int, 0, len(byClass))
	for class := range byClass {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	rnd := rand.New(rand.NewPCG(seed, seed+1))
	for _, class := range classes {
		rows := byClass[class]
		rnd.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})
		numTest := int(math.Round(testRatio * float64(len(rows))))
		test = append(test, rows[:numTest]...)
		train = append(train, rows[numTest:]...)
	}
	sort.Ints(train)
	sort.Ints(test)

	if err := requireBothClasses(labels, train); err != nil {
		return nil, nil, fmt.Errorf("degenerate training partition: %w", err)
	}
	if err := requireBothClasses(labels, test); err != nil {
		return nil, nil, fmt.Errorf("degenerate test partition: %w", err)
	}
	return train, test, nil
}

func requireBothClasses(labels []int, rows []int) error {
	seen := make(map[int]bool)
	for _, row := range rows {
		seen[labels[row]] = true
	}
	if len(seen) < 2 {
		return fmt.Errorf("fewer than two distinct classes present")
	}
	return nil
}
