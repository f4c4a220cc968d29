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

package dataset

import (
	"math"
	"math/rand/v2"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/schollz/progressbar/v3"
)

var (
	vehicleTypes = []string{
		"Sedan", "SUV", "Truck", "Coupe", "Hatchback", "Van", "Hybrid", "Electric",
	}
	vehicleTypeWeights = []float64{0.20, 0.25, 0.15, 0.10, 0.10, 0.05, 0.08, 0.07}

	regions = []string{"North", "South", "East", "West", "Central"}

	citiesByRegion = map[string][]string{
		"North":   {"Boston", "New York", "Chicago", "Detroit"},
		"South":   {"Atlanta", "Houston", "Miami", "Dallas"},
		"East":    {"Philadelphia", "Washington", "Baltimore", "Charlotte"},
		"West":    {"Los Angeles", "San Francisco", "Seattle", "Phoenix"},
		"Central": {"Denver", "Kansas City", "Minneapolis", "St. Louis"},
	}

	cityCoords = map[string][2]float64{
		"Boston":        {42.3601, -71.0589},
		"New York":      {40.7128, -74.0060},
		"Chicago":       {41.8781, -87.6298},
		"Detroit":       {42.3314, -83.0458},
		"Atlanta":       {33.7490, -84.3880},
		"Houston":       {29.7604, -95.3698},
		"Miami":         {25.7617, -80.1918},
		"Dallas":        {32.7767, -96.7970},
		"Philadelphia":  {39.9526, -75.1652},
		"Washington":    {38.9072, -77.0369},
		"Baltimore":     {39.2904, -76.6122},
		"Charlotte":     {35.2271, -80.8431},
		"Los Angeles":   {34.0522, -118.2437},
		"San Francisco": {37.7749, -122.4194},
		"Seattle":       {47.6062, -122.3321},
		"Phoenix":       {33.4484, -112.0740},
		"Denver":        {39.7392, -104.9903},
		"Kansas City":   {39.0997, -94.5786},
		"Minneapolis":   {44.9778, -93.2650},
		"St. Louis":     {38.6270, -90.1994},
	}

	basePrices = map[string]float64{
		"Sedan": 25, "SUV": 35, "Truck": 40, "Coupe": 30,
		"Hatchback": 20, "Van": 32, "Hybrid": 28, "Electric": 45,
	}

	seasonalMultiplier = map[string]float64{
		"Spring": 1.1, "Summer": 1.2, "Fall": 1.0, "Winter": 0.9,
	}

	typeMultiplier = map[string]float64{
		"SUV": 1.3, "Sedan": 1.1, "Truck": 1.2, "Electric": 1.4,
		"Hybrid": 1.25, "Coupe": 0.9, "Hatchback": 0.95, "Van": 1.0,
	}
)

// SeasonOfMonth maps a calendar month to its meteorological season.
func SeasonOfMonth(month int) string {
	switch {
	case month == 12 || month == 1 || month == 2:
		return "Winter"
	case month >= 3 && month <= 5:
		return "Spring"
	case month >= 6 && month <= 8:
		return "Summer"
	default:
		return "Fall"
	}
}

// isRecession covers the 2020-03..2021-06 downturn window.
func isRecession(year, month int) bool {
	if year == 2020 {
		return month >= 3
	}
	if year == 2021 {
		return month <= 6
	}
	return false
}

func weightedChoice(rnd *rand.Rand, values []string, weights []float64) string {
	r := rnd.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GenerateSales builds a synthetic automotive sales table with
// seasonal, vehicle-type, recession, advertising and macroeconomic
// effects baked into the Sales column. The same seed always yields the
// same table.
func GenerateSales(numRecords int, seed uint64, showProgress bool) *Table {
	rnd := rand.New(rand.NewPCG(seed, seed+1))

	yearCol := make([]int, numRecords)
	monthCol := make([]int, numRecords)
	seasonCol := make([]string, numRecords)
	typeCol := make([]string, numRecords)
	regionCol := make([]string, numRecords)
	cityCol := make([]string, numRecords)
	latCol := make([]float64, numRecords)
	lonCol := make([]float64, numRecords)
	salesCol := make([]float64, numRecords)
	priceCol := make([]float64, numRecords)
	advertCol := make([]float64, numRecords)
	unempCol := make([]float64, numRecords)
	gdpCol := make([]float64, numRecords)
	recessionCol := make([]int, numRecords)
	revenueCol := make([]float64, numRecords)

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(numRecords), "generating records")
	}

	for i := 0; i < numRecords; i++ {
		year := 2015 + rnd.IntN(9)
		month := 1 + rnd.IntN(12)
		recession := isRecession(year, month)
		season := SeasonOfMonth(month)

		region := regions[rnd.IntN(len(regions))]
		cities := citiesByRegion[region]
		city := cities[rnd.IntN(len(cities))]
		coords := cityCoords[city]

		vehicleType := weightedChoice(rnd, vehicleTypes, vehicleTypeWeights)

		basePrice := basePrices[vehicleType]
		price := math.Max(15, rnd.NormFloat64()*basePrice*0.15+basePrice)

		baseGDP := 70 + float64(year-2015)*1.5
		var gdp float64
		if recession {
			gdp = rnd.NormFloat64()*5 + baseGDP - 10
		} else {
			gdp = rnd.NormFloat64()*3 + baseGDP
		}
		gdp = math.Max(50, math.Min(100, gdp))

		var unemployment float64
		if recession {
			unemployment = rnd.NormFloat64()*1.5 + 9
		} else {
			unemployment = rnd.NormFloat64()*1.0 + 5
		}
		unemployment = math.Max(3, math.Min(15, unemployment))

		advertising := math.Max(10, rnd.NormFloat64()*15+50)

		recessionMult := 1.0
		if recession {
			recessionMult = 0.6
		}
		adEffect := 1 + (advertising/200)*0.3
		gdpEffect := gdp / 70
		unemploymentEffect := 1 - (unemployment-5)/20

		sales := 100.0 *
			seasonalMultiplier[season] *
			typeMultiplier[vehicleType] *
			recessionMult *
			adEffect *
			gdpEffect *
			unemploymentEffect
		sales = math.Max(10, rnd.NormFloat64()*sales*0.1+sales)

		yearCol[i] = year
		monthCol[i] = month
		seasonCol[i] = season
		typeCol[i] = vehicleType
		regionCol[i] = region
		cityCol[i] = city
		latCol[i] = coords[0]
		lonCol[i] = coords[1]
		salesCol[i] = round2(sales)
		priceCol[i] = round2(price)
		advertCol[i] = round2(advertising)
		unempCol[i] = round2(unemployment)
		gdpCol[i] = round2(gdp)
		if recession {
			recessionCol[i] = 1
		}
		revenueCol[i] = round2(round2(sales) * round2(price))

		if bar != nil {
			bar.Add(1)
		}
	}

	// outliers on 5 % of the rows, half inflated, half deflated
	numOutliers := numRecords / 20
	seen := make(map[int]bool)
	for len(seen) < numOutliers {
		idx := rnd.IntN(numRecords)
		if seen[idx] {
			continue
		}
		seen[idx] = true
		if rnd.Float64() > 0.5 {
			salesCol[idx] = round2(salesCol[idx] * (2 + 2*rnd.Float64()))
		} else {
			salesCol[idx] = round2(salesCol[idx] * (0.2 + 0.3*rnd.Float64()))
		}
		revenueCol[idx] = round2(salesCol[idx] * priceCol[idx])
	}

	df := dataframe.New(
		series.New(yearCol, series.Int, "Year"),
		series.New(monthCol, series.Int, "Month"),
		series.New(seasonCol, series.String, "Season"),
		series.New(typeCol, series.String, "Vehicle_Type"),
		series.New(regionCol, series.String, "Region"),
		series.New(cityCol, series.String, "City"),
		series.New(latCol, series.Float, "Latitude"),
		series.New(lonCol, series.Float, "Longitude"),
		series.New(salesCol, series.Float, "Sales"),
		series.New(priceCol, series.Float, "Price"),
		series.New(advertCol, series.Float, "Advertising_Expenditure"),
		series.New(unempCol, series.Float, "Unemployment_Rate"),
		series.New(gdpCol, series.Float, "GDP"),
		series.New(recessionCol, series.Int, "Recession"),
		series.New(revenueCol, series.Float, "Revenue"),
	)
	return &Table{df: df}
}
