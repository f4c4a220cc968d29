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

package analyzer

// Query is one exploratory aggregation; Name doubles as the output
// file base name.
type Query struct {
	Name string
	SQL  string
}

// QueryResult is a fully materialized query answer ready for CSV or
// spreadsheet export.
type QueryResult struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// EDAQueries are the standard exploratory aggregations run by the
// analyze action, in report order.
var EDAQueries = []Query{
	{
		Name: "sales_by_vehicle_type",
		SQL: `
			SELECT
				Vehicle_Type,
				COUNT(*) AS Count,
				SUM(Sales) AS Total_Sales,
				AVG(Sales) AS Avg_Sales,
				SUM(Revenue) AS Total_Revenue
			FROM sales
			GROUP BY Vehicle_Type
			ORDER BY Total_Sales DESC`,
	},
	{
		Name: "sales_by_year_recession",
		SQL: `
			SELECT
				Year,
				SUM(CASE WHEN Recession = 1 THEN 1 ELSE 0 END) AS Recession_Months,
				AVG(CASE WHEN Recession = 0 THEN Sales END) AS Avg_Sales_Non_Recession,
				AVG(CASE WHEN Recession = 1 THEN Sales END) AS Avg_Sales_Recession,
				(AVG(CASE WHEN Recession = 0 THEN Sales END) -
				 AVG(CASE WHEN Recession = 1 THEN Sales END)) AS Sales_Difference
			FROM sales
			GROUP BY Year
			ORDER BY Year`,
	},
	{
		Name: "top_cities",
		SQL: `
			SELECT
				City,
				Region,
				COUNT(*) AS Transaction_Count,
				SUM(Sales) AS Total_Sales,
				SUM(Revenue) AS Total_Revenue,
				AVG(Sales) AS Avg_Sales
			FROM sales
			GROUP BY City, Region
			ORDER BY Total_Revenue DESC
			LIMIT 10`,
	},
	{
		Name: "seasonal_analysis",
		SQL: `
			SELECT
				Season,
				COUNT(*) AS Count,
				AVG(Sales) AS Avg_Sales,
				AVG(Price) AS Avg_Price,
				SUM(Revenue) AS Total_Revenue,
				AVG(GDP) AS Avg_GDP,
				AVG(Unemployment_Rate) AS Avg_Unemployment
			FROM sales
			GROUP BY Season
			ORDER BY Avg_Sales DESC`,
	},
	{
		Name: "region_vehicle_performance",
		SQL: `
			SELECT
				Region,
				Vehicle_Type,
				COUNT(*) AS Count,
				AVG(Sales) AS Avg_Sales,
				AVG(Price) AS Avg_Price
			FROM sales
			GROUP BY Region, Vehicle_Type
			HAVING Count >= 10
			ORDER BY Region, Avg_Sales DESC`,
	},
	{
		Name: "advertising_impact",
		SQL: `
			SELECT
				CASE
					WHEN Advertising_Expenditure < 30 THEN 'Low (<30)'
					WHEN Advertising_Expenditure < 50 THEN 'Medium (30-50)'
					WHEN Advertising_Expenditure < 70 THEN 'High (50-70)'
					ELSE 'Very High (>70)'
				END AS Advertising_Category,
				COUNT(*) AS Count,
				AVG(Sales) AS Avg_Sales,
				AVG(Revenue) AS Avg_Revenue,
				AVG(Price) AS Avg_Price
			FROM sales
			GROUP BY Advertising_Category
			ORDER BY Avg_Sales DESC`,
	},
	{
		Name: "economic_indicators",
		SQL: `
			SELECT
				CASE
					WHEN GDP < 65 THEN 'Low GDP'
					WHEN GDP < 75 THEN 'Medium GDP'
					ELSE 'High GDP'
				END AS GDP_Category,
				CASE
					WHEN Unemployment_Rate < 5 THEN 'Low Unemployment'
					WHEN Unemployment_Rate < 8 THEN 'Medium Unemployment'
					ELSE 'High Unemployment'
				END AS Unemployment_Category,
				COUNT(*) AS Count,
				AVG(Sales) AS Avg_Sales,
				SUM(Revenue) AS Total_Revenue
			FROM sales
			GROUP BY GDP_Category, Unemployment_Category
			ORDER BY Avg_Sales DESC`,
	},
	{
		Name: "yoy_growth",
		SQL: `
			WITH yearly_sales AS (
				SELECT
					Year,
					AVG(Sales) AS Avg_Sales,
					SUM(Revenue) AS Total_Revenue
				FROM sales
				GROUP BY Year
			)
			SELECT
				a.Year,
				a.Avg_Sales AS Avg_Sales_Current,
				b.Avg_Sales AS Avg_Sales_Previous,
				((a.Avg_Sales - b.Avg_Sales) / b.Avg_Sales * 100) AS YoY_Growth_Pct,
				a.Total_Revenue
			FROM yearly_sales a
			LEFT JOIN yearly_sales b ON a.Year = b.Year + 1
			ORDER BY a.Year`,
	},
}
