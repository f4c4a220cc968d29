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

// Package analyzer runs the SQL-style exploratory queries and the
// correlation analysis over a sales table. The table is loaded into
// an in-memory SQLite database so the aggregations stay plain SQL.
package analyzer

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/mapleleaflatte03/ibm-applied-data-dcience-capstone/dataset"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// salesColumns is the part of the schema the exploratory queries
// touch; extra columns in the source table are ignored.
var salesColumns = []struct {
	name    string
	sqlType string
	numeric bool
}{
	{"Year", "INTEGER", true},
	{"Month", "INTEGER", true},
	{"Season", "TEXT", false},
	{"Vehicle_Type", "TEXT", false},
	{"Region", "TEXT", false},
	{"City", "TEXT", false},
	{"Sales", "FLOAT", true},
	{"Price", "FLOAT", true},
	{"Advertising_Expenditure", "FLOAT", true},
	{"Unemployment_Rate", "FLOAT", true},
	{"GDP", "FLOAT", true},
	{"Recession", "INTEGER", true},
	{"Revenue", "FLOAT", true},
}

type Database struct {
	db *sql.DB
}

// OpenDatabase creates an empty in-memory database with the sales
// table ready for import.
func OpenDatabase() (*Database, error) {
	dbConn, err := sql.Open("sqlite3", "file::memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	database := &Database{db: dbConn}
	if err := database.createSalesTable(); err != nil {
		dbConn.Close()
		return nil, err
	}
	return database, nil
}

func (database *Database) Close() error {
	return database.db.Close()
}

func (database *Database) createSalesTable() error {
	stmt := "CREATE TABLE sales ("
	for i, col := range salesColumns {
		if i > 0 {
			stmt += ", "
		}
		stmt += col.name + " " + col.sqlType
	}
	stmt += ")"
	if _, err := database.db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	log.Debug().Msg("created table `sales`")
	return nil
}

// ImportTable copies the relevant columns of the table into the sales
// table inside a single transaction.
func (database *Database) ImportTable(tbl *dataset.Table) error {
	values := make([][]any, tbl.NumRows())
	for i := range values {
		values[i] = make([]any, 0, len(salesColumns))
	}
	placeholders := ""
	columnList := ""
	for i, col := range salesColumns {
		if i > 0 {
			placeholders += ", "
			columnList += ", "
		}
		placeholders += "?"
		columnList += col.name
		if col.numeric {
			colValues, err := tbl.Floats(col.name)
			if err != nil {
				return fmt.Errorf("failed to import table: %w", err)
			}
			for row, v := range colValues {
				values[row] = append(values[row], v)
			}
		} else {
			colValues, err := tbl.Strings(col.name)
			if err != nil {
				return fmt.Errorf("failed to import table: %w", err)
			}
			for row, v := range colValues {
				values[row] = append(values[row], v)
			}
		}
	}

	tx, err := database.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to import table: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO sales (" + columnList + ") VALUES (" + placeholders + ")")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to import table: %w", err)
	}
	defer stmt.Close()
	for _, row := range values {
		if _, err := stmt.Exec(row...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to import table: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to import table: %w", err)
	}
	log.Info().Int("numRows", tbl.NumRows()).Msg("imported sales table")
	return nil
}

// RunQuery executes a query and renders the full result as strings,
// NULL cells becoming empty values.
func (database *Database) RunQuery(query Query) (*QueryResult, error) {
	rows, err := database.db.Query(query.SQL)
	if err != nil {
		return nil, fmt.Errorf("failed to run query %s: %w", query.Name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to run query %s: %w", query.Name, err)
	}
	result := &QueryResult{Name: query.Name, Columns: columns}
	for rows.Next() {
		cells := make([]any, len(columns))
		cellPtrs := make([]any, len(columns))
		for i := range cells {
			cellPtrs[i] = &cells[i]
		}
		if err := rows.Scan(cellPtrs...); err != nil {
			return nil, fmt.Errorf("failed to run query %s: %w", query.Name, err)
		}
		record := make([]string, len(columns))
		for i, cell := range cells {
			record[i] = formatCell(cell)
		}
		result.Rows = append(result.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to run query %s: %w", query.Name, err)
	}
	return result, nil
}

func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
