package model

import (
	"database/sql"
	"fmt"

	"github.com/username/fundadvisor/backend/src/database"
	"github.com/username/fundadvisor/backend/src/models"
	"github.com/username/fundadvisor/backend/src/utils"
)

// SaveRecords writes one ingestion run's record set in a single transaction.
// The (company_code, fund_type, as_of_date) key upserts: re-ingesting the
// same report overwrites the same rows instead of duplicating them.
func SaveRecords(records []models.FundPerformanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	dbTx, err := database.DB.Begin()
	if err != nil {
		return fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO fund_performance_records
		(company_code, fund_type, as_of_date, performance_1y, low_confidence,
		 monthly_return, annualized_return, total_return_1y, total_return_5y, total_return_10y, unit_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(company_code, fund_type, as_of_date) DO UPDATE SET
			performance_1y = excluded.performance_1y,
			low_confidence = excluded.low_confidence,
			monthly_return = excluded.monthly_return,
			annualized_return = excluded.annualized_return,
			total_return_1y = excluded.total_return_1y,
			total_return_5y = excluded.total_return_5y,
			total_return_10y = excluded.total_return_10y,
			unit_price = excluded.unit_price,
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("error preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			string(r.CompanyCode), string(r.FundType), utils.FormatStoredDate(r.AsOfDate),
			r.Performance1Y, r.LowConfidence,
			nullable(r.MonthlyReturn), nullable(r.AnnualizedReturn),
			nullable(r.TotalReturn1Y), nullable(r.TotalReturn5Y), nullable(r.TotalReturn10Y),
			nullable(r.UnitPrice),
		)
		if err != nil {
			return fmt.Errorf("error upserting record (fundType: %s): %w", r.FundType, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("error committing performance records: %w", err)
	}
	return nil
}

const recordColumns = `id, company_code, fund_type, as_of_date, performance_1y, low_confidence,
	monthly_return, annualized_return, total_return_1y, total_return_5y, total_return_10y, unit_price`

// LatestSnapshot returns the records at the most recent as-of date for one
// company. The empty-string date used for unknown-dated ingests sorts before
// every real date, so it is only ever the "latest" when nothing dated exists.
func LatestSnapshot(company models.CompanyCode) ([]models.FundPerformanceRecord, error) {
	rows, err := database.DB.Query(`SELECT `+recordColumns+`
		FROM fund_performance_records
		WHERE company_code = ?
		  AND as_of_date = (SELECT MAX(as_of_date) FROM fund_performance_records WHERE company_code = ?)
		ORDER BY fund_type`, string(company), string(company))
	if err != nil {
		return nil, fmt.Errorf("error querying latest snapshot: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// RecordsByCompany returns every stored record for one company, oldest first.
func RecordsByCompany(company models.CompanyCode) ([]models.FundPerformanceRecord, error) {
	rows, err := database.DB.Query(`SELECT `+recordColumns+`
		FROM fund_performance_records
		WHERE company_code = ?
		ORDER BY as_of_date, fund_type`, string(company))
	if err != nil {
		return nil, fmt.Errorf("error querying records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// DeleteCompanyRecords removes all records for a company. Deletion is an
// administrative correction, never a pipeline behavior.
func DeleteCompanyRecords(company models.CompanyCode) (int64, error) {
	res, err := database.DB.Exec(`DELETE FROM fund_performance_records WHERE company_code = ?`, string(company))
	if err != nil {
		return 0, fmt.Errorf("error deleting records: %w", err)
	}
	return res.RowsAffected()
}

func scanRecords(rows *sql.Rows) ([]models.FundPerformanceRecord, error) {
	var records []models.FundPerformanceRecord
	for rows.Next() {
		var r models.FundPerformanceRecord
		var companyCode, fundType, asOfDate string
		var monthly, annualized, total1y, total5y, total10y, unitPrice sql.NullFloat64

		if err := rows.Scan(&r.ID, &companyCode, &fundType, &asOfDate, &r.Performance1Y, &r.LowConfidence,
			&monthly, &annualized, &total1y, &total5y, &total10y, &unitPrice); err != nil {
			return nil, fmt.Errorf("error scanning record row: %w", err)
		}

		r.CompanyCode = models.CompanyCode(companyCode)
		r.FundType = models.FundType(fundType)
		r.AsOfDate = utils.ParseStoredDate(asOfDate)
		r.MonthlyReturn = fromNull(monthly)
		r.AnnualizedReturn = fromNull(annualized)
		r.TotalReturn1Y = fromNull(total1y)
		r.TotalReturn5Y = fromNull(total5y)
		r.TotalReturn10Y = fromNull(total10y)
		r.UnitPrice = fromNull(unitPrice)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}
	return records, nil
}

func nullable(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
