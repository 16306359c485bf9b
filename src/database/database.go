package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/fundadvisor/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}
	migratePerformanceTable()

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS fund_performance_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_code TEXT NOT NULL,
		fund_type TEXT NOT NULL,
		as_of_date TEXT NOT NULL,
		performance_1y REAL NOT NULL,
		low_confidence BOOLEAN DEFAULT FALSE,
		monthly_return REAL,
		annualized_return REAL,
		total_return_1y REAL,
		total_return_5y REAL,
		total_return_10y REAL,
		unit_price REAL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(company_code, fund_type, as_of_date)
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

// migratePerformanceTable adds columns introduced after the first release to
// databases created with the original schema.
func migratePerformanceTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='fund_performance_records'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			if logger.L != nil {
				logger.L.Info("'fund_performance_records' table does not exist, no migration needed as table will be created.")
			} else {
				stdlog.Println("'fund_performance_records' table does not exist, no migration needed as table will be created.")
			}
			return
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'fund_performance_records' table", "error", err)
		} else {
			stdlog.Printf("Error checking for 'fund_performance_records' table: %v", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(fund_performance_records)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'fund_performance_records'", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for 'fund_performance_records': %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}

		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'fund_performance_records'", "error", err)
			} else {
				stdlog.Printf("Error scanning column info for 'fund_performance_records': %v", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'fund_performance_records'", "error", err)
		} else {
			stdlog.Printf("Error iterating over column info for 'fund_performance_records': %v", err)
		}
		return
	}

	if _, ok := columnExists["low_confidence"]; !ok {
		_, err := DB.Exec("ALTER TABLE fund_performance_records ADD COLUMN low_confidence BOOLEAN DEFAULT FALSE")
		if err != nil {
			logger.L.Error("Error adding 'low_confidence' column to 'fund_performance_records' table", "error", err)
		} else {
			logger.L.Info("Added 'low_confidence' column to 'fund_performance_records' table")
		}
	}
	if _, ok := columnExists["unit_price"]; !ok {
		_, err := DB.Exec("ALTER TABLE fund_performance_records ADD COLUMN unit_price REAL")
		if err != nil {
			logger.L.Error("Error adding 'unit_price' column to 'fund_performance_records' table", "error", err)
		} else {
			logger.L.Info("Added 'unit_price' column to 'fund_performance_records' table")
		}
	}
	if _, ok := columnExists["updated_at"]; !ok {
		_, err := DB.Exec("ALTER TABLE fund_performance_records ADD COLUMN updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP")
		if err != nil {
			logger.L.Error("Error adding 'updated_at' column to 'fund_performance_records' table", "error", err)
		} else {
			logger.L.Info("Added 'updated_at' column to 'fund_performance_records' table")
		}
	}
}
