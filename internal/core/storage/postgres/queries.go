package postgres

// SQL for the automobile_sales table.

const (
	// queryLoadRecords reads the dataset in the order it was imported.
	queryLoadRecords = `
		SELECT
			year, month, vehicle_type, automobile_sales,
			advertising_expenditure, recession, unemployment_rate
		FROM automobile_sales
		ORDER BY id ASC
	`

	queryDeleteRecords = `DELETE FROM automobile_sales`

	queryInsertRecord = `
		INSERT INTO automobile_sales (
			year, month, vehicle_type, automobile_sales,
			advertising_expenditure, recession, unemployment_rate
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	querySchemaExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'automobile_sales'
		)
	`
)
