package bootstrap

// Warehouse drivers the SQL source can read line items from, selected with
// database.driver: "databricks", "snowflake", "mysql" or "pgx".
import (
	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/snowflakedb/gosnowflake"
)
