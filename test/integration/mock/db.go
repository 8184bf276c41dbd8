package mock

import (
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Db is an in-memory SQLite database managed through gorm.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens a private in-memory database and migrates the models, keyed by
// table name.
func NewDb(models map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		panic(err)
	}

	// The in-memory database lives as long as its single connection
	dbSQL.SetMaxOpenConns(1)
	dbSQL.SetMaxIdleConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
	}

	if err := newDbMock.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB drops and recreates every table.
func (d *Db) ClearDB() error {
	modelList := make([]any, 0, len(d.models))
	for table, model := range d.models {
		modelList = append(modelList, model)

		if err := d.DbConn.Migrator().DropTable(table); err != nil {
			return err
		}
	}

	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}

	for _, model := range modelList {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}

	return nil
}

// CountRows returns the number of rows in table.
func (d *Db) CountRows(table string) (int64, error) {
	if _, ok := d.models[table]; !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var count int64
	err := d.DbConn.Table(table).Count(&count).Error
	return count, err
}

// HealthCheck reports whether the connection answers.
func (d *Db) HealthCheck() bool {
	sqlDB, err := d.DbConn.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}

func (d *Db) Close() {
	if sqlDB, err := d.DbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
