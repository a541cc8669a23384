// Package storage opens the MySQL and Redis connections used by the dc3
// services.
package storage

import (
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DefaultMySQLAddr is used when MYSQL_ADDR is not set.
const DefaultMySQLAddr = "root:root_password@tcp(127.0.0.1:3307)/dc3"

// OpenMySQL validates dsn, opens a gorm handle and installs the otelgorm
// plugin so statement latency shows up in traces.
func OpenMySQL(dsn string, log *logrus.Logger) (*gorm.DB, error) {
	cfg, err := mysqldrv.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "invalid mysql dsn")
	}
	// DATETIME columns must scan into time.Time
	cfg.ParseTime = true

	db, err := gorm.Open(mysql.Open(cfg.FormatDSN()), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to mysql at %s/%s", cfg.Addr, cfg.DBName)
	}
	if err := db.Use(otelgorm.NewPlugin()); err != nil {
		return nil, errors.Wrap(err, "failed to initialize otelgorm plugin")
	}
	log.Infof("connected to mysql at %s/%s", cfg.Addr, cfg.DBName)
	return db, nil
}
