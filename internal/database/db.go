package database

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// tlsConfigName is the key under which the custom CA is registered with the driver.
const tlsConfigName = "booking-ca"

// Options carries the connection parameters for Open.
type Options struct {
	User            string
	Pass            string
	Host            string
	Port            string
	Name            string
	TLSCAPath       string // PEM bundle; empty disables TLS
	LockWaitSecs    int    // innodb_lock_wait_timeout for every pooled session
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// DSN builds the driver configuration.  parseTime=true maps DATETIME to
// time.Time and loc=UTC keeps every naive timestamp on the UTC wall clock.
func DSN(o Options) (string, error) {
	cfg := mysql.NewConfig()
	cfg.User = o.User
	cfg.Passwd = o.Pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(o.Host, o.Port)
	cfg.DBName = o.Name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	if o.LockWaitSecs > 0 {
		cfg.Params["innodb_lock_wait_timeout"] = strconv.Itoa(o.LockWaitSecs)
	}
	if o.TLSCAPath != "" {
		if err := registerCA(o.TLSCAPath, o.Host); err != nil {
			return "", err
		}
		cfg.TLSConfig = tlsConfigName
	}
	return cfg.FormatDSN(), nil
}

func registerCA(path, host string) error {
	pem, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read DB CA: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return fmt.Errorf("no certificates found in %s", path)
	}
	return mysql.RegisterTLSConfig(tlsConfigName, &tls.Config{
		RootCAs:    pool,
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	})
}

// Open connects to MySQL and verifies the connection.
func Open(o Options) (*sql.DB, error) {
	dsn, err := DSN(o)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	maxOpen := o.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	lifetime := o.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = 30 * time.Minute
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(lifetime)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
