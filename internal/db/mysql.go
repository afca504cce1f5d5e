package db

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLClient manages the connection to MySQL.
type MySQLClient struct {
	*sqlClient
}

// NewMySQLClient creates a new MySQL client.
func NewMySQLClient(ctx context.Context, connString string) (*MySQLClient, error) {
	c, err := newSQLClient(ctx, "mysql", connString)
	if err != nil {
		return nil, err
	}
	return &MySQLClient{sqlClient: c}, nil
}
