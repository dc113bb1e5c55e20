package database

import (
	"fmt"
	"log"

	"github.com/gocql/gocql"
)

// CQL used by the stock ledger and the audit log.
const (
	CQLInsertStockMovement = `INSERT INTO stock_movements (product_id, id, order_id, type, quantity, new_stock, reason, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	CQLSelectStockMovements = `SELECT id, order_id, type, quantity, new_stock, reason, user_id, created_at
		FROM stock_movements WHERE product_id = ? LIMIT ?`
	CQLSelectAuditLogs = `SELECT id, user_id, action, resource, resource_id, ip_address, user_agent, success, error_msg, timestamp
		FROM audit_logs WHERE day = ? LIMIT ?`
	CQLInsertAuditLog = `INSERT INTO audit_logs (day, id, user_id, action, resource, resource_id, ip_address, user_agent, success, error_msg, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

var ledgerTables = []string{
	`CREATE TABLE IF NOT EXISTS stock_movements (
		product_id bigint,
		id timeuuid,
		order_id bigint,
		type text,
		quantity int,
		new_stock int,
		reason text,
		user_id text,
		created_at timestamp,
		PRIMARY KEY (product_id, id)
	) WITH CLUSTERING ORDER BY (id DESC)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		day text,
		id timeuuid,
		user_id text,
		action text,
		resource text,
		resource_id text,
		ip_address text,
		user_agent text,
		success boolean,
		error_msg text,
		timestamp timestamp,
		PRIMARY KEY (day, id)
	) WITH CLUSTERING ORDER BY (id DESC)`,
}

// EnsureLedgerSchema creates the ledger tables in the session keyspace.
func EnsureLedgerSchema(session *gocql.Session) error {
	for _, stmt := range ledgerTables {
		if err := session.Query(stmt).Exec(); err != nil {
			return fmt.Errorf("ledger schema: %w", err)
		}
	}
	log.Println("✅ Ledger tables ready")
	return nil
}
