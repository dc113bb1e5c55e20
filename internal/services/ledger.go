package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocql/gocql"

	"pceshop_back_end/internal/database"
	"pceshop_back_end/internal/models"
)

var ErrLedgerDisabled = errors.New("stock ledger is not configured")

// Ledger appends stock movements and audit events to ScyllaDB. A nil
// *Ledger drops writes and refuses reads with ErrLedgerDisabled.
type Ledger struct {
	session *gocql.Session
}

func NewLedger(session *gocql.Session) *Ledger {
	if session == nil {
		return nil
	}
	return &Ledger{session: session}
}

func (l *Ledger) RecordMovements(ctx context.Context, movements []models.StockMovement) error {
	if l == nil {
		return nil
	}
	for _, m := range movements {
		var orderID *int64
		if m.OrderID != nil {
			id := int64(*m.OrderID)
			orderID = &id
		}
		if err := l.session.Query(database.CQLInsertStockMovement,
			int64(m.ProductID), m.ID, orderID, m.Type, m.Quantity, m.NewStock, m.Reason, m.UserID, m.CreatedAt,
		).WithContext(ctx).Exec(); err != nil {
			return fmt.Errorf("stock movement for product %d: %w", m.ProductID, err)
		}
	}
	return nil
}

// Movements returns the latest movements of a product, newest first.
func (l *Ledger) Movements(ctx context.Context, productID uint, limit int) ([]models.StockMovement, error) {
	if l == nil {
		return nil, ErrLedgerDisabled
	}

	iter := l.session.Query(database.CQLSelectStockMovements, int64(productID), limit).WithContext(ctx).Iter()

	movements := []models.StockMovement{}
	var (
		m       models.StockMovement
		orderID *int64
	)
	for iter.Scan(&m.ID, &orderID, &m.Type, &m.Quantity, &m.NewStock, &m.Reason, &m.UserID, &m.CreatedAt) {
		m.ProductID = productID
		m.OrderID = nil
		if orderID != nil {
			id := uint(*orderID)
			m.OrderID = &id
		}
		movements = append(movements, m)
		orderID = nil
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return movements, nil
}

// RecordAudit stores one audit event, partitioned by UTC day.
func (l *Ledger) RecordAudit(ctx context.Context, entry models.AuditLog) error {
	if l == nil {
		return nil
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.ID == (gocql.UUID{}) {
		entry.ID = gocql.UUIDFromTime(entry.Timestamp)
	}
	return l.session.Query(database.CQLInsertAuditLog,
		entry.Timestamp.UTC().Format("2006-01-02"), entry.ID, entry.UserID, entry.Action, entry.Resource,
		entry.ResourceID, entry.IPAddress, entry.UserAgent, entry.Success, entry.ErrorMsg, entry.Timestamp,
	).WithContext(ctx).Exec()
}

// AuditLogs returns the audit events of one UTC day ("2006-01-02"), newest
// first.
func (l *Ledger) AuditLogs(ctx context.Context, day string, limit int) ([]models.AuditLog, error) {
	if l == nil {
		return nil, ErrLedgerDisabled
	}

	iter := l.session.Query(database.CQLSelectAuditLogs, day, limit).WithContext(ctx).Iter()

	logs := []models.AuditLog{}
	var e models.AuditLog
	for iter.Scan(&e.ID, &e.UserID, &e.Action, &e.Resource, &e.ResourceID, &e.IPAddress, &e.UserAgent, &e.Success, &e.ErrorMsg, &e.Timestamp) {
		logs = append(logs, e)
		e = models.AuditLog{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return logs, nil
}
