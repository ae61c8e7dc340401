package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

const (
	AccountIDPrefix     = "ACC_"
	TransactionIDPrefix = "TXN_"
)

// NewAccountID returns a fresh account identifier such as ACC_9F2C01AB.
func NewAccountID() string {
	return AccountIDPrefix + shortID()
}

// NewTransactionID returns a fresh transaction identifier such as TXN_04D1E7C2.
func NewTransactionID() string {
	return TransactionIDPrefix + shortID()
}

func shortID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
