package domain

import (
	"time"

	"github.com/jaiguruastro/astroremedy/pkg/idx"
)

// Agreements are the consent flags a customer ticks before registering.
type Agreements struct {
	Terms          bool
	Privacy        bool
	Disclaimer     bool
	ReturnPolicy   bool
	DataProcessing bool
	Marketing      bool
}

// Mandatory reports whether every agreement except Marketing is given.
func (a Agreements) Mandatory() bool {
	return a.Terms && a.Privacy && a.Disclaimer && a.ReturnPolicy && a.DataProcessing
}

// ConsentRecord is the audit trail of the agreements accepted at
// registration, with where they were accepted from.
type ConsentRecord struct {
	ID     idx.ID
	UserID string
	Agreements
	IPAddress  string
	UserAgent  string
	AcceptedAt time.Time
}
