package ledger

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// FingerprintPrefix marks every content fingerprint.
	FingerprintPrefix = "0x"

	// TransactionIDPrefix marks every submission identifier.
	TransactionIDPrefix = "txn_"

	// transactionIDBytes gives 96 bits of entropy — collision in practice
	// negligible across any realistic submission volume.
	transactionIDBytes = 12
)

// CanonicalPayload is the fixed, order-stable serialization of a record's
// semantic fields used as hash input. Field order is the struct order;
// encoding/json preserves it, so identical payloads always produce identical
// bytes. The fingerprint and transaction id themselves are never part of it.
type CanonicalPayload struct {
	HerbType     string  `json:"herb_type"`
	Quantity     string  `json:"quantity"`
	QualityGrade string  `json:"quality_grade"`
	LocationLat  *string `json:"location_lat"`
	LocationLng  *string `json:"location_lng"`
	TS           int64   `json:"ts"`
}

// NewCanonicalPayload normalizes the raw field values into their canonical
// string forms: quantity fixed to three decimal places and coordinates to six,
// matching the column scales so a stored row re-canonicalizes to the same
// bytes it was stamped over; timestamps as UTC unix milliseconds.
func NewCanonicalPayload(herbType string, quantity decimal.Decimal, qualityGrade string, lat, lng *decimal.Decimal, ts time.Time) CanonicalPayload {
	return CanonicalPayload{
		HerbType:     herbType,
		Quantity:     quantity.StringFixed(3),
		QualityGrade: qualityGrade,
		LocationLat:  coordString(lat),
		LocationLng:  coordString(lng),
		TS:           ts.UTC().UnixMilli(),
	}
}

func coordString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(6)
	return &s
}

// CanonicalEventPayload is the hash input for a supply-chain event stamp.
type CanonicalEventPayload struct {
	CollectionID string `json:"collection_id"`
	EventType    string `json:"event_type"`
	Status       string `json:"status"`
	Description  string `json:"description"`
	TS           int64  `json:"ts"`
}

// CanonicalLabPayload is the hash input for a lab test result stamp.
type CanonicalLabPayload struct {
	CollectionID       string  `json:"collection_id"`
	LabName            string  `json:"lab_name"`
	PurityPercentage   *string `json:"purity_percentage"`
	MoisturePercentage *string `json:"moisture_percentage"`
	PesticidesDetected bool    `json:"pesticides_detected"`
	TS                 int64   `json:"ts"`
}

// PercentString renders a bounded percentage in its canonical fixed form.
func PercentString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}

// Fingerprint computes the content-addressed fingerprint of a canonical
// payload: SHA-256 of its deterministic JSON encoding, rendered as a
// lowercase hex string behind the fixed prefix. encoding/json emits struct
// fields in declaration order, so identical payloads always hash identically.
func Fingerprint(p any) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("canonical encode: %w", err)
	}
	sum := sha256.Sum256(b)
	return FingerprintPrefix + hex.EncodeToString(sum[:]), nil
}

// FingerprintChecksums computes a batch-level aggregate over an already
// sorted set of member fingerprints. Callers sort first so that the same set
// yields the same aggregate regardless of insertion order.
func FingerprintChecksums(sorted []string) string {
	h := sha256.New()
	for _, fp := range sorted {
		h.Write([]byte(fp))
		h.Write([]byte{'\n'})
	}
	return FingerprintPrefix + hex.EncodeToString(h.Sum(nil))
}

// NewTransactionID draws a fresh opaque submission identifier from the
// system CSPRNG. Identifiers are never derived from content: the fingerprint
// answers "is this exact data unaltered", the transaction id answers "which
// specific submission is this".
func NewTransactionID() (string, error) {
	buf := make([]byte, transactionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("transaction id entropy: %w", err)
	}
	return TransactionIDPrefix + hex.EncodeToString(buf), nil
}

// Stamp fingerprints a canonical payload and assigns a transaction id in one
// step. Calling it twice with byte-identical payloads yields identical
// fingerprints but distinct transaction ids.
func Stamp(p any) (fingerprint, transactionID string, err error) {
	fingerprint, err = Fingerprint(p)
	if err != nil {
		return "", "", err
	}
	transactionID, err = NewTransactionID()
	if err != nil {
		return "", "", err
	}
	return fingerprint, transactionID, nil
}

// Verify recomputes the fingerprint from the stored fields and compares it to
// the stored value. A mismatch is a data-integrity signal, not an error: the
// persisted payload has silently diverged from what was originally stamped.
func Verify(stored string, p any) bool {
	recomputed, err := Fingerprint(p)
	if err != nil {
		return false
	}
	return recomputed == stored
}
