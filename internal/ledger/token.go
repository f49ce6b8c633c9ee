package ledger

import (
	"encoding/json"
	"strings"
)

// ScanToken is the decoded form of a client-presented lookup token. Exactly
// one branch is populated: either the token was a raw string (a transaction
// id or record id used as-is), or it was a structured scan payload from which
// a single identifying field was extracted.
type ScanToken struct {
	// Raw is set when the token is an opaque string.
	Raw string

	// TransactionID / RecordID are set when the token was a structured
	// payload carrying one of these fields.
	TransactionID string
	RecordID      string
}

// structuredToken mirrors the payload embedded in generated QR codes.
type structuredToken struct {
	TransactionID string `json:"transactionId"`
	ID            string `json:"id"`
}

// DecodeToken parses a client token once, at the boundary. Tokens that look
// like JSON objects must decode and carry a transactionId or id field;
// anything else is treated as a raw identifier. Untyped payloads never
// propagate past this function.
func DecodeToken(token string) (ScanToken, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ScanToken{}, &MalformedTokenError{Reason: "empty token"}
	}

	if strings.HasPrefix(trimmed, "{") {
		var st structuredToken
		if err := json.Unmarshal([]byte(trimmed), &st); err != nil {
			return ScanToken{}, &MalformedTokenError{Reason: "invalid scan payload encoding"}
		}
		switch {
		case st.TransactionID != "":
			return ScanToken{TransactionID: st.TransactionID}, nil
		case st.ID != "":
			return ScanToken{RecordID: st.ID}, nil
		default:
			return ScanToken{}, &MalformedTokenError{Reason: "scan payload carries no transactionId or id"}
		}
	}

	return ScanToken{Raw: trimmed}, nil
}
