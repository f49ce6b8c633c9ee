// stamp recomputes a collection fingerprint from the command line, so an
// operator can check a printed label against a database row without running
// the full service.
//
//	stamp -herb ashwagandha -quantity 5 -grade premium \
//	      -lat 28.6139 -lng 77.2090 -ts 2026-08-01T09:30:00Z
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"github.com/shopspring/decimal"
)

func main() {
	herb := flag.String("herb", "", "herb type")
	quantity := flag.String("quantity", "", "quantity in kg")
	grade := flag.String("grade", "", "quality grade")
	lat := flag.String("lat", "", "latitude (optional)")
	lng := flag.String("lng", "", "longitude (optional)")
	ts := flag.String("ts", "", "collection timestamp, RFC 3339")
	flag.Parse()

	if *herb == "" || *quantity == "" || *grade == "" || *ts == "" {
		fmt.Fprintln(os.Stderr, "usage: stamp -herb TYPE -quantity KG -grade GRADE -ts RFC3339 [-lat LAT -lng LNG]")
		os.Exit(2)
	}

	qty, err := decimal.NewFromString(*quantity)
	if err != nil {
		fatal("invalid quantity: %v", err)
	}
	when, err := time.Parse(time.RFC3339, *ts)
	if err != nil {
		fatal("invalid timestamp: %v", err)
	}

	payload := ledger.NewCanonicalPayload(*herb, qty, *grade, parseCoord(*lat), parseCoord(*lng), when)
	fingerprint, err := ledger.Fingerprint(payload)
	if err != nil {
		fatal("fingerprint: %v", err)
	}
	fmt.Println(fingerprint)
}

func parseCoord(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		fatal("invalid coordinate %q: %v", s, err)
	}
	return &d
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
