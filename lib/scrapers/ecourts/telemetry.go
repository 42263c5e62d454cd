package ecourts

import (
	"causelist-backend/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("causelist.lib.scrapers.ecourts")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput turns on raw request/response dumping for
// every client in this package. May be set after clients are created.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

// deferredOutput reads the package-level output at write time so the
// dump destination can be configured after NewClient.
type deferredOutput struct{}

func (deferredOutput) Write(id string, contents string) {
	if restyInstrumentOutput == nil {
		return
	}
	restyInstrumentOutput.Write(id, contents)
}
