// Package ticket synthesizes ticket numbers and the Code 128 barcode
// rasters embedded in the paginated documents.
package ticket

import (
	"bytes"
	"fmt"
	"image/png"
	"math/rand"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// Raster dimensions in pixels; height maps to the fixed 8mm strip the
// flight ticket reserves per traveller row.
const (
	barcodeWidth  = 400
	barcodeHeight = 80
)

// BarcodePNG encodes id as a Code 128 barcode and returns it as PNG
// bytes. An empty id or one containing characters outside the Code 128
// symbology fails with a descriptive error rather than truncating.
func BarcodePNG(id string) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("barcode: empty identifier")
	}
	bc, err := code128.Encode(id)
	if err != nil {
		return nil, fmt.Errorf("barcode: identifier %q not encodable as code128: %w", id, err)
	}
	scaled, err := barcode.Scale(bc, barcodeWidth, barcodeHeight)
	if err != nil {
		return nil, fmt.Errorf("barcode: scaling %q: %w", id, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("barcode: encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// Number synthesizes a ticket number for the traveller at index when no
// explicit e-ticket number was supplied: carrier prefix, four digits and
// a letter suffix keyed to the traveller position.
func Number(rnd *rand.Rand, prefix string, index int) string {
	if prefix == "" {
		prefix = "TVK"
	}
	return fmt.Sprintf("%s%04d%c", prefix, 1000+rnd.Intn(9000), 'A'+rune(index%26))
}
