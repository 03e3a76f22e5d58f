// Package codec centralizes the CBOR encode/decode modes Tresor uses for
// its on-blob structures (OuterHeader, Data, Entry). A single shared mode
// pair keeps the wire convention (canonical map-key ordering, no duplicate
// keys on decode) stable across the whole module and across versions.
package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: build encode mode: %v", err))
	}
	encMode = em

	dm, err := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: build decode mode: %v", err))
	}
	decMode = dm
}

// Marshal encodes v using the module's canonical CBOR mode. Struct fields
// become map entries keyed by their `cbor` tag; []byte fields become CBOR
// byte strings; string fields become CBOR text strings.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes data into v using the module's CBOR mode. It rejects
// maps with duplicate keys rather than silently taking the last one.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
