package bufferutil

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TxIDFromBytes returns the display (big-endian) hex encoding of a tx hash
// serialized in wire (little-endian) order.
func TxIDFromBytes(buffer []byte) string {
	return hex.EncodeToString(reverseBytes(buffer))
}

// TxIDToBytes converts a display-order txid to its wire serialization.
func TxIDToBytes(str string) ([]byte, error) {
	buffer, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	return reverseBytes(buffer), nil
}

// TxIDToHash parses a display-order txid into a chainhash.Hash usable in a
// wire.OutPoint.
func TxIDToHash(str string) (*chainhash.Hash, error) {
	return chainhash.NewHashFromStr(str)
}

// ScriptFromHex decodes a scriptPubKey from its hex representation.
func ScriptFromHex(str string) ([]byte, error) {
	return hex.DecodeString(str)
}

// ScriptToHex encodes a scriptPubKey to hex.
func ScriptToHex(script []byte) string {
	return hex.EncodeToString(script)
}

func reverseBytes(buf []byte) []byte {
	if len(buf) < 1 {
		return buf
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	for i := len(out)/2 - 1; i >= 0; i-- {
		j := len(out) - 1 - i
		out[i], out[j] = out[j], out[i]
	}
	return out
}
