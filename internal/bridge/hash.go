package bridge

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/propchain/bridge/pkg/types"
)

// GenerateTransactionHash produces the execution fingerprint of a
// request: keccak256 over the canonical encoding of the request fields
// plus the execution timestamp. Identical inputs at an identical
// timestamp always yield an identical digest. The digest is an
// idempotency and verification token scoped to one execution; it does
// not content-address the metadata payload.
func GenerateTransactionHash(req *types.BridgeRequest, executedAt time.Time) common.Hash {
	var buf bytes.Buffer
	writeUint64(&buf, req.ID)
	writeUint64(&buf, req.AssetID)
	writeString(&buf, string(req.SourceChain))
	writeString(&buf, string(req.DestinationChain))
	writeString(&buf, string(req.Sender))
	writeString(&buf, string(req.Recipient))
	writeUint64(&buf, uint64(executedAt.UnixMilli()))
	return crypto.Keccak256Hash(buf.Bytes())
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

// Strings are length-prefixed so adjacent fields cannot collide.
func writeString(buf *bytes.Buffer, s string) {
	writeUint64(buf, uint64(len(s)))
	buf.WriteString(s)
}
