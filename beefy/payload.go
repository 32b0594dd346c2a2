package beefy

import (
	"bytes"
	"sort"

	"github.com/beefynet/beefy/codec"
	"github.com/beefynet/beefy/common/types"
)

// PayloadTag identifies one entry within a Payload. Real BEEFY networks
// reserve "mh" for the MMR root; other tags are left for future payload
// providers this worker doesn't need to understand.
type PayloadTag [2]byte

// MMRRootTag is the payload entry this worker reads and writes.
var MMRRootTag = PayloadTag{'m', 'h'}

type payloadItem struct {
	Tag  PayloadTag
	Data []byte
}

// Payload is a tagged byte blob: zero or more (tag, bytes) entries, kept
// sorted by tag so two payloads built from the same entries always encode
// identically regardless of insertion order.
type Payload struct {
	items []payloadItem
}

// Set installs or replaces the entry for tag.
func (p *Payload) Set(tag PayloadTag, data []byte) {
	for i := range p.items {
		if p.items[i].Tag == tag {
			p.items[i].Data = data
			return
		}
	}
	p.items = append(p.items, payloadItem{Tag: tag, Data: data})
	sort.Slice(p.items, func(i, j int) bool {
		return bytes.Compare(p.items[i].Tag[:], p.items[j].Tag[:]) < 0
	})
}

// Get returns the entry for tag, if present.
func (p Payload) Get(tag PayloadTag) ([]byte, bool) {
	for _, it := range p.items {
		if it.Tag == tag {
			return it.Data, true
		}
	}
	return nil, false
}

// MMRRoot returns the payload's MMR-root entry, if present and well-formed.
func (p Payload) MMRRoot() (types.Hash32, bool) {
	b, ok := p.Get(MMRRootTag)
	if !ok || len(b) != len(types.Hash32{}) {
		return types.Hash32{}, false
	}
	var h types.Hash32
	copy(h[:], b)
	return h, true
}

// MMRRootPayload builds the single-entry payload this worker signs.
func MMRRootPayload(root types.Hash32) Payload {
	var p Payload
	p.Set(MMRRootTag, root[:])
	return p
}

// encodePayload returns p's canonical wire encoding, used as a map key for
// grouping votes into rounds.
func encodePayload(p Payload) ([]byte, error) {
	return codec.Encode(&p)
}

// Equal reports whether p and other carry the same entries.
func (p Payload) Equal(other Payload) bool {
	if len(p.items) != len(other.items) {
		return false
	}
	for i := range p.items {
		if p.items[i].Tag != other.items[i].Tag || !bytes.Equal(p.items[i].Data, other.items[i].Data) {
			return false
		}
	}
	return true
}
