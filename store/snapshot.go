// Package store serializes parsed robots documents through their
// well-typed snapshot shape. There is no persistence layer behind it;
// callers decide where the bytes go.
package store

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v4"
	"gitlab.com/robotk/robotk"
)

// Encode a document snapshot into msgpack bytes
func Encode(doc *robotk.Document) ([]byte, error) {
	data, err := msgpack.Marshal(doc.Snapshot())
	if err != nil {
		return nil, errors.Wrap(err, "encoding snapshot")
	}
	return data, nil
}

// Decode msgpack bytes back into a document via the explicit
// snapshot constructor.
func Decode(data []byte) (*robotk.Document, error) {
	snap := &robotk.DocumentSnapshot{}
	if err := msgpack.Unmarshal(data, snap); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot")
	}
	doc, err := robotk.FromSnapshot(snap)
	if err != nil {
		return nil, errors.Wrap(err, "rebuilding document")
	}
	return doc, nil
}
