// Package brs reads and writes brs save files.
//
// A save is a scene of placed bricks plus metadata. The package maps
// between the binary file format and the in-memory save.Document model;
// it does not interpret brick semantics.
//
// # Basic Usage
//
// Writing a save:
//
//	doc := &save.Document{
//	    GameVersion: 3642,
//	    Identity: save.Identity{
//	        Map:        "Plate",
//	        Author:     save.Actor{ID: uuid.New(), Name: "builder"},
//	        BrickCount: 1,
//	    },
//	    Catalog: save.Catalog{BrickAssets: []string{"PB_DefaultBrick"}},
//	    Bricks: []save.Brick{{
//	        Size:      save.ProceduralSize(5, 5, 6),
//	        Collision: save.DefaultCollision(),
//	        Visible:   true,
//	        Color:     save.UniqueColor(255, 0, 0),
//	    }},
//	}
//
//	data, err := brs.Marshal(doc)
//
// Reading it back:
//
//	doc, err := brs.Unmarshal(data)
//
// For streams, NewEncoder and NewDecoder work over io.Writer and io.Reader.
//
// # Errors
//
// Decoding is all-or-nothing: on any failure no document is returned. All
// structural failures wrap one of the sentinels in package errs, so callers
// can test them with errors.Is.
//
// # Concurrency
//
// Encoders and decoders hold no shared state and are not safe for
// concurrent use; independent instances may run in parallel.
package brs

import (
	"bytes"

	"github.com/arloliu/brs/save"
)

// Marshal encodes doc into a new byte slice.
func Marshal(doc *save.Document, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer

	enc, err := NewEncoder(&buf, opts...)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes a complete save from data.
func Unmarshal(data []byte, opts ...Option) (*save.Document, error) {
	dec, err := NewDecoder(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode()
}
