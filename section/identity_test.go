package section

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/brs/encoding"
	"github.com/arloliu/brs/errs"
	"github.com/arloliu/brs/save"
)

func encodeIdentity(t *testing.T, id save.Identity) []byte {
	t.Helper()

	w := encoding.NewWriter()
	defer w.Release()
	require.NoError(t, WriteIdentity(w, &id))

	return append([]byte(nil), w.Bytes()...)
}

func TestIdentityRoundTrip(t *testing.T) {
	author := save.Actor{ID: uuid.New(), Name: "author"}
	host := save.Actor{ID: uuid.New(), Name: "host"}

	id := save.Identity{
		Map:         "Studio",
		Author:      author,
		Host:        &host,
		Description: "a description",
		SaveTime:    [8]byte{8, 7, 6, 5, 4, 3, 2, 1},
		BrickCount:  42,
	}

	got, err := ReadIdentity(encodeIdentity(t, id))
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestIdentityMissingHostResolvesToAuthor(t *testing.T) {
	id := save.Identity{Map: "Plate", Author: save.Actor{ID: uuid.New(), Name: "solo"}}

	got, err := ReadIdentity(encodeIdentity(t, id))
	require.NoError(t, err)
	require.NotNil(t, got.Host)
	require.Equal(t, id.Author, *got.Host)
}

func TestIdentityLayout(t *testing.T) {
	id := save.Identity{Map: "M", Author: save.Actor{Name: "A"}, Description: "", BrickCount: 3}
	data := encodeIdentity(t, id)

	// map, author name, description, author id, host name, host id, save time, brick count
	require.Len(t, data, (4+1)+(4+1)+4+16+(4+1)+16+8+4)
	require.Equal(t, []byte{1, 0, 0, 0, 'M'}, data[:5])
	require.Equal(t, []byte{3, 0, 0, 0}, data[len(data)-4:])
}

func TestReadIdentityErrors(t *testing.T) {
	data := encodeIdentity(t, save.Identity{BrickCount: 1})

	_, err := ReadIdentity(data[:len(data)-1])
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)

	_, err = ReadIdentity(append(data, 0))
	require.ErrorIs(t, err, errs.ErrTrailingBlockData)

	negative := append([]byte(nil), data...)
	copy(negative[len(negative)-4:], []byte{0xff, 0xff, 0xff, 0xff})
	_, err = ReadIdentity(negative)
	require.ErrorIs(t, err, errs.ErrInvalidLength)
}
