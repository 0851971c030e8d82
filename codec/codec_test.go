package codec

import (
	"testing"

	"github.com/spacemeshos/go-scale"
	"github.com/stretchr/testify/require"
)

type pair struct {
	Height uint64
	Name   []byte
}

func (p *pair) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeCompact64(enc, p.Height)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, p.Name, 32)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (p *pair) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		p.Height = field
	}
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, 32)
		if err != nil {
			return total, err
		}
		total += n
		p.Name = field
	}
	return total, nil
}

func TestEncodeDecode(t *testing.T) {
	value := &pair{Height: 1 << 40, Name: []byte("alice")}
	buf, err := Encode(value)
	require.NoError(t, err)

	var decoded pair
	require.NoError(t, Decode(buf, &decoded))
	require.Equal(t, value, &decoded)

	again, err := Encode(value)
	require.NoError(t, err)
	require.Equal(t, buf, again, "pooled buffer must not leak previous content")
}

func TestDecodeErrors(t *testing.T) {
	buf, err := Encode(&pair{Height: 7, Name: []byte("bob")})
	require.NoError(t, err)

	var decoded pair
	require.Error(t, Decode(buf[:len(buf)-1], &decoded))
	require.ErrorContains(t, Decode(append(buf, 0), &decoded), "trailing bytes")
}

func TestEncodeLimit(t *testing.T) {
	_, err := Encode(&pair{Name: make([]byte, 33)})
	require.Error(t, err)
}
