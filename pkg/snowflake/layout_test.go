package snowflake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name                            string
		delta, datacenter, machine, seq int64
	}{
		{"zeros", 0, 0, 0, 0},
		{"small", 1, 1, 1, 1},
		{"mixed", 123456789, 3, 7, 42},
		{"max", MaxTimestampDelta, MaxDatacenterID, MaxMachineID, MaxSequence},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := Encode(tc.delta, tc.datacenter, tc.machine, tc.seq)
			assert.Equal(t, tc.delta, DecodeTimestampDelta(id))
			assert.Equal(t, tc.datacenter, DecodeDatacenterID(id))
			assert.Equal(t, tc.machine, DecodeMachineID(id))
			assert.Equal(t, tc.seq, DecodeSequence(id))
		})
	}
}

func TestEncodeFieldPositions(t *testing.T) {
	// Each part lands in its own bit range and nowhere else.
	require.Equal(t, int64(1)<<27, Encode(1, 0, 0, 0))
	require.Equal(t, int64(1)<<22, Encode(0, 1, 0, 0))
	require.Equal(t, int64(1)<<12, Encode(0, 0, 1, 0))
	require.Equal(t, int64(1), Encode(0, 0, 0, 1))
}

func TestMaxConstants(t *testing.T) {
	assert.Equal(t, int64(1023), MaxMachineID)
	assert.Equal(t, int64(31), MaxDatacenterID)
	assert.Equal(t, int64(4095), MaxSequence)
	assert.Equal(t, int64(1)<<37-1, MaxTimestampDelta)
}
