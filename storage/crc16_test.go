package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksumKnownValues(t *testing.T) {
	assert.Equal(t, uint16(0xFFFF), Checksum(nil))
	// CRC-16/MCRF4XX check value for "123456789"
	assert.Equal(t, uint16(0x6F91), Checksum([]byte("123456789")))
}

func TestChecksumDetectsSingleByteChange(t *testing.T) {
	a := []byte{0x01, 0x02, 0x03}
	b := []byte{0x01, 0x02, 0x04}
	assert.NotEqual(t, Checksum(a), Checksum(b))
	assert.Equal(t, Checksum(a), Checksum([]byte{0x01, 0x02, 0x03}))
}
