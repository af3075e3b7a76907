package storage

// Checksum calculates the CRC16 (CCITT, init 0xFFFF) guarding a calibration
// image. Same routine the firmware uses when it validates its flash copy.
func Checksum(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b ^= uint8(crc & 0xFF)
		b ^= b << 4
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}
