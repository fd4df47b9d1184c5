package hwio

type unsigned interface {
	~uint8 | ~uint16 | ~uint32
}

func GetBit[T unsigned](v T, n uint) bool {
	return GetBiti(v, n) != 0
}

func GetBiti[T unsigned](v T, n uint) T {
	return v >> n & 0x01
}

func SetBit[T unsigned](v *T, n uint) {
	*v |= 1 << n
}

func ClearBit[T unsigned](v *T, n uint) {
	*v &^= 1 << n
}

func ClearBits[T unsigned](v *T, mask T) {
	*v &^= mask
}

// Reverse8 returns b with its bits in reverse order.
func Reverse8(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}
