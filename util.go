package omegalz

import (
	mathbits "math/bits"
)

func bitLen(x uint64) int {
	return mathbits.Len64(x)
}
