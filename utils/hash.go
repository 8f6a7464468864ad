package utils

import "hash/fnv"

func U64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func Mix64(a, b uint64) uint64 {
	h := fnv.New64a()
	h.Write(U64ToBytes(a))
	h.Write(U64ToBytes(b))
	return h.Sum64()
}

// MixAll folds fps left to right starting from seed.
func MixAll(seed uint64, fps ...uint64) uint64 {
	acc := seed
	for _, fp := range fps {
		acc = Mix64(acc, fp)
	}
	return acc
}
