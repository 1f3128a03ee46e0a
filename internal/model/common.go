package model

import "github.com/gostonefire/elastichashmap/hashfunc"

// TableConf - Is a struct to be passed in the call to NewTable and contains configuration that affects
// table layout and growth.
//   - InitialCapacity is the total number of slots to spread over the segments
//   - Delta is the load-gap parameter, the fraction of the capacity that is kept free at the growth threshold
//   - HashAlgorithm is the key hash function to use
type TableConf struct {
	InitialCapacity int
	Delta           float64
	HashAlgorithm   hashfunc.HashAlgorithm
}
