package simulation

// partitionRange splits [0, maxIndex) into parallelDegree buckets with a
// maximum imbalance of one item, spreading the remainder over the first
// buckets.
func partitionRange(parallelDegree, maxIndex, bucket int) (lo, hi int) {
	nPart := maxIndex / parallelDegree
	remainder := maxIndex % parallelDegree
	var startAdd, endAdd int
	if remainder != 0 {
		if bucket+1 > remainder {
			startAdd = remainder
		} else {
			startAdd = bucket
			endAdd = 1
		}
	}
	lo = bucket*nPart + startAdd
	hi = lo + nPart + endAdd
	return
}
