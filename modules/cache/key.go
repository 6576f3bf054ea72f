package cache

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/paichaigo43/project1/domain/calculation"
)

// Key returns the Redis cache key of c: the operation name followed by the
// xxhash64 of the operation and the IEEE-754 bits of both operands.
// Operands that differ in any bit, including 0 and -0, get distinct keys.
func Key(c calculation.Calculation) string {
	return string(c.Operation) + ":" + digest(c)
}

// kvKey is Key for JetStream KV buckets, which do not allow ':' in keys.
func kvKey(c calculation.Calculation) string {
	return string(c.Operation) + "." + digest(c)
}

func digest(c calculation.Calculation) string {
	buf := make([]byte, 0, len(c.Operation)+1+16)
	buf = append(buf, c.Operation...)
	buf = append(buf, 0)
	buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(c.Operand1))
	buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(c.Operand2))

	return strconv.FormatUint(xxhash.Sum64(buf), 16)
}
