package pool

import (
	"sync"

	"github.com/arloliu/touki/value"
)

var valueSlicePool = sync.Pool{
	New: func() any { return &[]value.Value{} },
}

// GetValueSlice retrieves and resizes a Value slice from the pool.
//
// The returned slice will have the exact length specified by the size parameter.
// If the pooled slice has insufficient capacity, a new slice will be allocated.
// The caller must call the returned cleanup function to return the slice to the pool;
// cleanup zeroes the elements so boxed values are not kept alive by the pool.
//
// Example:
//
//	args, cleanup := pool.GetValueSlice(len(fields))
//	defer cleanup()
//	for i, f := range fields {
//	    args[i] = value.String(f)
//	}
func GetValueSlice(size int) ([]value.Value, func()) {
	ptr, _ := valueSlicePool.Get().(*[]value.Value)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]value.Value, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() {
		clear(*ptr)
		valueSlicePool.Put(ptr)
	}
}
