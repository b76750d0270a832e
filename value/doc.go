// Package value provides Value, a tagged container that can hold Go scalars,
// strings, durations, times and segments without heap allocation.
//
// # Layout
//
// A Value is two words: a 64-bit payload and an interface slot. The slot
// identifies how the payload is interpreted:
//
//   - a type tag: the payload holds the bits of a bool, integer, float,
//     duration, UTC tick count, packed offset timestamp or enum value
//   - a string data pointer: the payload holds the string length
//   - a segment data pointer: the payload holds offset<<32 | count
//   - nil: the Value is unset and the payload is zero
//   - anything else: the slot holds the boxed value itself
//
// Tags are package-level singletons compared by pointer, so checking whether a
// Value holds an int32 is a single comparison.
//
// # Construction
//
// Typed constructors cover every directly stored type:
//
//	v := value.Int32(42)
//	s := value.String("hello")
//	t := value.Time(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
//
// Of dispatches on its type parameter and never boxes supported types.
// Pointers to supported types are their nullable form: a nil pointer produces
// an unset Value, otherwise the pointee is stored. Named integer types are
// treated as enums and get a lazily created tag of their own. Every other type
// is boxed:
//
//	value.Of(int64(7))        // tagged int64
//	value.Of((*int32)(nil))   // unset
//	value.Of(Weekday(3))      // enum tag for Weekday
//	value.Of(&config)         // boxed *Config
//
// Box is the non-generic entry point for callers that only have an any.
//
// # Retrieval
//
//	n, ok := value.TryGet[int32](v)
//	t, err := value.As[time.Time](v)
//
// TryGet never fails with an error: a mismatched type reports false. As wraps
// errs.ErrInvalidCast.
//
// # Times
//
// time.Time values in time.UTC are stored as 100ns ticks since 0001-01-01.
// Times in an anonymous fixed zone whose offset is a multiple of 30 minutes
// within ±14h are packed with their offset into one word when they fall in the
// window starting at 1800-01-01 (about 913 years). Other times are boxed and
// still round-trip exactly.
//
// # Formatting
//
// AppendFormat renders a Value with an optional format spec: numeric specs
// such as "X8", "D4", "N2" or "P1", Go time layouts, and enum names registered
// with RegisterEnum.
package value
