// Package strfmt renders positional format templates.
//
// A template is literal text with holes of the form
//
//	{index[,alignment][:spec]}
//
// index selects an argument, alignment pads the rendered argument with spaces
// to at least that many runes (negative values left-justify) and spec is handed
// to the argument's AppendFormat method. Literal braces are written as "{{"
// and "}}". No whitespace is allowed inside a hole.
//
// Indexes and alignment magnitudes must be below 1,000,000. A larger value is
// a malformed template regardless of how many arguments are passed.
//
//	s, err := strfmt.Format("{0,-6}|{1:X4}", value.String("id"), value.Int32(255))
//	// s == "id    |00FF"
//
// Append and Format take value.Value arguments and never box them.
// AppendArgs and FormatArgs accept any slice of a type implementing
// Formattable. Both are driven by the same scanner and produce identical output.
//
// Templates used repeatedly can be parsed once with Compile, or looked up in a
// Cache keyed by the template's xxHash64.
//
// All failures wrap errs.ErrFormat. When an argument fails to format, the
// returned error also wraps the argument's own error.
package strfmt
