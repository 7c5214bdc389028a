// Package cffi documents the intended C-callable boundary for the koi
// package (spec.md §6 "Foreign-function boundary (collaborator, not
// core)"). It deliberately contains no cgo bindings: spec.md §1 lists
// "foreign-function bindings" as explicitly out of scope for the core
// engine, and no third-party example in this pack hand-writes cgo export
// stubs, so generating them here would not be grounded in anything the
// corpus actually does.
//
// A future binding layer built on top of package koi should follow these
// rules, consistent with spec.md §5, §6, §9:
//
//   - Ownership: koi_parser_new(source) takes ownership of source; a
//     matching koi_parser_free(parser) destroys both the parser and its
//     source, mirroring Parser owning its InputSource for its entire
//     lifetime.
//   - Borrow vs. own: values returned from koi_command_param(cmd, i) are
//     borrows, invalidated by any subsequent mutation of cmd. Composite
//     accessors (koi_value_dict_get, koi_value_list_item) are borrows of
//     their parent Value in the same way.
//   - Two-call buffer sizing: any function that copies a string into a
//     caller buffer (koi_error_format, koi_value_string) takes a
//     (buf *byte, buf_len int) pair and returns the number of bytes
//     required; a nil buf, or a buf_len too small, returns just the
//     required size (including the NUL terminator) without writing
//     anything, and a sufficiently large buf gets the data plus a
//     terminating NUL.
//   - Return codes: 0 success, -1 null/invalid argument, -2 index out of
//     bounds, -3 type mismatch or invalid handle, matching spec.md §6's
//     enumerated convention exactly.
package cffi
