// Package directive recognizes directive comments and attaches them to
// simple statements of a parsed file.
//
// A directive is a line comment whose body starts with a configured prefix:
//
//	# nac3: unroll
//	for i in range(4):
//	    # nac3: keep
//	    x = i; y = x  # nac3: last
//
// Attachment runs in two phases. Collect filters the flat, ordered comment
// list produced by the lexer. Attach then walks the finished tree in source
// order, groups simple statements that share a physical line, and gives
// every group its above-run (own-line directives at the group's column) and
// end comment (a directive trailing the group's last line). Column equality
// is the only signal used: a directive that aligns with nothing is an
// AlignmentError and the whole parse fails.
//
// Within a group the first statement receives the above-run and the last
// one the end comment; interior statements stay empty.
package directive
