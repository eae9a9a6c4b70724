// Package cli implements the profile command-line client.
//
// Commands:
//
//	register -name NAME -email EMAIL -phone PHONE -picture FILE [-password PW]
//	get -id N [-out FILE]
//
// When -password is omitted the password is read from the terminal twice,
// without echo, and both entries must match. If stdin is not a terminal its
// first line is used instead. get prints the profile as JSON; with -out the picture bytes are
// written to FILE instead of being printed.
package cli
