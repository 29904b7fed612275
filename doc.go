/*
Package star parses and writes STAR-family text formats: generic STAR and
CIF, and through the nef subpackage the NEF and NMR-STAR dialects used for
NMR data exchange.

Reading follows the specification in International Tables for
Crystallography volume G section 2.1, with two deviations: nested loops
are not supported, and global_ blocks are treated as plain data blocks (a
leading global becomes a block named global_, later ones are numbered).

Parse returns a tree that mirrors the file:

	DataExtent
	  DataBlock
	    Item
	    Loop
	    SaveFrame
	      Item
	      Loop

DataExtent, DataBlock, and SaveFrame are insertion-ordered containers.
Tags are preserved as written, without stripping the leading _, data_, or
save_; duplicate tags are an error. A Loop is registered in its container
once under every column name, all keys resolving to the same *Loop.

Quoted values are plain strings; unquoted values come back as the marker
type UnquotedValue. That distinction is what later lets the nef package
tell the null value . and boolean true from the equivalent quoted strings.

How strictly structural shortcuts are policed is controlled by a Mode:

	ext, err := star.Parse(text, star.WithMode(star.Lenient))

Writing is the reverse: String on any node produces text that parses back
to the same structure. Plain strings are quoted as their content requires,
up to ;-delimited multiline blocks; UnquotedValue strings are written
verbatim; nil, booleans, NaN, and infinities become the unquoted special
values listed in this package.
*/
package star
