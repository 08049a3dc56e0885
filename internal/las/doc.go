// Package las reads and writes Log ASCII Standard (LAS) well-log files.
//
// Parse turns the raw lines of a LAS 1.2, 2.0 or 3.0 file into an immutable
// Document: well metadata, an ordered list of curve definitions and a
// column-major matrix of samples. Write serialises a Document, or a
// selection of its curves, back to LAS 2.0 text.
//
// Header parsing is best effort. Only three conditions are fatal: an empty
// curve section, a NULL value that is not numeric, and a missing ~A data
// section. Everything else is logged on the package log streams and the
// affected field is left unset.
package las
