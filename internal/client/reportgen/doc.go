// Package reportgen produces the narrative text of reports.
//
// Generator is the capability services depend on. CannedGenerator is the
// offline implementation: it renders a fixed markdown document per report
// type, filled with a few counts from the input, and its connection test
// always succeeds.
package reportgen
