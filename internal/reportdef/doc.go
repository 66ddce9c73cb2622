// Package reportdef loads report definitions from TOML files.
//
// A definition names the target page and lists its content as an ordered
// array of [[block]] tables. Each block has a kind matching one content
// unit; tables may come from inline rows, a CSV file, a Google Sheets range
// or merged GitHub pull requests, and images from local files. Relative
// file paths are resolved against the definition's directory.
//
//	title = "Sprint 14"
//	space = "ENG"
//
//	[[block]]
//	kind = "table"
//	title = "Scores"
//	csv = "scores.csv"
//	header = true
//
//	[[block]]
//	kind = "expand"
//	title = "Details"
//
//	  [[block.block]]
//	  kind = "paragraph"
//	  text = "Collapsed by default."
package reportdef
