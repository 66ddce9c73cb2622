// Package google reads report tables from Google Sheets.
//
// # Usage
//
//	svc, err := google.NewSheetsService(ctx, apiKey)
//	source := google.NewSheetSource(svc)
//	table, err := source.ReadRange(ctx, spreadsheetID, "Summary!A1:D20", true)
//
// An API key only grants access to spreadsheets shared as "anyone with the
// link can view". Private spreadsheets return ErrForbidden.
package google
