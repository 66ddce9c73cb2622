// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// ReportService composes content units into a validated page body and
// drives the create-or-overwrite workflow against a ContentClient.
// HistoryService and SettingsService are thin views over local storage.
package services
