package session

// Caller-visible success statuses. These are part of the external
// contract and kept verbatim from the product's web client.
const (
	statusSynced       = "Synced 📅"
	statusManualSaved  = "Manual Entry Saved 📝"
	statusUpdated      = "Updated & Synced 🔄"
	statusDeleted      = "Deleted from All Sheets & Calendar 🗑️"
	statusSummaryOK    = "OK"
	statusStateSynced  = "Synced"
	statusFeedbackSent = "Feedback Sent!"
)
