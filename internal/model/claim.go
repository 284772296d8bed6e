package model

import "time"

// Claim is a user's assertion of ownership over an item.
type Claim struct {
	ID               int64     `json:"claim_id"`
	ItemID           int64     `json:"item_id"`
	UserID           int64     `json:"user_id"`
	CreatedBy        int64     `json:"created_by"`
	CreatedDate      time.Time `json:"created_date"`
	FoundDescription string    `json:"found_description,omitempty"`
}

// Claim approval states. Only the mock schema carries them.
const (
	ClaimPending  = "Pending"
	ClaimApproved = "Approved"
	ClaimRejected = "Rejected"
)

// Claims table columns. ItemId, UserId, CreatedBy and CreatedDate share
// their names with the Items table.
const (
	ColClaimID          = "ClaimId"
	ColFoundDescription = "FoundDescription"
)

// ClaimColumns is the column order of the live Claims table.
var ClaimColumns = []string{
	ColClaimID, ColItemID, ColUserID, ColCreatedBy, ColCreatedDate, ColFoundDescription,
}
