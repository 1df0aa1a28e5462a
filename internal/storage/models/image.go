// Package models holds the persisted record types.
package models

import "time"

// StatusCompleted is written on every successful upsert.
const StatusCompleted = "completed"

// APIClipdrop tags records generated through Clipdrop.
const APIClipdrop = "clipdrop"

// Parameters is the generation parameter bag stored with each record.
// None of these values are forwarded to the generation API, and each is
// stored exactly as the caller sent it.
type Parameters struct {
	Steps    any    `json:"steps" bson:"steps"`
	CfgScale any    `json:"cfg_scale" bson:"cfg_scale"`
	Seed     any    `json:"seed" bson:"seed"`
	Width    any    `json:"width" bson:"width"`
	Height   any    `json:"height" bson:"height"`
	API      string `json:"api" bson:"api"`
}

// ImageRecord is the metadata document for one (UserID, TokenID) pair.
// TokenID keeps the caller's scalar type (string or number).
type ImageRecord struct {
	UserID     string     `json:"userId" bson:"userId"`
	TokenID    any        `json:"tokenId" bson:"tokenId"`
	IPFSHash   string     `json:"ipfsHash" bson:"ipfsHash"`
	Prompt     string     `json:"prompt" bson:"prompt"`
	Parameters Parameters `json:"parameters" bson:"parameters"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
	Status     string     `json:"status" bson:"status"`
}
