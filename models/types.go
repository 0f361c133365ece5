// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

// ImportRequest carries pasted names separated by newlines or commas
type ImportRequest struct {
	Text string `json:"text" validate:"required"`
}

type DrawSettingsRequest struct {
	AllowRepeat *bool `json:"allow_repeat" validate:"required"`
}

type PartitionRequest struct {
	GroupSize int `json:"group_size" validate:"required"`
}

// Response types

type CreateWorkspaceResponse struct {
	WorkspaceID string    `json:"workspace_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type WorkspaceSummary struct {
	WorkspaceID      string    `json:"workspace_id"`
	CreatedAt        time.Time `json:"created_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	CreatedAgo       string    `json:"created_ago"`
	ParticipantCount int       `json:"participant_count"`
	PoolSize         int       `json:"pool_size"`
	WinnerCount      int       `json:"winner_count"`
	GroupCount       int       `json:"group_count"`
}

type RosterResponse struct {
	Participants   []Participant `json:"participants"`
	DuplicateNames []string      `json:"duplicate_names"`
}

type ImportResponse struct {
	Added []Participant `json:"added"`
	Total int           `json:"total"`
}

type DedupeResponse struct {
	Removed int `json:"removed"`
	Total   int `json:"total"`
}

type DrawResponse struct {
	Winner   Participant `json:"winner"`
	PoolSize int         `json:"pool_size"`
}

type DrawStateResponse struct {
	Pool        []Participant `json:"pool"`
	AllowRepeat bool          `json:"allow_repeat"`
	History     []Participant `json:"history"`
	Winner      *Winner       `json:"winner,omitempty"`
}

type GroupsResponse struct {
	Groups []Group `json:"groups"`
}

// Domain types

type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Group struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Members []Participant `json:"members"`
}

// Winner is the most recent draw result. Message stays empty until the
// congratulation request resolves.
type Winner struct {
	Participant Participant `json:"participant"`
	Message     string      `json:"message,omitempty"`
	DrawnAt     time.Time   `json:"drawn_at"`
}

// SpinFrame is one step of the cosmetic draw animation
type SpinFrame struct {
	Step  int    `json:"step"`
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
