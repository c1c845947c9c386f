package models

import "time"

// WorkspaceMember is an embedded collaborator entry on a workspace.
type WorkspaceMember struct {
	Email string `bson:"email" json:"email"`
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Role  string `bson:"role,omitempty" json:"role,omitempty"`
}

// Workspace is a shared collaboration space. A user sees workspaces they
// own plus workspaces listing them as a member.
type Workspace struct {
	ID          string            `bson:"id" json:"id"`
	Name        string            `bson:"name" json:"name"`
	Type        string            `bson:"type" json:"type"` // code | legal | research
	Description string            `bson:"description,omitempty" json:"description,omitempty"`
	OwnerEmail  string            `bson:"owner_email" json:"owner_email"`
	Members     []WorkspaceMember `bson:"members,omitempty" json:"members,omitempty"`
	Status      string            `bson:"status" json:"status"`
	CreatedDate time.Time         `bson:"created_date" json:"created_date"`
}

// WorkspaceMessage is a message posted into a workspace. Delivery is
// polled; there is no push channel.
type WorkspaceMessage struct {
	ID          string    `bson:"id" json:"id"`
	WorkspaceID string    `bson:"workspace_id" json:"workspace_id"`
	UserEmail   string    `bson:"user_email" json:"user_email"`
	UserName    string    `bson:"user_name" json:"user_name"`
	Message     string    `bson:"message" json:"message"`
	MessageType string    `bson:"message_type" json:"message_type"` // text | file | code
	CreatedDate time.Time `bson:"created_date" json:"created_date"`
}
