// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation for workspaces, contacts, pipeline, inbox and sync tracking
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS workspaces (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('Real Estate', 'Consulting', 'Product', 'Other')),
	color TEXT NOT NULL,
	owner_id TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_workspaces_owner ON workspaces(owner_id);

CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	workspace_id TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	email_normalized TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	status TEXT NOT NULL DEFAULT 'lead' CHECK(status IN ('active', 'inactive', 'lead')),
	source TEXT NOT NULL DEFAULT '',
	trust_signals TEXT NOT NULL DEFAULT '[]',
	next_action TEXT NOT NULL DEFAULT '',
	next_action_date DATE,
	last_activity DATE NOT NULL,
	credibility_score INTEGER NOT NULL DEFAULT 50 CHECK(credibility_score BETWEEN 0 AND 100),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (workspace_id) REFERENCES workspaces(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_contacts_workspace ON contacts(workspace_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_contacts_workspace_email
	ON contacts(workspace_id, email_normalized) WHERE email_normalized <> '';

CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	contact_id TEXT NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('call', 'email', 'text', 'note', 'gravitas')),
	description TEXT NOT NULL,
	date DATE NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_activities_contact ON activities(contact_id);

CREATE TABLE IF NOT EXISTS pipeline_items (
	id TEXT PRIMARY KEY,
	workspace_id TEXT NOT NULL,
	contact_id TEXT NOT NULL UNIQUE,
	stage TEXT NOT NULL DEFAULT 'new' CHECK(stage IN ('new', 'active', 'hot', 'under_contract', 'closed')),
	last_touch DATE NOT NULL,
	next_action TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (workspace_id) REFERENCES workspaces(id) ON DELETE CASCADE,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_pipeline_items_workspace ON pipeline_items(workspace_id);

CREATE TABLE IF NOT EXISTS inbox_items (
	id TEXT PRIMARY KEY,
	workspace_id TEXT NOT NULL,
	from_address TEXT NOT NULL,
	subject TEXT NOT NULL,
	preview TEXT NOT NULL DEFAULT '',
	classification TEXT NOT NULL CHECK(classification IN ('noise', 'risk', 'opportunity', 'reputation')),
	recommended_action TEXT NOT NULL DEFAULT '',
	handled BOOLEAN NOT NULL DEFAULT 0,
	date DATE NOT NULL,
	signals TEXT,
	rationale TEXT,
	full_text TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (workspace_id) REFERENCES workspaces(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_inbox_items_workspace ON inbox_items(workspace_id, handled, date DESC);

CREATE TABLE IF NOT EXISTS sync_state (
	service TEXT PRIMARY KEY,
	last_sync_time DATETIME,
	last_sync_token TEXT,
	status TEXT CHECK(status IN ('idle', 'syncing', 'error')),
	error_message TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sync_log (
	id TEXT PRIMARY KEY,
	source_service TEXT NOT NULL,
	source_id TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	imported_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	metadata TEXT,
	UNIQUE(source_service, source_id)
);

CREATE INDEX IF NOT EXISTS idx_sync_log_entity ON sync_log(entity_type, entity_id);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
