// ABOUTME: Database schema definitions
// ABOUTME: Creates the CRM, NPS, dashboard, chat and monitoring tables if missing
package db

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	company TEXT,
	role TEXT,
	status TEXT NOT NULL DEFAULT 'cold' CHECK(status IN ('hot', 'warm', 'cold')),
	last_contact DATETIME,
	source TEXT,
	notes TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contacts_status ON contacts(status);
CREATE INDEX IF NOT EXISTS idx_contacts_name ON contacts(name);

CREATE TABLE IF NOT EXISTS opportunities (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	contact_id TEXT,
	value REAL NOT NULL DEFAULT 0,
	stage TEXT NOT NULL,
	probability INTEGER NOT NULL DEFAULT 0 CHECK(probability BETWEEN 0 AND 100),
	close_date DATE,
	notes TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id)
);

CREATE INDEX IF NOT EXISTS idx_opportunities_stage ON opportunities(stage);
CREATE INDEX IF NOT EXISTS idx_opportunities_contact_id ON opportunities(contact_id);

CREATE TABLE IF NOT EXISTS nps_responses (
	id TEXT PRIMARY KEY,
	score INTEGER NOT NULL CHECK(score BETWEEN 0 AND 10),
	feedback TEXT,
	date DATETIME NOT NULL,
	source TEXT
);

CREATE TABLE IF NOT EXISTS dashboards (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS widgets (
	id TEXT NOT NULL,
	dashboard_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	size TEXT NOT NULL CHECK(size IN ('small', 'medium', 'large')),
	data TEXT NOT NULL DEFAULT '[]',
	config TEXT NOT NULL DEFAULT '{}',
	PRIMARY KEY (dashboard_id, id),
	FOREIGN KEY (dashboard_id) REFERENCES dashboards(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS chat_messages (
	session_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('user', 'assistant')),
	content TEXT NOT NULL,
	timestamp DATETIME NOT NULL,
	PRIMARY KEY (session_id, seq)
);

CREATE TABLE IF NOT EXISTS mentions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	platform TEXT NOT NULL,
	content TEXT NOT NULL,
	author TEXT,
	author_url TEXT,
	post_url TEXT,
	sentiment REAL NOT NULL DEFAULT 0,
	sentiment_label TEXT,
	engagement_count INTEGER NOT NULL DEFAULT 0,
	reach INTEGER NOT NULL DEFAULT 0,
	mention_date DATETIME NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mentions_user ON mentions(user_id, mention_date DESC);

CREATE TABLE IF NOT EXISTS influencers (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	platform TEXT NOT NULL,
	handle TEXT NOT NULL,
	follower_count INTEGER NOT NULL DEFAULT 0,
	engagement_rate REAL NOT NULL DEFAULT 0,
	category TEXT,
	avatar_url TEXT,
	bio TEXT,
	is_tracked INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_influencers_user ON influencers(user_id);

CREATE TABLE IF NOT EXISTS sync_state (
	service TEXT PRIMARY KEY,
	status TEXT NOT NULL CHECK(status IN ('idle', 'syncing', 'error')),
	last_sync_time DATETIME,
	last_items INTEGER NOT NULL DEFAULT 0,
	error_message TEXT,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
