// ABOUTME: Copilot chat transcript storage
// ABOUTME: Messages are keyed by session id and their sequence number
package db

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/socialpulse/models"
)

// AppendChatMessage stores one message. Re-appending the same id replaces it.
func AppendChatMessage(db *sql.DB, sessionID string, msg models.ChatMessage) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO chat_messages (session_id, seq, role, content, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, msg.ID, msg.Role, msg.Content, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

func ListChatMessages(db *sql.DB, sessionID string) ([]models.ChatMessage, error) {
	rows, err := db.Query(`
		SELECT seq, role, content, timestamp FROM chat_messages
		WHERE session_id = ? ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	msgs := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
