package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ladderhq/ladder/internal/app/models"
	"github.com/ladderhq/ladder/internal/db"
	"github.com/ladderhq/ladder/internal/pkg/apperrors"
)

// MessageRepository handles database operations for conversations and messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// FindConversation returns the existing two-party conversation between the
// users, or 0 when none exists
func (r *MessageRepository) FindConversation(ctx context.Context, userA, userB int64) (int64, error) {
	query := `
		SELECT p1.conversation_id
		FROM conversation_participants p1
		JOIN conversation_participants p2 ON p1.conversation_id = p2.conversation_id
		WHERE p1.user_id = $1 AND p2.user_id = $2
		LIMIT 1
	`

	var id int64
	err := r.db.QueryRow(ctx, query, userA, userB).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("error finding conversation: %w", err)
	}
	return id, nil
}

// CreateConversation creates a conversation with both participants enrolled
// in one transaction
func (r *MessageRepository) CreateConversation(ctx context.Context, userA, userB int64) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO conversations DEFAULT VALUES RETURNING id`).Scan(&id)
		if err != nil {
			return fmt.Errorf("error creating conversation: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO conversation_participants (conversation_id, user_id)
			VALUES ($1, $2), ($1, $3)
		`, id, userA, userB)
		if err != nil {
			return fmt.Errorf("error enrolling participants: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetConversations lists the user's conversations ordered by latest activity,
// with the other participants and the last message joined in
func (r *MessageRepository) GetConversations(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	query := `
		SELECT c.id, c.created_at
		FROM conversations c
		JOIN conversation_participants p ON p.conversation_id = c.id
		WHERE p.user_id = $1
		ORDER BY (SELECT MAX(m.created_at) FROM messages m WHERE m.conversation_id = c.id) DESC NULLS LAST,
		         c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		var conv models.Conversation
		if err := rows.Scan(&conv.ID, &conv.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		conversations = append(conversations, &conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", err)
	}

	if len(conversations) > 0 {
		if err := r.attachParticipants(ctx, conversations); err != nil {
			return nil, err
		}
		if err := r.attachLastMessages(ctx, conversations); err != nil {
			return nil, err
		}
	}

	if conversations == nil {
		conversations = []*models.Conversation{}
	}

	return conversations, nil
}

// conversationParticipantsQuery hydrates every listed conversation's
// participants in one round trip
const conversationParticipantsQuery = `
	SELECT p.conversation_id, u.id, u.username, u.full_name
	FROM conversation_participants p
	JOIN users u ON p.user_id = u.id
	WHERE p.conversation_id = ANY($1)
	ORDER BY p.conversation_id, u.id
`

// conversationLastMessagesQuery picks the newest message per conversation in
// one round trip
const conversationLastMessagesQuery = `
	SELECT DISTINCT ON (conversation_id)
	       id, conversation_id, sender_id, content, created_at
	FROM messages
	WHERE conversation_id = ANY($1)
	ORDER BY conversation_id, created_at DESC, id DESC
`

func conversationIDs(conversations []*models.Conversation) ([]int64, map[int64]*models.Conversation) {
	ids := make([]int64, 0, len(conversations))
	byID := make(map[int64]*models.Conversation, len(conversations))
	for _, conv := range conversations {
		ids = append(ids, conv.ID)
		byID[conv.ID] = conv
	}
	return ids, byID
}

func (r *MessageRepository) attachParticipants(ctx context.Context, conversations []*models.Conversation) error {
	ids, byID := conversationIDs(conversations)

	rows, err := r.db.Query(ctx, conversationParticipantsQuery, ids)
	if err != nil {
		return fmt.Errorf("error retrieving participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var conversationID int64
		var u models.User
		if err := rows.Scan(&conversationID, &u.ID, &u.Username, &u.FullName); err != nil {
			return fmt.Errorf("error scanning participant row: %w", err)
		}
		if conv, ok := byID[conversationID]; ok {
			conv.Participants = append(conv.Participants, &u)
		}
	}
	return rows.Err()
}

func (r *MessageRepository) attachLastMessages(ctx context.Context, conversations []*models.Conversation) error {
	ids, byID := conversationIDs(conversations)

	rows, err := r.db.Query(ctx, conversationLastMessagesQuery, ids)
	if err != nil {
		return fmt.Errorf("error retrieving last messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content, &msg.CreatedAt); err != nil {
			return fmt.Errorf("error scanning last message row: %w", err)
		}
		if conv, ok := byID[msg.ConversationID]; ok {
			m := msg
			conv.LastMessage = &m
		}
	}
	return rows.Err()
}

// IsParticipant reports whether the user belongs to the conversation
func (r *MessageRepository) IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2)`,
		conversationID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking participation: %w", err)
	}
	return exists, nil
}

// ConversationExists reports whether the conversation row exists
func (r *MessageRepository) ConversationExists(ctx context.Context, conversationID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM conversations WHERE id = $1)`, conversationID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking conversation existence: %w", err)
	}
	return exists, nil
}

// CreateMessage appends a message to a conversation
func (r *MessageRepository) CreateMessage(ctx context.Context, msg *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, msg.ConversationID, msg.SenderID, msg.Content).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating message: %w", err)
	}

	return msg.ID, nil
}

// GetMessages lists a conversation's messages in chronological order. after
// restricts to messages created strictly later, which lets pollers fetch only
// what is new; before pages backwards through history (the latest messages
// older than the cursor, still returned oldest first).
func (r *MessageRepository) GetMessages(ctx context.Context, conversationID int64, after, before *time.Time, limit int) ([]*models.Message, error) {
	qb := squirrel.Select(
		"m.id", "m.conversation_id", "m.sender_id", "m.content", "m.created_at",
		"u.username", "u.full_name").
		From("messages m").
		LeftJoin("users u ON m.sender_id = u.id").
		Where("m.conversation_id = ?", conversationID).
		PlaceholderFormat(squirrel.Dollar)

	if after != nil {
		qb = qb.Where("m.created_at > ?", *after)
	}
	if before != nil {
		qb = qb.Where("m.created_at < ?", *before)
	}

	// Back-scroll wants the newest page below the cursor, so the query runs
	// descending and the result is flipped back to chronological order.
	backwards := before != nil && after == nil
	if backwards {
		qb = qb.OrderBy("m.created_at DESC", "m.id DESC")
	} else {
		qb = qb.OrderBy("m.created_at ASC", "m.id ASC")
	}

	sql, args, err := qb.Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var msg models.Message
		var username, fullName *string

		err := rows.Scan(
			&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content, &msg.CreatedAt,
			&username, &fullName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}

		if username != nil {
			msg.Sender = &models.User{ID: msg.SenderID, Username: *username}
			if fullName != nil {
				msg.Sender.FullName = *fullName
			}
		}

		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	if messages == nil {
		messages = []*models.Message{}
	}

	if backwards {
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}

	return messages, nil
}

// GetConversationByID retrieves a conversation shell, without joins
func (r *MessageRepository) GetConversationByID(ctx context.Context, id int64) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.QueryRow(ctx,
		`SELECT id, created_at FROM conversations WHERE id = $1`, id,
	).Scan(&conv.ID, &conv.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}
	return &conv, nil
}
