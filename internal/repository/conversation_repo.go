package repository

import (
	"context"
	"time"

	"github.com/saeid-a/FitBuddyBack/internal/models"
)

type ConversationRepository struct {
	db DBTX
}

func NewConversationRepository(db DBTX) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// CreateOrGet returns the existing conversation for the pair if one exists.
// The pair is normalized before storage so both orderings map to one row.
func (r *ConversationRepository) CreateOrGet(ctx context.Context, id, userA, userB string) (*models.Conversation, error) {
	if userB < userA {
		userA, userB = userB, userA
	}
	query := `
		INSERT INTO conversations (id, user_a_id, user_b_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_a_id, user_b_id)
		DO UPDATE SET user_a_id = conversations.user_a_id
		RETURNING id, user_a_id, user_b_id, created_at, updated_at
	`
	var conversation models.Conversation
	err := r.db.QueryRow(ctx, query, id, userA, userB).Scan(
		&conversation.ID,
		&conversation.UserAID,
		&conversation.UserBID,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepository) GetByIDForParticipant(ctx context.Context, id, userID string) (*models.Conversation, error) {
	query := `
		SELECT id, user_a_id, user_b_id, created_at, updated_at
		FROM conversations
		WHERE id = $1 AND (user_a_id = $2 OR user_b_id = $2)
	`
	var conversation models.Conversation
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&conversation.ID,
		&conversation.UserAID,
		&conversation.UserBID,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepository) ListForParticipant(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	query := `
		SELECT c.id, c.user_a_id, c.user_b_id, c.created_at, c.updated_at,
			   m.id, m.conversation_id, m.sender_id, m.content, m.is_read, m.created_at,
			   (SELECT COUNT(*) FROM messages
				WHERE conversation_id = c.id AND sender_id <> $1 AND is_read = FALSE)
		FROM conversations c
		LEFT JOIN LATERAL (
			SELECT id, conversation_id, sender_id, content, is_read, created_at
			FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) m ON TRUE
		WHERE c.user_a_id = $1 OR c.user_b_id = $1
		ORDER BY c.updated_at DESC, c.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ConversationSummary, 0)
	for rows.Next() {
		var summary models.ConversationSummary
		var msgID, msgConversationID, msgSenderID, msgContent *string
		var msgRead *bool
		var msgCreatedAt *time.Time
		if err := rows.Scan(
			&summary.ID,
			&summary.UserAID,
			&summary.UserBID,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&msgID,
			&msgConversationID,
			&msgSenderID,
			&msgContent,
			&msgRead,
			&msgCreatedAt,
			&summary.UnreadCount,
		); err != nil {
			return nil, err
		}
		if msgID != nil {
			summary.LastMessage = &models.ChatMessage{
				ID:             *msgID,
				ConversationID: *msgConversationID,
				SenderID:       *msgSenderID,
				Content:        *msgContent,
				IsRead:         *msgRead,
				CreatedAt:      *msgCreatedAt,
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// Touch refreshes updated_at so conversation lists sort by recent activity.
func (r *ConversationRepository) Touch(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE conversations SET updated_at = NOW() WHERE id = $1`, id)
	return err
}
