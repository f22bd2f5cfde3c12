package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/saeid-a/FitBuddyBack/internal/repository"
)

const maxMessageLength = 2000

type conversationStore interface {
	CreateOrGet(ctx context.Context, id, userA, userB string) (*models.Conversation, error)
	GetByIDForParticipant(ctx context.Context, id, userID string) (*models.Conversation, error)
	ListForParticipant(ctx context.Context, userID string) ([]models.ConversationSummary, error)
	Touch(ctx context.Context, id string) error
}

type messageStore interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]models.ChatMessage, int, error)
	MarkConversationRead(ctx context.Context, conversationID, readerID string) error
	UnreadCount(ctx context.Context, conversationID, readerID string) (int, error)
}

type matchPairFinder interface {
	FindPair(ctx context.Context, userA, userB string) (*models.Match, error)
}

type ChatService struct {
	db               *pgxpool.Pool
	conversationRepo conversationStore
	messageRepo      messageStore
	matchRepo        matchPairFinder
	userRepo         userDirectory
}

type ChatDelivery struct {
	Conversation *models.Conversation
	Message      *models.ChatMessage
	RecipientID  string
}

func NewChatService(
	db *pgxpool.Pool,
	conversationRepo conversationStore,
	messageRepo messageStore,
	matchRepo matchPairFinder,
	userRepo userDirectory,
) *ChatService {
	return &ChatService{
		db:               db,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		matchRepo:        matchRepo,
		userRepo:         userRepo,
	}
}

func (s *ChatService) ListConversations(ctx context.Context, actorID string) ([]models.ConversationSummary, error) {
	return s.conversationRepo.ListForParticipant(ctx, actorID)
}

// CreateConversation opens (or returns) the conversation between two users.
// Messaging is only available once the pair has an accepted match.
func (s *ChatService) CreateConversation(ctx context.Context, actorID, otherUserID string) (*models.Conversation, error) {
	if otherUserID == "" || otherUserID == actorID {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, otherUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	match, err := s.matchRepo.FindPair(ctx, actorID, otherUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotAccepted
		}
		return nil, err
	}
	if match.Status != models.MatchAccepted {
		return nil, ErrMatchNotAccepted
	}

	return s.conversationRepo.CreateOrGet(ctx, uuid.NewString(), actorID, otherUserID)
}

func (s *ChatService) ListMessages(
	ctx context.Context,
	actorID string,
	conversationID string,
	page int,
	limit int,
) ([]models.ChatMessage, int, error) {
	if conversationID == "" || page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}

	if _, err := s.participantConversation(ctx, conversationID, actorID); err != nil {
		return nil, 0, err
	}

	return s.messageRepo.ListByConversation(ctx, conversationID, limit, (page-1)*limit)
}

// SendMessage stores the message and touches the conversation in one
// transaction, then reports the recipient for realtime delivery.
func (s *ChatService) SendMessage(
	ctx context.Context,
	actorID string,
	conversationID string,
	content string,
) (*ChatDelivery, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxMessageLength {
		return nil, ErrInvalidInput
	}

	conversation, err := s.participantConversation(ctx, conversationID, actorID)
	if err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       actorID,
		Content:        content,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txMessageRepo := repository.NewMessageRepository(tx)
	txConversationRepo := repository.NewConversationRepository(tx)

	if err := txMessageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	if err := txConversationRepo.Touch(ctx, conversationID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &ChatDelivery{
		Conversation: conversation,
		Message:      message,
		RecipientID:  conversation.OtherParticipant(actorID),
	}, nil
}

func (s *ChatService) MarkConversationRead(ctx context.Context, actorID, conversationID string) error {
	if _, err := s.participantConversation(ctx, conversationID, actorID); err != nil {
		return err
	}
	return s.messageRepo.MarkConversationRead(ctx, conversationID, actorID)
}

func (s *ChatService) UnreadCount(ctx context.Context, actorID, conversationID string) (int, error) {
	if _, err := s.participantConversation(ctx, conversationID, actorID); err != nil {
		return 0, err
	}
	return s.messageRepo.UnreadCount(ctx, conversationID, actorID)
}

func (s *ChatService) participantConversation(
	ctx context.Context,
	conversationID string,
	actorID string,
) (*models.Conversation, error) {
	conversation, err := s.conversationRepo.GetByIDForParticipant(ctx, conversationID, actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return conversation, nil
}

func FormatChatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}
