package messages

import (
	"context"
	"strings"
)

const ActivityMessageSent = "message_sent"

type Service struct {
	repo       Repository
	activities ActivityRecorder
}

func NewService(repo Repository, activities ActivityRecorder) *Service {
	return &Service{repo: repo, activities: activities}
}

func (s *Service) List(ctx context.Context, userID uint) ([]Thread, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Send stores a message. activityErr reports a failed activity entry for a
// message that was stored.
func (s *Service) Send(ctx context.Context, input SendInput) (message *Message, activityErr error, err error) {
	text := strings.TrimSpace(input.Message)
	if input.SenderID == 0 || input.ReceiverID == 0 || text == "" {
		return nil, nil, ErrMissingFields
	}

	for _, id := range []uint{input.SenderID, input.ReceiverID} {
		exists, err := s.repo.UserExists(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			return nil, nil, ErrUserNotFound
		}
	}

	created := Message{
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Message:    text,
	}
	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, nil, err
	}

	if s.activities != nil {
		activityErr = s.activities.Record(ctx, input.SenderID, ActivityMessageSent, "Sent a message")
	}
	return &created, activityErr, nil
}
