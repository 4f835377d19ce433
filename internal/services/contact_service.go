package services

import (
	"errors"
	"time"

	"botfolio/internal/docstore"
	apperrors "botfolio/internal/errors"
	"botfolio/internal/logger"
	"botfolio/internal/models"
	"botfolio/internal/uuid"
)

// maxContactMessages bounds the contact inbox. Submissions beyond the cap
// evict the oldest message.
const maxContactMessages = 200

// contactService handles the public contact form inbox.
type contactService struct {
	store docstore.Store
}

// NewContactService creates a new ContactServicer.
func NewContactService(store docstore.Store) ContactServicer {
	return &contactService{store: store}
}

func (s *contactService) load() ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	found, err := s.store.Get(docstore.KeyContact, &messages)
	if err != nil {
		if errors.Is(err, docstore.ErrCorrupt) {
			logger.Get().Warnw("contact document corrupt, resetting", "error", err.Error())
			if delErr := s.store.Delete(docstore.KeyContact); delErr != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, delErr)
			}
			return []models.ContactMessage{}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !found {
		return []models.ContactMessage{}, nil
	}
	return messages, nil
}

// Submit appends a form submission to the inbox, newest first.
func (s *contactService) Submit(msg models.ContactMessage) (*models.ContactMessage, error) {
	messages, err := s.load()
	if err != nil {
		return nil, err
	}

	msg.ID = uuid.New()
	msg.Timestamp = time.Now()

	messages = append([]models.ContactMessage{msg}, messages...)
	if len(messages) > maxContactMessages {
		messages = messages[:maxContactMessages]
	}

	if err := s.store.Put(docstore.KeyContact, messages); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &msg, nil
}

// List returns all inbox messages, newest first.
func (s *contactService) List() ([]models.ContactMessage, error) {
	return s.load()
}
