package kyc

import (
	"context"
	"fmt"
	"strings"
)

// Service validates submissions and flips the completion flag.
type Service struct {
	store Store
}

// NewService builds a verification service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Submit validates all four steps and marks the user verified. Validation is
// structural only; documents are never inspected.
func (s *Service) Submit(ctx context.Context, userID string, sub Submission) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	if err := sub.validate(); err != nil {
		return err
	}
	return s.store.SetCompleted(ctx, userID)
}

// Status reports whether the user completed verification.
func (s *Service) Status(ctx context.Context, userID string) (bool, error) {
	return s.store.Completed(ctx, userID)
}

func (sub Submission) validate() error {
	required := []struct {
		field, value string
	}{
		{"full_name", sub.Personal.FullName},
		{"date_of_birth", sub.Personal.DateOfBirth},
		{"nationality", sub.Personal.Nationality},
		{"phone", sub.Contact.Phone},
		{"address", sub.Contact.Address},
		{"city", sub.Contact.City},
		{"country", sub.Contact.Country},
		{"id_type", sub.Documents.IDType},
		{"id_number", sub.Documents.IDNumber},
		{"id_front", sub.Documents.IDFront},
		{"selfie", sub.Documents.Selfie},
		{"occupation", sub.Additional.Occupation},
		{"source_of_funds", sub.Additional.SourceOfFunds},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is required", r.field)
		}
	}
	return nil
}
