package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalogbot/internal/domain"
	"catalogbot/internal/repository"

	"go.uber.org/zap"
)

// Input is a user's answer to the current dialogue step
type Input struct {
	Text    string
	Contact *domain.Contact
}

// Reply tells the caller what to show after a dialogue transition
type Reply struct {
	// Step is the step now awaited, StepComplete when no dialogue is active
	Step domain.Step
	Mode domain.Mode
	// Err is a validation error to report; the step did not advance
	Err error
	// Saved is set when the dialogue ended after persisting an answer
	Saved bool
	// Cancelled is set when an update dialogue was aborted
	Cancelled bool
	// Menu is set when the main menu should be shown
	Menu bool
}

// Idle reports whether the input was not part of any dialogue
func (r Reply) Idle() bool {
	return r.Step == domain.StepComplete && !r.Saved && !r.Cancelled && !r.Menu
}

// OnboardingService runs the language, full name and phone dialogue.
// The step to ask next is always derived from the stored profile.
type OnboardingService struct {
	users     repository.UserRepository
	languages repository.LanguageRepository
	sessions  *ConversationStore
	logger    *zap.Logger
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(
	users repository.UserRepository,
	languages repository.LanguageRepository,
	sessions *ConversationStore,
	logger *zap.Logger,
) *OnboardingService {
	return &OnboardingService{
		users:     users,
		languages: languages,
		sessions:  sessions,
		logger:    logger,
	}
}

// Start (re)enters onboarding at the first unfilled step, discarding any active dialogue.
// A fully onboarded user goes straight to the main menu.
func (s *OnboardingService) Start(ctx context.Context, user *domain.User) Reply {
	step := domain.DeriveStep(user)
	if step == domain.StepComplete {
		s.sessions.Clear(user.ChatID)
		return Reply{Step: domain.StepComplete, Menu: true}
	}

	s.sessions.Set(user.ChatID, step, domain.ModeOnboarding)
	return Reply{Step: step, Mode: domain.ModeOnboarding}
}

// Change (re)enters the dialogue for a single field.
// Onboarded users return to the menu after answering; others continue onboarding.
func (s *OnboardingService) Change(ctx context.Context, user *domain.User, step domain.Step) (Reply, error) {
	if step != domain.StepLanguage && step != domain.StepFullName {
		return Reply{}, fmt.Errorf("step %q cannot be changed", step)
	}

	mode := domain.ModeUpdate
	if domain.DeriveStep(user) != domain.StepComplete {
		mode = domain.ModeOnboarding
	}

	s.sessions.Set(user.ChatID, step, mode)
	return Reply{Step: step, Mode: mode}, nil
}

// Cancel aborts an update dialogue without saving.
// Onboarding cannot be skipped, so an incomplete profile is asked for the current step again.
func (s *OnboardingService) Cancel(ctx context.Context, user *domain.User) Reply {
	conv := s.sessions.Get(user.ChatID)

	if conv.Active() && conv.Mode == domain.ModeOnboarding {
		s.sessions.Set(user.ChatID, conv.Step, conv.Mode)
		return Reply{Step: conv.Step, Mode: conv.Mode}
	}

	if step := domain.DeriveStep(user); step != domain.StepComplete {
		s.sessions.Set(user.ChatID, step, domain.ModeOnboarding)
		return Reply{Step: step, Mode: domain.ModeOnboarding}
	}

	s.sessions.Clear(user.ChatID)
	return Reply{Step: domain.StepComplete, Cancelled: true, Menu: true}
}

// Submit handles an answer for the active step. Without an active dialogue an
// incomplete profile resumes onboarding at its derived step.
// On success the user is updated in place.
func (s *OnboardingService) Submit(ctx context.Context, user *domain.User, in Input) (Reply, error) {
	conv := s.sessions.Get(user.ChatID)
	if !conv.Active() {
		step := domain.DeriveStep(user)
		if step == domain.StepComplete {
			return Reply{Step: domain.StepComplete}, nil
		}
		conv = domain.Conversation{Step: step, Mode: domain.ModeOnboarding}
	}

	var err error
	switch conv.Step {
	case domain.StepLanguage:
		err = s.setLanguage(ctx, user, in.Text)
	case domain.StepFullName:
		if strings.TrimSpace(in.Text) == "" {
			s.sessions.Set(user.ChatID, conv.Step, conv.Mode)
			return Reply{Step: conv.Step, Mode: conv.Mode}, nil
		}
		err = s.setRealName(ctx, user, in.Text)
	case domain.StepPhone:
		err = s.setPhone(ctx, user, in.Contact)
	}

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidLanguage), errors.Is(err, domain.ErrInvalidPhoneOwner):
		s.sessions.Set(user.ChatID, conv.Step, conv.Mode)
		return Reply{Step: conv.Step, Mode: conv.Mode, Err: err}, nil
	default:
		return Reply{}, err
	}

	return s.advance(user, conv.Mode), nil
}

// PruneIdle drops dialogues nobody answered within maxIdle
func (s *OnboardingService) PruneIdle(maxIdle time.Duration) int {
	pruned := s.sessions.Prune(maxIdle)
	s.logger.Info("Pruned idle conversations",
		zap.Int("pruned", pruned),
		zap.Int("active", s.sessions.Len()),
	)
	return pruned
}

// LanguageNames returns the names offered on the language step
func (s *OnboardingService) LanguageNames(ctx context.Context) ([]string, error) {
	languages, err := s.languages.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(languages))
	for _, l := range languages {
		names = append(names, l.Name)
	}
	return names, nil
}

func (s *OnboardingService) advance(user *domain.User, mode domain.Mode) Reply {
	if mode == domain.ModeUpdate {
		s.sessions.Clear(user.ChatID)
		return Reply{Step: domain.StepComplete, Saved: true, Menu: true}
	}

	next := domain.DeriveStep(user)
	if next == domain.StepComplete {
		s.sessions.Clear(user.ChatID)
		return Reply{Step: domain.StepComplete, Saved: true, Menu: true}
	}

	s.sessions.Set(user.ChatID, next, domain.ModeOnboarding)
	return Reply{Step: next, Mode: domain.ModeOnboarding}
}

func (s *OnboardingService) setLanguage(ctx context.Context, user *domain.User, name string) error {
	lang, err := s.languages.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to find language: %w", err)
	}
	if lang == nil {
		return domain.ErrInvalidLanguage
	}

	if err := s.users.SetLanguage(ctx, user.ChatID, lang.ID); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	user.LanguageID = &lang.ID

	s.logger.Info("Language saved",
		zap.Int64("chat_id", user.ChatID),
		zap.String("language", lang.Name),
	)
	return nil
}

func (s *OnboardingService) setRealName(ctx context.Context, user *domain.User, name string) error {
	if err := s.users.SetRealName(ctx, user.ChatID, name); err != nil {
		return fmt.Errorf("failed to save full name: %w", err)
	}
	user.RealName = &name

	s.logger.Info("Full name saved", zap.Int64("chat_id", user.ChatID))
	return nil
}

func (s *OnboardingService) setPhone(ctx context.Context, user *domain.User, contact *domain.Contact) error {
	if contact == nil || contact.UserID != user.ChatID || contact.PhoneNumber == "" {
		return domain.ErrInvalidPhoneOwner
	}

	if err := s.users.SetPhone(ctx, user.ChatID, contact.PhoneNumber); err != nil {
		return fmt.Errorf("failed to save phone: %w", err)
	}
	phone := contact.PhoneNumber
	user.Phone = &phone

	s.logger.Info("Phone saved", zap.Int64("chat_id", user.ChatID))
	return nil
}
