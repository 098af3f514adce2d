package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/skillclip/internal/client/client"
	"github.com/dmitrijs2005/skillclip/internal/client/models"
	"github.com/dmitrijs2005/skillclip/internal/common"
	"github.com/dmitrijs2005/skillclip/internal/validation"
)

var (
	// ErrFirstStep is returned by Back on the role screen.
	ErrFirstStep = errors.New("already at the first onboarding step")
	// ErrOnboardingCompleted is returned once the wizard has finished.
	ErrOnboardingCompleted = errors.New("onboarding already completed")
)

// StepInput carries the answer for the current wizard screen. Only the
// field that belongs to the screen is read; Values serves every
// multi-select screen.
type StepInput struct {
	Role            models.Role
	Values          []string
	ExperienceLevel models.ExperienceLevel
	HowDidYouHear   string
}

// OnboardingWizard collects the profile of a new user in a role-dependent
// sequence of screens. It is safe for concurrent use.
type OnboardingWizard struct {
	mu      sync.Mutex
	step    models.OnboardingStep
	visited []models.OnboardingStep
	profile models.OnboardingProfile
}

func NewOnboardingWizard() *OnboardingWizard {
	return &OnboardingWizard{step: models.StepRole}
}

// Next validates in against the current screen, records it and moves on.
// Leaving the how-did-you-hear screen completes the wizard.
func (w *OnboardingWizard) Next(in StepInput) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == models.StepCompleted {
		return ErrOnboardingCompleted
	}

	if err := w.record(in); err != nil {
		return err
	}

	next := w.following(w.step)
	w.visited = append(w.visited, w.step)
	w.step = next
	if next == models.StepCompleted {
		w.profile.Completed = true
	}
	return nil
}

// Back returns to the previously visited screen. Answers are kept.
func (w *OnboardingWizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.step == models.StepCompleted:
		return ErrOnboardingCompleted
	case len(w.visited) == 0:
		return ErrFirstStep
	}
	w.step = w.visited[len(w.visited)-1]
	w.visited = w.visited[:len(w.visited)-1]
	return nil
}

// Reset discards every answer and returns to the role screen.
func (w *OnboardingWizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = models.StepRole
	w.visited = nil
	w.profile = models.OnboardingProfile{}
}

func (w *OnboardingWizard) Step() models.OnboardingStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *OnboardingWizard) Profile() models.OnboardingProfile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profile.Clone()
}

func (w *OnboardingWizard) Completed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profile.Completed
}

// Progress returns the 1-based position of the current screen and the
// number of screens in the chosen branch, role screen included. Before a
// role is picked the longer branch is assumed.
func (w *OnboardingWizard) Progress() (current, total int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	total = 1 + len(branch(w.profile.Role))
	if w.step == models.StepCompleted {
		return total, total
	}
	return len(w.visited) + 1, total
}

type roleForm struct {
	Role string `json:"role" validate:"oneof=learner creator"`
}

type interestsForm struct {
	Interests []string `json:"interests" validate:"min=3"`
}

type contentTypesForm struct {
	ContentTypes []string `json:"content_types" validate:"min=1"`
}

type skillsForm struct {
	Skills []string `json:"skills" validate:"min=1"`
}

type experienceForm struct {
	ExperienceLevel string `json:"experience_level" validate:"oneof=beginner intermediate expert"`
}

type howDidYouHearForm struct {
	HowDidYouHear string `json:"how_did_you_hear" validate:"required"`
}

// record validates in for the current screen and stores it; w.mu is held.
func (w *OnboardingWizard) record(in StepInput) error {
	values := common.UniqueStrings(in.Values)

	switch w.step {
	case models.StepRole:
		if err := check(roleForm{Role: string(in.Role)}); err != nil {
			return err
		}
		if w.profile.Role != in.Role {
			w.profile = models.OnboardingProfile{Role: in.Role}
		}
	case models.StepInterests:
		if err := check(interestsForm{Interests: values}); err != nil {
			return err
		}
		w.profile.Interests = values
	case models.StepFollowCreators:
		w.profile.FollowedCreators = values
	case models.StepContentType:
		if err := check(contentTypesForm{ContentTypes: values}); err != nil {
			return err
		}
		w.profile.ContentTypes = values
	case models.StepSkills:
		if err := check(skillsForm{Skills: values}); err != nil {
			return err
		}
		w.profile.Skills = values
	case models.StepExperienceLevel:
		if err := check(experienceForm{ExperienceLevel: string(in.ExperienceLevel)}); err != nil {
			return err
		}
		w.profile.ExperienceLevel = in.ExperienceLevel
	case models.StepHowDidYouHear:
		source := strings.TrimSpace(in.HowDidYouHear)
		if err := check(howDidYouHearForm{HowDidYouHear: source}); err != nil {
			return err
		}
		w.profile.HowDidYouHear = source
	}
	return nil
}

// following returns the screen after step for the chosen role; w.mu is held.
func (w *OnboardingWizard) following(step models.OnboardingStep) models.OnboardingStep {
	steps := branch(w.profile.Role)
	if step == models.StepRole {
		return steps[0]
	}
	for i, s := range steps {
		if s == step && i+1 < len(steps) {
			return steps[i+1]
		}
	}
	return models.StepCompleted
}

func branch(role models.Role) []models.OnboardingStep {
	if role == models.RoleLearner {
		return models.LearnerSteps
	}
	return models.CreatorSteps
}

func check(form any) error {
	if fields := validation.Struct(form); fields != nil {
		return client.NewValidationError("", fields)
	}
	return nil
}
