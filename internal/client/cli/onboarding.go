package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/skillclip/internal/client/models"
	"github.com/dmitrijs2005/skillclip/internal/client/services"
)

// Suggestions shown next to the multi-select questions. Free text is
// accepted as well.
var (
	interestOptions    = []string{"cooking", "music", "fitness", "languages", "coding", "art", "photography", "crafts"}
	contentTypeOptions = []string{"tutorials", "tips", "challenges", "behind-the-scenes", "reviews"}
	levelOptions       = []string{string(models.ExperienceBeginner), string(models.ExperienceIntermediate), string(models.ExperienceExpert)}
	sourceOptions      = []string{"friend", "social media", "search", "app store", "other"}
)

const (
	cmdBack   = "back"
	cmdCancel = "cancel"
)

// errOnboardingCancelled is returned when the user leaves the questionnaire.
var errOnboardingCancelled = errors.New("onboarding cancelled")

// Onboard walks the user through the questionnaire. Typing "back" returns to
// the previous question, "cancel" leaves; answers are kept until logout.
func (a *App) Onboard(ctx context.Context) error {
	s := a.authService.Session()
	if s == nil {
		fmt.Fprintln(a.out, "Please log in first.")
		return services.ErrNotAuthenticated
	}
	if s.HasCompletedOnboarding {
		fmt.Fprintln(a.out, "Onboarding is already completed.")
		return nil
	}

	for !a.onboarding.Completed() {
		step := a.onboarding.Step()
		cur, total := a.onboarding.Progress()

		prompt := fmt.Sprintf("[%d/%d] %s", cur, total, stepPrompt(step))

		var (
			answer string
			values []string
			err    error
		)
		if isListStep(step) {
			values, err = getList(a.reader, prompt, a.out)
			if len(values) == 1 {
				answer = values[0]
			}
		} else {
			answer, err = getSimpleText(a.reader, prompt, a.out)
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case cmdCancel:
			fmt.Fprintln(a.out, "Onboarding paused. Type 'onboard' to continue.")
			return errOnboardingCancelled
		case cmdBack:
			if err := a.onboarding.Back(); err != nil {
				fmt.Fprintln(a.out, "This is the first question.")
			}
			continue
		}

		if err := a.onboarding.Next(stepInput(step, answer, values)); err != nil {
			a.report(err)
		}
	}

	if err := a.authService.CompleteOnboarding(ctx); err != nil {
		a.report(err)
		return err
	}
	fmt.Fprintln(a.out, "You're all set!")
	return a.Open(ctx, a.routes.Home)
}

func stepPrompt(step models.OnboardingStep) string {
	switch step {
	case models.StepRole:
		return "Are you here to learn or to teach? (learner, creator)"
	case models.StepInterests:
		return withOptions("Pick at least 3 interests", interestOptions)
	case models.StepFollowCreators:
		return "Creators to follow, empty to skip"
	case models.StepContentType:
		return withOptions("What kind of content will you make?", contentTypeOptions)
	case models.StepSkills:
		return "Which skills will you teach?"
	case models.StepExperienceLevel:
		return withOptions("Your experience level", levelOptions)
	case models.StepHowDidYouHear:
		return withOptions("How did you hear about SkillClip?", sourceOptions)
	default:
		return string(step)
	}
}

// isListStep reports whether the step takes a comma-separated list.
func isListStep(step models.OnboardingStep) bool {
	switch step {
	case models.StepInterests, models.StepFollowCreators, models.StepContentType, models.StepSkills:
		return true
	}
	return false
}

func stepInput(step models.OnboardingStep, answer string, values []string) services.StepInput {
	switch step {
	case models.StepRole:
		return services.StepInput{Role: models.Role(strings.ToLower(answer))}
	case models.StepExperienceLevel:
		return services.StepInput{ExperienceLevel: models.ExperienceLevel(strings.ToLower(answer))}
	case models.StepHowDidYouHear:
		return services.StepInput{HowDidYouHear: answer}
	default:
		return services.StepInput{Values: values}
	}
}

func withOptions(prompt string, options []string) string {
	return fmt.Sprintf("%s (%s)", prompt, strings.Join(options, ", "))
}
