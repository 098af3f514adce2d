package models

// Role selects the onboarding branch.
type Role string

const (
	RoleLearner Role = "learner"
	RoleCreator Role = "creator"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleLearner || r == RoleCreator
}

// ExperienceLevel is the self-assessed level of a creator.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExpert       ExperienceLevel = "expert"
)

// Valid reports whether l is a known level.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceExpert:
		return true
	}
	return false
}

// OnboardingStep identifies a wizard screen.
type OnboardingStep string

const (
	StepRole            OnboardingStep = "role"
	StepInterests       OnboardingStep = "interests"
	StepFollowCreators  OnboardingStep = "follow_creators"
	StepContentType     OnboardingStep = "content_type"
	StepSkills          OnboardingStep = "skills"
	StepExperienceLevel OnboardingStep = "experience_level"
	StepHowDidYouHear   OnboardingStep = "how_did_you_hear"
	StepCompleted       OnboardingStep = "completed"
)

// LearnerSteps and CreatorSteps list the screens of each branch after role
// selection, in order.
var (
	LearnerSteps = []OnboardingStep{StepInterests, StepFollowCreators, StepHowDidYouHear}
	CreatorSteps = []OnboardingStep{StepContentType, StepSkills, StepExperienceLevel, StepHowDidYouHear}
)

// OnboardingProfile holds the answers collected by the onboarding wizard.
// Slice fields behave as sets: unique values in insertion order.
type OnboardingProfile struct {
	Role             Role            `json:"role"`
	Interests        []string        `json:"interests,omitempty"`
	ContentTypes     []string        `json:"content_types,omitempty"`
	Skills           []string        `json:"skills,omitempty"`
	ExperienceLevel  ExperienceLevel `json:"experience_level,omitempty"`
	FollowedCreators []string        `json:"followed_creators,omitempty"`
	HowDidYouHear    string          `json:"how_did_you_hear,omitempty"`
	Completed        bool            `json:"completed"`
}

// Clone returns a deep copy of p.
func (p OnboardingProfile) Clone() OnboardingProfile {
	c := p
	c.Interests = cloneStrings(p.Interests)
	c.ContentTypes = cloneStrings(p.ContentTypes)
	c.Skills = cloneStrings(p.Skills)
	c.FollowedCreators = cloneStrings(p.FollowedCreators)
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
