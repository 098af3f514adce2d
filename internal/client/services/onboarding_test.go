package services

import (
	"testing"

	"github.com/dmitrijs2005/skillclip/internal/client/client"
	"github.com/dmitrijs2005/skillclip/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboarding_LearnerPath(t *testing.T) {
	w := NewOnboardingWizard()
	require.Equal(t, models.StepRole, w.Step())

	require.NoError(t, w.Next(StepInput{Role: models.RoleLearner}))
	require.Equal(t, models.StepInterests, w.Step())

	require.NoError(t, w.Next(StepInput{Values: []string{"cooking", "guitar", "cooking", " chess "}}))
	require.Equal(t, models.StepFollowCreators, w.Step())

	require.NoError(t, w.Next(StepInput{}))
	require.Equal(t, models.StepHowDidYouHear, w.Step())

	require.NoError(t, w.Next(StepInput{HowDidYouHear: "friend"}))
	require.Equal(t, models.StepCompleted, w.Step())
	assert.True(t, w.Completed())

	p := w.Profile()
	assert.Equal(t, models.RoleLearner, p.Role)
	assert.Equal(t, []string{"cooking", "guitar", "chess"}, p.Interests)
	assert.Empty(t, p.FollowedCreators)
	assert.Equal(t, "friend", p.HowDidYouHear)
	assert.True(t, p.Completed)
}

func TestOnboarding_CreatorPath(t *testing.T) {
	w := NewOnboardingWizard()

	steps := []struct {
		in   StepInput
		next models.OnboardingStep
	}{
		{StepInput{Role: models.RoleCreator}, models.StepContentType},
		{StepInput{Values: []string{"tutorials"}}, models.StepSkills},
		{StepInput{Values: []string{"baking"}}, models.StepExperienceLevel},
		{StepInput{ExperienceLevel: models.ExperienceExpert}, models.StepHowDidYouHear},
		{StepInput{HowDidYouHear: "search"}, models.StepCompleted},
	}
	for _, s := range steps {
		require.NoError(t, w.Next(s.in))
		require.Equal(t, s.next, w.Step())
	}

	p := w.Profile()
	assert.Equal(t, []string{"tutorials"}, p.ContentTypes)
	assert.Equal(t, []string{"baking"}, p.Skills)
	assert.Equal(t, models.ExperienceExpert, p.ExperienceLevel)
	assert.Empty(t, p.Interests)
}

func TestOnboarding_Validation(t *testing.T) {
	tests := []struct {
		name  string
		path  []StepInput
		bad   StepInput
		field string
	}{
		{"unknown role", nil, StepInput{Role: "admin"}, "role"},
		{"two interests", []StepInput{{Role: models.RoleLearner}}, StepInput{Values: []string{"a", "b", "a"}}, "interests"},
		{"no content type", []StepInput{{Role: models.RoleCreator}}, StepInput{Values: []string{" "}}, "content_types"},
		{"no skills", []StepInput{{Role: models.RoleCreator}, {Values: []string{"vlog"}}}, StepInput{}, "skills"},
		{
			"unknown level",
			[]StepInput{{Role: models.RoleCreator}, {Values: []string{"vlog"}}, {Values: []string{"yoga"}}},
			StepInput{ExperienceLevel: "guru"},
			"experience_level",
		},
		{
			"blank source",
			[]StepInput{{Role: models.RoleLearner}, {Values: []string{"a", "b", "c"}}, {}},
			StepInput{HowDidYouHear: "  "},
			"how_did_you_hear",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewOnboardingWizard()
			for _, in := range tt.path {
				require.NoError(t, w.Next(in))
			}
			step := w.Step()

			err := w.Next(tt.bad)

			var ve *client.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
			assert.Equal(t, step, w.Step())
		})
	}
}

func TestOnboarding_Back(t *testing.T) {
	w := NewOnboardingWizard()
	require.ErrorIs(t, w.Back(), ErrFirstStep)

	require.NoError(t, w.Next(StepInput{Role: models.RoleLearner}))
	require.NoError(t, w.Next(StepInput{Values: []string{"a", "b", "c"}}))
	require.Equal(t, models.StepFollowCreators, w.Step())

	require.NoError(t, w.Back())
	assert.Equal(t, models.StepInterests, w.Step())
	assert.Equal(t, []string{"a", "b", "c"}, w.Profile().Interests)

	require.NoError(t, w.Back())
	assert.Equal(t, models.StepRole, w.Step())
	require.ErrorIs(t, w.Back(), ErrFirstStep)
}

func TestOnboarding_SwitchingRoleDropsOtherBranch(t *testing.T) {
	w := NewOnboardingWizard()
	require.NoError(t, w.Next(StepInput{Role: models.RoleLearner}))
	require.NoError(t, w.Next(StepInput{Values: []string{"a", "b", "c"}}))
	require.NoError(t, w.Back())
	require.NoError(t, w.Back())

	require.NoError(t, w.Next(StepInput{Role: models.RoleCreator}))
	assert.Equal(t, models.StepContentType, w.Step())
	assert.Empty(t, w.Profile().Interests)
}

func TestOnboarding_CompletedIsFinal(t *testing.T) {
	w := NewOnboardingWizard()
	for _, in := range []StepInput{
		{Role: models.RoleLearner},
		{Values: []string{"a", "b", "c"}},
		{Values: []string{"@chef"}},
		{HowDidYouHear: "ad"},
	} {
		require.NoError(t, w.Next(in))
	}

	assert.ErrorIs(t, w.Back(), ErrOnboardingCompleted)
	assert.ErrorIs(t, w.Next(StepInput{}), ErrOnboardingCompleted)
	assert.Equal(t, []string{"@chef"}, w.Profile().FollowedCreators)
}

func TestOnboarding_Reset(t *testing.T) {
	w := NewOnboardingWizard()
	require.NoError(t, w.Next(StepInput{Role: models.RoleCreator}))

	w.Reset()

	assert.Equal(t, models.StepRole, w.Step())
	assert.Equal(t, models.OnboardingProfile{}, w.Profile())
	assert.False(t, w.Completed())
	require.ErrorIs(t, w.Back(), ErrFirstStep)
}

func TestOnboarding_Progress(t *testing.T) {
	w := NewOnboardingWizard()

	cur, total := w.Progress()
	assert.Equal(t, 1, cur)
	assert.Equal(t, 5, total)

	require.NoError(t, w.Next(StepInput{Role: models.RoleLearner}))
	cur, total = w.Progress()
	assert.Equal(t, 2, cur)
	assert.Equal(t, 4, total)

	require.NoError(t, w.Next(StepInput{Values: []string{"a", "b", "c"}}))
	require.NoError(t, w.Next(StepInput{}))
	require.NoError(t, w.Next(StepInput{HowDidYouHear: "tv"}))
	cur, total = w.Progress()
	assert.Equal(t, 4, cur)
	assert.Equal(t, 4, total)
}

func TestOnboarding_ProfileIsACopy(t *testing.T) {
	w := NewOnboardingWizard()
	require.NoError(t, w.Next(StepInput{Role: models.RoleLearner}))
	require.NoError(t, w.Next(StepInput{Values: []string{"a", "b", "c"}}))

	p := w.Profile()
	p.Interests[0] = "changed"

	assert.Equal(t, "a", w.Profile().Interests[0])
}
