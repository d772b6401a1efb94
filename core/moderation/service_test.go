package moderation

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/tumaini/malengo/core"
	"github.com/tumaini/malengo/core/goal"
	"github.com/tumaini/malengo/core/user"
)

// fakeDirectory is a scripted ProfileDirectory.
type fakeDirectory struct {
	profiles map[string]user.Profile // by username
	err      error
	calls    int
}

var _ ProfileDirectory = (*fakeDirectory)(nil)

func (d *fakeDirectory) GetProfileByUsername(_ context.Context, username string) (user.Profile, error) {
	d.calls++
	if d.err != nil {
		return user.Profile{}, d.err
	}
	if prof, ok := d.profiles[username]; ok {
		return prof, nil
	}
	return user.Profile{}, user.ErrNotFound
}

func setup(provider *fakeProvider, dir *fakeDirectory) *Service {
	if dir.profiles == nil {
		dir.profiles = make(map[string]user.Profile)
	}
	return NewService(dir, NewGateway(provider))
}

func Test_Service_CheckUsername_invalidFormat(t *testing.T) {
	provider := &fakeProvider{reply: `{}`}
	dir := &fakeDirectory{}
	svc := setup(provider, dir)

	for _, uname := range []string{"ab", "waaaaaaaaaaaaaaaytoolong", "bad name!"} {
		res := svc.CheckUsername(context.Background(), uname)
		assert.False(t, res.Available)
		assert.False(t, res.Appropriate)
		assert.NotEmpty(t, res.Message)
	}
	// local failures never reach the store or the provider
	assert.Equal(t, 0, dir.calls)
	assert.Equal(t, 0, provider.calls)
}

func Test_Service_CheckUsername_shortMessage(t *testing.T) {
	svc := setup(&fakeProvider{}, &fakeDirectory{})

	res := svc.CheckUsername(context.Background(), "ab")
	assert.Contains(t, res.Message, "at least 3 characters")
}

func Test_Service_CheckUsername_taken(t *testing.T) {
	provider := &fakeProvider{reply: `{}`}
	dir := &fakeDirectory{profiles: map[string]user.Profile{
		"valid_name": {UserID: "u1", Username: "valid_name"},
	}}
	svc := setup(provider, dir)

	res := svc.CheckUsername(context.Background(), "valid_name")
	assert.False(t, res.Available)
	assert.True(t, res.Appropriate) // format is fine, just taken
	assert.Contains(t, res.Message, "already taken")
	assert.Equal(t, 0, provider.calls)
}

func Test_Service_CheckUsername_lookupIsCaseInsensitive(t *testing.T) {
	dir := &fakeDirectory{profiles: map[string]user.Profile{
		"valid_name": {UserID: "u1", Username: "valid_name"},
	}}
	svc := setup(&fakeProvider{reply: `{}`}, dir)

	res := svc.CheckUsername(context.Background(), "Valid_Name")
	assert.False(t, res.Available)
	assert.Contains(t, res.Message, "already taken")
}

func Test_Service_CheckUsername_storeErrorFailsClosed(t *testing.T) {
	provider := &fakeProvider{reply: `{}`}
	dir := &fakeDirectory{err: errors.New("connection refused")}
	svc := setup(provider, dir)

	res := svc.CheckUsername(context.Background(), "kiddo42")
	assert.False(t, res.Available)
	assert.True(t, res.Appropriate)
	assert.Contains(t, res.Message, "Error checking username availability")
	assert.Equal(t, 0, provider.calls)
}

func Test_Service_CheckUsername_providerDownFailsOpen(t *testing.T) {
	for name, provider := range map[string]*fakeProvider{
		"transport error": {err: errors.New("dial tcp: timeout")},
		"malformed reply": {reply: "not json at all"},
	} {
		t.Run(name, func(t *testing.T) {
			svc := setup(provider, &fakeDirectory{})
			res := svc.CheckUsername(context.Background(), "kiddo42")
			assert.Equal(t, UsernameCheckResult{
				Available:   true,
				Appropriate: true,
				Message:     "Username is available",
			}, res)
		})
	}
}

func Test_Service_CheckUsername_verdicts(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  UsernameCheckResult
	}{
		{
			name:  "appropriate with message",
			reply: `{"isAppropriate": true, "message": "Username is available"}`,
			want:  UsernameCheckResult{Available: true, Appropriate: true, Message: "Username is available"},
		},
		{
			name:  "appropriate without message gets default",
			reply: `{"isAppropriate": true}`,
			want:  UsernameCheckResult{Available: true, Appropriate: true, Message: "Username is available"},
		},
		{
			name:  "inappropriate with message",
			reply: `{"isAppropriate": false, "message": "Please choose a different username."}`,
			want:  UsernameCheckResult{Available: true, Appropriate: false, Message: "Please choose a different username."},
		},
		{
			name:  "inappropriate without message gets default",
			reply: `{"isAppropriate": false}`,
			want:  UsernameCheckResult{Available: true, Appropriate: false, Message: "Username contains inappropriate content"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setup(&fakeProvider{reply: tt.reply}, &fakeDirectory{})
			assert.Equal(t, tt.want, svc.CheckUsername(context.Background(), "kiddo42"))
		})
	}
}

func Test_Service_GoalCoaching_invalidPrinciple(t *testing.T) {
	provider := &fakeProvider{reply: `{}`}
	svc := setup(provider, &fakeDirectory{})

	_, err := svc.GoalCoaching(context.Background(), "nonexistent", "some draft")
	assert.Error(t, err)
	var vErr *core.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, 0, provider.calls) // contract violation, no provider call
}

func Test_Service_GoalCoaching_providerDownFailsOpen(t *testing.T) {
	svc := setup(&fakeProvider{err: errors.New("boom")}, &fakeDirectory{})

	// every principle gets exactly its 5 static questions
	for id := range goal.Principles {
		verdict, err := svc.GoalCoaching(context.Background(), id, "my draft")
		assert.NoError(t, err)
		assert.True(t, verdict.IsAppropriate)
		assert.Equal(t, []string{}, verdict.Flags)
		assert.Equal(t, "AI is unavailable right now. Here are some guiding questions:", verdict.Message)
		assert.Equal(t, FallbackQuestions(id), verdict.Questions)
		assert.Len(t, verdict.Questions, 5)
	}
}

func Test_Service_GoalCoaching_fallbackResponsibility(t *testing.T) {
	svc := setup(&fakeProvider{err: errors.New("unreachable")}, &fakeDirectory{})

	verdict, err := svc.GoalCoaching(context.Background(), goal.PrincipleResponsibility, "")
	assert.NoError(t, err)
	assert.Equal(t, Verdict{
		IsAppropriate: true,
		Flags:         []string{},
		Message:       "AI is unavailable right now. Here are some guiding questions:",
		Questions: []string{
			"What responsibility are you trying to improve?",
			"When exactly will you do it each day?",
			"What is the first small step you can start with?",
			"How will you prove you completed it?",
			"What might distract you, and how will you handle it?",
		},
	}, verdict)
}

func Test_Service_GoalCoaching_flaggedDraftGetsNoQuestions(t *testing.T) {
	// the provider disobeys the "no questions if flagged" instruction
	provider := &fakeProvider{reply: `{
		"isAppropriate": false,
		"flags": ["bullying"],
		"message": "",
		"questions": ["Q1", "Q2", "Q3"]
	}`}
	svc := setup(provider, &fakeDirectory{})

	verdict, err := svc.GoalCoaching(context.Background(), goal.PrincipleConsiderate, "mean draft")
	assert.NoError(t, err)
	assert.False(t, verdict.IsAppropriate)
	assert.Equal(t, []string{"bullying"}, verdict.Flags)
	assert.Equal(t, "Please rewrite using respectful school-appropriate language.", verdict.Message)
	assert.Equal(t, []string{}, verdict.Questions)
}

func Test_Service_GoalCoaching_approvedWithoutQuestionsGetsFallback(t *testing.T) {
	// approved but the question list is unusable after coercion
	provider := &fakeProvider{reply: `{"isAppropriate": true, "flags": [], "questions": ["  ", ""]}`}
	svc := setup(provider, &fakeDirectory{})

	verdict, err := svc.GoalCoaching(context.Background(), goal.PrincipleStrategies, "read more")
	assert.NoError(t, err)
	assert.True(t, verdict.IsAppropriate)
	assert.Equal(t, FallbackQuestions(goal.PrincipleStrategies), verdict.Questions)
	assert.Len(t, verdict.Questions, 5)
}

func Test_Service_GoalCoaching_messageDefaults(t *testing.T) {
	reply := `{"isAppropriate": true, "questions": ["Q1"]}`

	svc := setup(&fakeProvider{reply: reply}, &fakeDirectory{})
	verdict, err := svc.GoalCoaching(context.Background(), goal.PrincipleIMatter, "drink water")
	assert.NoError(t, err)
	assert.Equal(t, "Here are questions to help refine your goal:", verdict.Message)

	svc = setup(&fakeProvider{reply: reply}, &fakeDirectory{})
	verdict, err = svc.GoalCoaching(context.Background(), goal.PrincipleIMatter, "")
	assert.NoError(t, err)
	assert.Equal(t, "Start with these guiding questions:", verdict.Message)
}

func Test_Service_GoalCoaching_approvedDraftClearsFlags(t *testing.T) {
	provider := &fakeProvider{reply: `{"isAppropriate": true, "flags": ["stale"], "questions": ["Q1", "Q2"]}`}
	svc := setup(provider, &fakeDirectory{})

	verdict, err := svc.GoalCoaching(context.Background(), goal.PrincipleIMatter, "exercise daily")
	assert.NoError(t, err)
	assert.Equal(t, []string{}, verdict.Flags)
	assert.Equal(t, []string{"Q1", "Q2"}, verdict.Questions)
}
