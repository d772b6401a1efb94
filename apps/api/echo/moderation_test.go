package echoapi

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumaini/malengo/core/goal"
	"github.com/tumaini/malengo/core/moderation"
)

func Test_checkUsername(t *testing.T) {
	path := "/v1/moderation/check-username"

	t.Run("missing username", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, path, []byte(`{}`))
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var fldErrs map[string]string
		decodeBody(t, rec, &fldErrs)
		assert.Contains(t, fldErrs["username"], "required")
	})

	t.Run("invalid format", func(t *testing.T) {
		body := marshallObj(t, CheckUsernameRequest{Username: "ab"})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var res moderation.UsernameCheckResult
		decodeBody(t, rec, &res)
		assert.False(t, res.Available)
		assert.False(t, res.Appropriate)
		assert.Contains(t, res.Message, "at least 3 characters")
	})

	t.Run("taken username", func(t *testing.T) {
		signupUser(t, "taken@example.com", "taken_name", "S3cure.pass")

		body := marshallObj(t, CheckUsernameRequest{Username: "taken_name"})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var res moderation.UsernameCheckResult
		decodeBody(t, rec, &res)
		assert.False(t, res.Available)
		assert.True(t, res.Appropriate)
		assert.Equal(t, "Username is already taken", res.Message)
	})

	t.Run("provider down fails open", func(t *testing.T) {
		provider.set("", errors.New("unreachable"))

		body := marshallObj(t, CheckUsernameRequest{Username: "brand_new"})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var res moderation.UsernameCheckResult
		decodeBody(t, rec, &res)
		assert.Equal(t, moderation.UsernameCheckResult{
			Available:   true,
			Appropriate: true,
			Message:     "Username is available",
		}, res)
	})

	t.Run("inappropriate verdict", func(t *testing.T) {
		provider.set(`{"isAppropriate": false, "message": "Please choose a different username."}`, nil)

		body := marshallObj(t, CheckUsernameRequest{Username: "brand_new"})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var res moderation.UsernameCheckResult
		decodeBody(t, rec, &res)
		assert.True(t, res.Available)
		assert.False(t, res.Appropriate)
		assert.Equal(t, "Please choose a different username.", res.Message)
	})
}

func Test_goalCoaching(t *testing.T) {
	path := "/v1/moderation/goal-coaching"

	t.Run("unknown principle", func(t *testing.T) {
		body := marshallObj(t, GoalCoachingRequest{PrincipleID: "grit", Draft: "try harder"})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var fldErrs map[string]string
		decodeBody(t, rec, &fldErrs)
		assert.Equal(t, "invalid principle", fldErrs["principle_id"])
	})

	t.Run("provider down falls back to static questions", func(t *testing.T) {
		provider.set("", errors.New("unreachable"))

		body := marshallObj(t, GoalCoachingRequest{PrincipleID: goal.PrincipleResponsibility})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var verdict moderation.Verdict
		decodeBody(t, rec, &verdict)
		assert.True(t, verdict.IsAppropriate)
		assert.Equal(t, "AI is unavailable right now. Here are some guiding questions:", verdict.Message)
		assert.Equal(t, moderation.FallbackQuestions(goal.PrincipleResponsibility), verdict.Questions)
	})

	t.Run("flagged draft", func(t *testing.T) {
		provider.set(`{"isAppropriate": false, "flags": ["bullying"], "questions": ["Q1"]}`, nil)

		body := marshallObj(t, GoalCoachingRequest{PrincipleID: goal.PrincipleConsiderate, Draft: "mean draft"})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var verdict moderation.Verdict
		decodeBody(t, rec, &verdict)
		assert.False(t, verdict.IsAppropriate)
		assert.Equal(t, []string{"bullying"}, verdict.Flags)
		assert.Equal(t, "Please rewrite using respectful school-appropriate language.", verdict.Message)
		assert.Empty(t, verdict.Questions)
	})

	t.Run("approved draft", func(t *testing.T) {
		provider.set(`{"isAppropriate": true, "questions": ["What will you do first?"]}`, nil)

		body := marshallObj(t, GoalCoachingRequest{PrincipleID: goal.PrincipleIMatter, Draft: "drink more water"})
		req, rec := newRequest(http.MethodPost, path, body)
		app.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var verdict moderation.Verdict
		decodeBody(t, rec, &verdict)
		assert.True(t, verdict.IsAppropriate)
		assert.Equal(t, "Here are questions to help refine your goal:", verdict.Message)
		assert.Equal(t, []string{"What will you do first?"}, verdict.Questions)
	})
}
