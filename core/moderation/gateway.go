package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	maxFlags     = 8
	maxQuestions = 6

	noDraftSentinel = "Student has not written a draft yet."
)

// Gateway sends user text to the remote text-completion provider and
// normalizes its reply against the Verdict contract. Every failure mode
// (missing credential, network error, non-2xx status, malformed reply)
// collapses into ErrUnavailable.
type Gateway struct {
	provider TextCompletionProvider
}

func NewGateway(provider TextCompletionProvider) *Gateway {
	return &Gateway{provider: provider}
}

// Moderate performs exactly one provider call for req and coerces the reply
// into a Verdict. No retries: a slow or failed call is an availability
// failure, not a retryable condition.
func (g *Gateway) Moderate(ctx context.Context, req Request) (Verdict, error) {
	raw, err := g.provider.GenerateContent(ctx, g.buildPrompt(req))
	if err != nil {
		return Verdict{}, ErrUnavailable
	}

	var payload interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &payload); err != nil {
		return Verdict{}, ErrUnavailable
	}
	fields, ok := payload.(map[string]interface{})
	if !ok {
		return Verdict{}, ErrUnavailable
	}
	return coerceVerdict(fields), nil
}

func (g *Gateway) buildPrompt(req Request) string {
	if req.Kind == KindUsername {
		return fmt.Sprintf(`Check if this username is school-appropriate for students.
Username: %q

Flag as inappropriate if it contains:
- Profanity or curse words
- Hate speech or harassment
- Threats or violence
- Self-harm references
- Sexual content
- Illegal activity references
- Bullying or offensive language

Return ONLY valid JSON in this exact format:
{
  "isAppropriate": boolean,
  "message": string
}

If appropriate: isAppropriate=true, message="Username is available"
If inappropriate: isAppropriate=false, message="Username contains inappropriate content. Please choose a different username."
No extra keys or commentary. Return ONLY JSON.`, req.Text)
	}

	draftPart := noDraftSentinel
	if req.Text != "" {
		draftPart = fmt.Sprintf("Student draft goal:\n%q", req.Text)
	}
	var name, context string
	if req.Principle != nil {
		name = req.Principle.Name
		context = req.Principle.Context
	}
	return fmt.Sprintf(`You are a school goal-writing coach.

RICH Principle: %s
Meaning: %s

%s

Tasks:
1) If a draft was provided, check if it is school-appropriate.
  Flag if it contains: profanity, hate/harassment, threats/violence, self-harm, sexual content, illegal activity, bullying.
  If flagged, DO NOT generate coaching questions. Ask the student to rewrite respectfully.
2) If no draft was provided OR the draft is appropriate, generate 5 guiding questions (NOT suggestions).
  Questions should help the student write a specific, measurable goal aligned to the principle.
  Questions must be short and student-friendly.

Output MUST be valid JSON ONLY in this exact shape:
{
  "isAppropriate": boolean,
  "flags": string[],
  "message": string,
  "questions": string[]
}

Rules:
- If no draft was provided: isAppropriate=true, flags=[], questions must have 5 items
- If draft is inappropriate: questions must be []
- If draft is appropriate: questions must have 5 items
- No extra keys or commentary. Return ONLY JSON.`, name, context, draftPart)
}

// coerceVerdict builds a Verdict from untyped provider JSON by
// decode-or-default: every field is independently coerced, cleaned and capped.
// The provider is never assumed to have matched the schema.
func coerceVerdict(fields map[string]interface{}) Verdict {
	return Verdict{
		IsAppropriate: coerceBool(fields["isAppropriate"]),
		Flags:         coerceStrings(fields["flags"], maxFlags, true /* dedupe */),
		Message:       strings.TrimSpace(coerceString(fields["message"])),
		Questions:     coerceStrings(fields["questions"], maxQuestions, false),
	}
}

// coerceBool mirrors loose truthiness: false, 0, "" and null are false,
// everything else is true.
func coerceBool(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}

func coerceString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// coerceStrings coerces v into a cleaned string slice: each entry stringified
// and trimmed, empty ones dropped, optionally deduplicated (first occurrence
// wins), then truncated to max. Non-sequence input yields an empty slice.
func coerceStrings(v interface{}, max int, dedupe bool) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		s := strings.TrimSpace(coerceString(entry))
		if s == "" {
			continue
		}
		if dedupe {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
		}
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}
