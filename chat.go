package webtab

import (
	"context"
	"strings"
)

// Chat is the request-handling boundary of a session: it validates input,
// builds the schema hint, calls the extraction service, and shapes the
// response into chat history.
type Chat struct {
	Extractor Extractor
}

// Submit handles one user submission. The prompt is appended to the history
// before validation, so a failed submission still shows what was asked; an
// assistant message is appended only on success. Recoverable failures return
// errors with user-renderable messages and leave the session usable for the
// next submission.
func (c *Chat) Submit(ctx context.Context, sess *Session, url, prompt string) (string, error) {
	sess.Append(RoleUser, prompt)

	if strings.TrimSpace(url) == "" {
		return "", Errorf(EINVALID, "Please enter a website URL first!")
	}

	schema, err := BuildSchema(sess.Fields)
	if err != nil {
		return "", err
	}

	result, err := c.Extractor.Extract(ctx, []string{url}, ExtractParams{
		Prompt: prompt,
		Schema: schema,
	})
	if err != nil {
		return "", err
	}

	content := renderResult(result)
	sess.Append(RoleAssistant, content)
	return content, nil
}

// renderResult turns an extraction result into display text: a markdown
// table when the data has a tabular shape, otherwise the raw response.
func renderResult(result *ExtractResult) string {
	if table, ok := Normalize(result.Data); ok {
		return table.Render()
	}
	return string(result.Raw)
}
