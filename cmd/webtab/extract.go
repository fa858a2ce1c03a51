package main

import (
	"fmt"

	"github.com/fwojciec/webtab"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	fields, err := ParseFieldSpecs(c.Field)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webtab.ErrorMessage(err))
		return err
	}

	sess := webtab.NewSession()
	for _, f := range fields {
		sess.SetField(f)
	}

	chat := &webtab.Chat{Extractor: deps.Extractor}
	content, err := chat.Submit(deps.Ctx, sess, c.URL, c.Prompt)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webtab.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}
