package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/webtab"
)

// Run executes the chat command: an interactive loop where each plain line is
// an extraction prompt and /-prefixed lines manage the session.
func (c *ChatCmd) Run(deps *Dependencies) error {
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

	fmt.Fprintf(deps.Stdout, "Chatting about %s. Type a prompt, or /field name:type, /fields, /reset, /quit.\n", c.URL)

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue

		case line == "/quit" || line == "/exit":
			return nil

		case line == "/reset":
			sess.Reset()
			fmt.Fprintln(deps.Stdout, "History cleared.")

		case line == "/fields":
			printFields(deps, sess)

		case strings.HasPrefix(line, "/field "):
			c.setField(deps, sess, strings.TrimSpace(strings.TrimPrefix(line, "/field ")))

		case strings.HasPrefix(line, "/"):
			fmt.Fprintf(deps.Stderr, "error: unknown command %q\n", line)

		default:
			fmt.Fprintln(deps.Stdout, "Extracting data from website...")
			content, err := chat.Submit(deps.Ctx, sess, c.URL, line)
			if err != nil {
				// The session stays usable; the failure renders inline.
				fmt.Fprintf(deps.Stderr, "error: %s\n", webtab.ErrorMessage(err))
				continue
			}
			fmt.Fprintln(deps.Stdout, content)
		}
	}
	return scanner.Err()
}

func (c *ChatCmd) setField(deps *Dependencies, sess *webtab.Session, spec string) {
	f, err := ParseFieldSpec(spec)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webtab.ErrorMessage(err))
		return
	}
	if !sess.SetField(f) {
		fmt.Fprintf(deps.Stderr, "error: at most %d schema fields are supported\n", webtab.MaxSchemaFields)
		return
	}
	fmt.Fprintf(deps.Stdout, "Field %s (%s) set.\n", f.Name, f.Type)
}

func printFields(deps *Dependencies, sess *webtab.Session) {
	named := 0
	for _, f := range sess.Fields {
		if f.Name == "" {
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", f.Name, f.Type)
		named++
	}
	if named == 0 {
		fmt.Fprintln(deps.Stdout, "No schema fields set. Use '/field name:type' to add one.")
	}
}
