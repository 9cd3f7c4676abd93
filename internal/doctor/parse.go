package doctor

import (
	"errors"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrParse is wrapped by every command line rejection.
var ErrParse = errors.New("invalid arguments")

const helpNotice = "Please use -h or --help to see the available options."

// maxSuggestions caps the "did you mean" list per unknown token.
const maxSuggestions = 3

// ParseResult is the outcome of resolving the command line.
type ParseResult struct {
	Selected  []Command // distinct commands, in argument order
	Unknown   []string  // tokens matching no flag, verbatim
	Duplicate []string  // tokens resolving to an already selected command
}

// Parse resolves args against the option registry. No arguments parse
// like a single "--help".
func Parse(args []string) ParseResult {
	if len(args) == 0 {
		args = []string{"--help"}
	}

	var res ParseResult
	seen := make(map[Command]bool)
	for _, arg := range args {
		cmd, ok := LookupFlag(arg)
		switch {
		case !ok:
			res.Unknown = append(res.Unknown, arg)
		case seen[cmd]:
			res.Duplicate = append(res.Duplicate, arg)
		default:
			seen[cmd] = true
			res.Selected = append(res.Selected, cmd)
		}
	}
	return res
}

// Err returns nil when exactly one command was selected and nothing else
// was passed. Otherwise it returns a *ParseError.
func (r ParseResult) Err() error {
	if len(r.Unknown) == 0 && len(r.Duplicate) == 0 && len(r.Selected) == 1 {
		return nil
	}
	return &ParseError{Result: r}
}

// ParseError describes a rejected command line.
type ParseError struct {
	Result ParseResult
}

func (e *ParseError) Error() string {
	var lines []string
	if len(e.Result.Selected) > 1 {
		lines = append(lines, "You can only pass one option at a time.")
	}
	if len(e.Result.Unknown) > 0 {
		lines = append(lines, "Unknown arguments: "+strings.Join(e.Result.Unknown, ", "))
		for _, token := range e.Result.Unknown {
			if s := Suggest(token); len(s) > 0 {
				lines = append(lines, "Did you mean "+strings.Join(s, " or ")+" instead of "+token+"?")
			}
		}
	}
	if len(e.Result.Duplicate) > 0 {
		lines = append(lines, "Duplicate arguments: "+strings.Join(e.Result.Duplicate, ", "))
	}
	lines = append(lines, helpNotice)
	return strings.Join(lines, "\n")
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Suggest returns up to three flags resembling token. Only tokens that
// look like a flag get suggestions.
func Suggest(token string) []string {
	if len(token) < 3 || !strings.HasPrefix(token, "-") {
		return nil
	}

	flags := allFlags()
	matches := fuzzy.Find(token, flags)

	var out []string
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, flags[m.Index])
	}
	return out
}
