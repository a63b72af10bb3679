package launch

import (
	"fmt"

	"github.com/anmitsu/go-shlex"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/zerr"
)

// literalBackslash tokenizes like a POSIX shell but keeps backslashes,
// so Windows paths survive unquoted.
type literalBackslash struct {
	shlex.DefaultTokenizer
}

func (*literalBackslash) IsEscape(rune) bool { return false }

// splitArgLine splits a legacy argument line on whitespace and strips quotes without expanding anything.
func splitArgLine(line string) ([]string, error) {
	if line == "" {
		return nil, nil
	}
	lexer := shlex.NewLexerString(line, true, true)
	lexer.SetTokenizer(&literalBackslash{})
	args, err := lexer.Split()
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrArgLineParse, err), "line", line)
	}
	return args, nil
}
