package changes

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/logging"
	"github.com/arthur-debert/mvi/pkg/pathindex"
	"github.com/arthur-debert/mvi/pkg/paths"
	"github.com/arthur-debert/mvi/pkg/types"
)

// DefaultDeleteTokens are the payloads that mark a file for deletion
var DefaultDeleteTokens = []string{"delete", "remove", "rm", "del", "unlink"}

type parser struct {
	tokens   map[string]struct{}
	resolver *paths.Resolver
}

// Option configures Parse
type Option func(*parser)

// WithDeleteTokens replaces the deletion tokens. Matching is case-insensitive.
func WithDeleteTokens(tokens []string) Option {
	return func(p *parser) {
		p.tokens = tokenSet(tokens)
	}
}

// WithResolver sets the resolver used for relative destinations
func WithResolver(r *paths.Resolver) Option {
	return func(p *parser) {
		p.resolver = r
	}
}

// Parse converts the edited buffer into a change set
func Parse(text string, idx *pathindex.Index, opts ...Option) (*types.ChangeSet, error) {
	logger := logging.GetLogger("changes")

	p := &parser{tokens: tokenSet(DefaultDeleteTokens)}
	for _, opt := range opts {
		opt(p)
	}
	if p.resolver == nil {
		r, err := paths.NewResolver()
		if err != nil {
			return nil, err
		}
		p.resolver = r
	}

	cs := types.NewChangeSet()
	seen := make(map[int]int)

	for n, raw := range strings.Split(text, "\n") {
		lineNo := n + 1
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}

		index, payload, reason := splitLine(line)
		if reason != "" {
			return nil, parseError(lineNo, raw, "%s", reason)
		}

		if first, dup := seen[index]; dup {
			return nil, parseError(lineNo, raw, "duplicate index %d (first used on line %d)", index, first)
		}
		seen[index] = lineNo

		source, ok := idx.Lookup(index)
		if !ok {
			return nil, parseError(lineNo, raw, "index %d out of range (0-%d)", index, idx.Len()-1)
		}

		if _, isDelete := p.tokens[strings.ToLower(payload)]; isDelete {
			logger.Debug().Int("line", lineNo).Str("source", source).Msg("marked for deletion")
			if err := cs.Add(types.Change{Index: index, Source: source, Action: types.ActionDelete}); err != nil {
				return nil, parseError(lineNo, raw, "%v", err)
			}
			continue
		}

		dest, err := p.resolver.Destination(payload)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrParse, "line %d: cannot resolve destination %q", lineNo, payload).
				WithDetail("line", lineNo).
				WithDetail("text", raw)
		}

		if dest == source {
			continue
		}
		// a link pointing back at the source names the same file
		if full, err := paths.Canonicalize(dest); err == nil && full == source {
			continue
		}

		logger.Debug().Int("line", lineNo).Str("source", source).Str("destination", dest).Msg("marked for move")
		if err := cs.Add(types.Change{Index: index, Source: source, Action: types.ActionMove, Destination: dest}); err != nil {
			return nil, parseError(lineNo, raw, "%v", err)
		}
	}

	logger.Debug().Int("changes", cs.Len()).Msg("parsed edited buffer")
	return cs, nil
}

// splitLine separates "<index><ws><payload>". A non-empty reason means the
// line is malformed.
func splitLine(line string) (index int, payload string, reason string) {
	end := strings.IndexFunc(line, unicode.IsSpace)
	digits := line
	if end >= 0 {
		digits = line[:end]
	}

	if !isDigits(digits) {
		return 0, "", fmt.Sprintf("invalid index %q, expected \"<index> <path>\"", digits)
	}
	index, err := strconv.Atoi(digits)
	if err != nil {
		return 0, "", fmt.Sprintf("invalid index %q", digits)
	}

	if end < 0 {
		return 0, "", "missing path after index"
	}
	return index, strings.TrimLeftFunc(line[end:], unicode.IsSpace), ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseError(lineNo int, text string, format string, args ...interface{}) *errors.MviError {
	return errors.Newf(errors.ErrParse, "line %d: %s", lineNo, fmt.Sprintf(format, args...)).
		WithDetail("line", lineNo).
		WithDetail("text", text)
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}
