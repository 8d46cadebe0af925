// Package words holds the embedded passphrase wordlist plus helpers for
// generating recovery phrases and suggesting corrections for typos.
package words

import (
	"bufio"
	"bytes"
	"crypto/rand"
	_ "embed"
	"fmt"
	"math/big"
	"strings"

	"github.com/agnivade/levenshtein"
)

//go:embed wordlist.txt
var rawList []byte

// PhraseLength is the number of words in a recovery phrase.
const PhraseLength = 12

var list = parseList()

func parseList() []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(rawList))
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

// All returns the full wordlist in file order.
func All() []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// GeneratePhrase returns a fresh 12-word recovery phrase drawn from the
// wordlist with crypto/rand. Words may repeat.
func GeneratePhrase() (string, error) {
	picked := make([]string, PhraseLength)
	max := big.NewInt(int64(len(list)))
	for i := range picked {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("draw word: %w", err)
		}
		picked[i] = list[n.Int64()]
	}
	return strings.Join(picked, " "), nil
}

// Suggest returns the closest wordlist entries to the given token, nearest
// first, capped at limit. An exact match returns nil: there is nothing to
// suggest. Intended for hints only; callers must not use this to accept or
// reject input.
func Suggest(token string, limit int) []string {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" || limit <= 0 {
		return nil
	}
	type scored struct {
		word   string
		dist   int
		prefix int
	}
	var candidates []scored
	for _, w := range list {
		if w == token {
			return nil
		}
		d := levenshtein.ComputeDistance(token, w)
		// Anything further than half the token away is noise.
		if d > len(token)/2+1 {
			continue
		}
		candidates = append(candidates, scored{word: w, dist: d, prefix: commonPrefix(token, w)})
	}
	// Equal distances are broken by the longer shared prefix: a typo keeps
	// the start of the word far more often than the end.
	closer := func(a, b scored) bool {
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		return a.prefix > b.prefix
	}
	// Insertion sort: candidate lists are tiny.
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && closer(candidates[j], candidates[j-1]); j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.word
	}
	return out
}

func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
