package testhelpers

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var mailedCode = regexp.MustCompile(`>([0-9]{6})<`)

// MailedCode pulls the six-digit recovery code out of a rendered email.
func MailedCode(t *testing.T, html string) string {
	t.Helper()
	m := mailedCode.FindStringSubmatch(html)
	require.Len(t, m, 2, "no recovery code in mail")
	return m[1]
}
