package quiniela

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// Escaped newlines, longest first so that a double-escaped '\\n' collapses to a single newline
// rather than leaving a stray backslash in front of it.
var unescaper = strings.NewReplacer(`\\n`, "\n", `\n`, "\n")

// Credentials builds read-only Google Sheets credentials from a service account JSON credential
// as stored in an environment variable.
func Credentials(ctx context.Context, raw string) (*google.Credentials, error) {
	b, err := NormaliseCredentials(raw)
	if err != nil {
		return nil, err
	}

	creds, err := google.CredentialsFromJSON(ctx, b, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials (%w)", err)
	}

	return creds, nil
}

// NormaliseCredentials strips the surrounding quotes that some hosting environments add to
// environment variable values, validates the JSON and replaces escaped newlines in the private
// key with real newlines.
func NormaliseCredentials(raw string) ([]byte, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("missing credentials")
	}

	s = unquote(s, '\'')
	s = unquote(s, '"')

	credentials := map[string]any{}
	if err := json.Unmarshal([]byte(s), &credentials); err != nil {
		return nil, fmt.Errorf("invalid credentials JSON (%w)", err)
	}

	if key, ok := credentials["private_key"].(string); ok {
		credentials["private_key"] = UnescapeKey(key)
	}

	return json.Marshal(credentials)
}

// UnescapeKey replaces literal '\n' (and '\\n') sequences in a PEM key with real newlines.
func UnescapeKey(key string) string {
	return unescaper.Replace(key)
}

// MaskEmail keeps the first three characters of the local part and the domain of a service
// account email, e.g. 'qui***@project.iam.gserviceaccount.com'.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "***"
	}

	if len(local) <= 3 {
		return "***@" + domain
	}

	return local[:3] + "***@" + domain
}

func unquote(s string, q byte) string {
	if len(s) >= 2 && s[0] == q && s[len(s)-1] == q {
		return s[1 : len(s)-1]
	}

	return s
}

// Diagnostics summarises a credential without exposing the private key.
type Diagnostics struct {
	Type                  string
	ProjectID             string
	ClientEmail           string
	KeyLength             int
	KeyPrefix             string
	RealNewlines          bool
	LiteralNewlines       bool
	NormalisedRealNewline bool
	NormalisedLiteral     bool
}

// Diagnose reports how a credential will be interpreted, along the lines of the checks an operator
// would otherwise do by hand when the service account is rejected.
func Diagnose(raw string) (*Diagnostics, error) {
	b, err := NormaliseCredentials(raw)
	if err != nil {
		return nil, err
	}

	s := unquote(unquote(strings.TrimSpace(raw), '\''), '"')
	original := map[string]any{}
	if err := json.Unmarshal([]byte(s), &original); err != nil {
		return nil, err
	}

	normalised := map[string]any{}
	if err := json.Unmarshal(b, &normalised); err != nil {
		return nil, err
	}

	d := Diagnostics{
		Type:        str(original["type"]),
		ProjectID:   str(original["project_id"]),
		ClientEmail: MaskEmail(str(original["client_email"])),
	}

	if key, ok := original["private_key"].(string); ok {
		d.KeyLength = len(key)
		d.KeyPrefix = prefix(key, 27)
		d.RealNewlines = strings.Contains(key, "\n")
		d.LiteralNewlines = strings.Contains(key, `\n`)
	}

	if key, ok := normalised["private_key"].(string); ok {
		d.NormalisedRealNewline = strings.Contains(key, "\n")
		d.NormalisedLiteral = strings.Contains(key, `\n`)
	}

	return &d, nil
}

func str(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return ""
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
