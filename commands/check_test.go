package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiniela-ai/quiniela-web/config"
)

func writeFile(file, content string) error {
	return os.WriteFile(file, []byte(content), 0600)
}

func TestCheckCredentials(t *testing.T) {
	setenv(t, map[string]string{config.CREDENTIALS: credentials, config.SPREADSHEET_ID: "1BxiMVs0XRA5nFMd"})

	out, err := execute(t, CheckCmd.Command(&Options{}))
	require.NoError(t, err)

	assert.Regexp(t, `project\s+quiniela-ai`, out)
	assert.Regexp(t, `client email\s+qui\*\*\*@quiniela-ai.iam.gserviceaccount.com`, out)
	assert.Regexp(t, `private key header\s+true`, out)
	assert.Regexp(t, `escaped newlines\s+yes`, out)
	assert.Regexp(t, `normalised newlines\s+yes`, out)
	assert.Regexp(t, `normalised escaped newlines\s+no`, out)
	assert.Regexp(t, `spreadsheet ID length\s+16`, out)
	assert.Contains(t, out, "credentials OK")

	assert.NotContains(t, out, "MIIEvQIBADANBgkqhkiG9w0BAQEFAASC")
	assert.NotContains(t, out, "quiniela-bot@")
}

func TestCheckCredentialsWithQuotes(t *testing.T) {
	setenv(t, map[string]string{config.CREDENTIALS: "'" + credentials + "'"})

	out, err := execute(t, CheckCmd.Command(&Options{}))

	require.NoError(t, err)
	assert.Contains(t, out, "credentials OK")
}

func TestCheckCredentialsNotSet(t *testing.T) {
	setenv(t, nil)

	_, err := execute(t, CheckCmd.Command(&Options{}))

	assert.ErrorContains(t, err, "G_SHEETS_CREDENTIALS is not set")
}

func TestCheckCredentialsInvalid(t *testing.T) {
	tests := map[string]string{
		"not JSON":     "{not json",
		"unknown type": `{"type":"unicorn"}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			setenv(t, map[string]string{config.CREDENTIALS: raw})

			_, err := execute(t, CheckCmd.Command(&Options{}))

			assert.Error(t, err)
		})
	}
}
