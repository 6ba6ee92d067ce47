package main

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWhoamiLogout(t *testing.T) {
	useDevBackend(t)

	out, err := executeCommand(rootCmd, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	out, err = executeCommand(rootCmd, "login", "--email", "sara@client.com", "--password", "password")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Sara Benali (client)")

	// A later command picks the session up from the cache.
	out, err = executeCommand(rootCmd, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Name:      Sara Benali")
	assert.Contains(t, out, "Email:     sara@client.com")
	assert.Contains(t, out, "Type:      client")

	out, err = executeCommand(rootCmd, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	out, err = executeCommand(rootCmd, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestLogin_Prompts(t *testing.T) {
	useDevBackend(t)

	originalAskOne := askOneFunc
	defer func() { askOneFunc = originalAskOne }()

	var asked []string
	askOneFunc = func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
		ptr := response.(*string)
		switch p := p.(type) {
		case *survey.Input:
			asked = append(asked, p.Message)
			*ptr = "amal@salon.com"
		case *survey.Password:
			asked = append(asked, p.Message)
			*ptr = "password"
		}
		return nil
	}

	out, err := executeCommand(rootCmd, "login")
	require.NoError(t, err)
	assert.Equal(t, []string{"Email:", "Password:"}, asked)
	assert.Contains(t, out, "Logged in as Amal (coiffeur)")
}

func TestLogin_PromptAborted(t *testing.T) {
	useDevBackend(t)

	originalAskOne := askOneFunc
	defer func() { askOneFunc = originalAskOne }()
	askOneFunc = func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
		return errors.New("interrupt")
	}

	_, err := executeCommand(rootCmd, "login", "--email", "sara@client.com")
	assert.EqualError(t, err, "interrupt")
}

func TestLogin_BadPassword(t *testing.T) {
	useDevBackend(t)

	_, err := executeCommand(rootCmd, "login", "--email", "sara@client.com", "--password", "nope")
	require.Error(t, err)
	assert.Equal(t, "login failed: Invalid email or password", err.Error())
}

func TestSearch(t *testing.T) {
	useDevBackend(t)

	out, err := executeCommand(rootCmd, "search", "--city", "Paris")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Amal")
	assert.NotContains(t, out, "Karim")

	out, err = executeCommand(rootCmd, "search", "--availability", "popular")
	require.NoError(t, err)
	assert.Contains(t, out, "Karim")
	assert.NotContains(t, out, "Amal")

	out, err = executeCommand(rootCmd, "search", "--min-rating", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "No stylist matches these filters.")

	_, err = executeCommand(rootCmd, "search", "--sort", "price")
	assert.ErrorContains(t, err, `invalid sort "price"`)
}

func TestQueue(t *testing.T) {
	useDevBackend(t)

	_, err := executeCommand(rootCmd, "queue", "+1")
	assert.ErrorIs(t, err, errNotLoggedIn)

	_, err = executeCommand(rootCmd, "login", "--email", "amal@salon.com", "--password", "password")
	require.NoError(t, err)

	out, err := executeCommand(rootCmd, "queue", "+2")
	require.NoError(t, err)
	assert.Contains(t, out, "Queue: 4 waiting")

	out, err = executeCommand(rootCmd, "queue", "--", "-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Queue: 0 waiting", "the queue never goes negative")

	_, err = executeCommand(rootCmd, "queue", "lots")
	assert.ErrorContains(t, err, "invalid queue change")

	_, err = executeCommand(rootCmd, "queue")
	assert.EqualError(t, err, "expected exactly one argument like +1 or -- -1")
}

func TestQueue_PersistentFlags(t *testing.T) {
	url := useDevBackend(t)
	// Only the flag knows where the backend is.
	t.Setenv("MYHAIR_API_URL", "http://127.0.0.1:1")

	_, err := executeCommand(rootCmd, "login", "--api-url", url, "--email", "amal@salon.com", "--password", "password")
	require.NoError(t, err)

	out, err := executeCommand(rootCmd, "queue", "-v", "--api-url", url, "+1")
	require.NoError(t, err)
	assert.Contains(t, out, "Queue: 3 waiting")

	out, err = executeCommand(rootCmd, "queue", "--api-url", url, "--no-color", "--", "-2")
	require.NoError(t, err)
	assert.Contains(t, out, "Queue: 1 waiting")
}

func TestQueue_ClientRejected(t *testing.T) {
	useDevBackend(t)

	_, err := executeCommand(rootCmd, "login", "--email", "sara@client.com", "--password", "password")
	require.NoError(t, err)
	_, err = executeCommand(rootCmd, "queue", "+1")
	assert.EqualError(t, err, "only stylist accounts have a queue")
}

func TestVersionCmd(t *testing.T) {
	t.Setenv("MYHAIR_LOG_FILE", filepath.Join(t.TempDir(), "myhair.log"))

	out, err := executeCommand(rootCmd, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "myhair version "+version)
	assert.Contains(t, out, "Commit: "+commit)
	assert.Contains(t, out, runtime.Version())
}
