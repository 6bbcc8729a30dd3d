package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatic(t *testing.T) {
	assert.Equal(t, "abc", Static("abc").Token())
	assert.Empty(t, Static("").Token())
}

func TestEnv_FirstNonEmptyWins(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv(GitHubEnvVar, "from-github-var")
	assert.Equal(t, "from-github-var", Default().Token())

	t.Setenv(EnvVar, "from-gitfolio-var")
	assert.Equal(t, "from-gitfolio-var", Default().Token())
}

func TestChain_Order(t *testing.T) {
	chain := Chain{Static(""), Static("second"), Static("third")}
	assert.Equal(t, "second", chain.Token())

	assert.Empty(t, Chain{Static(""), Static("")}.Token())
}

func TestChain_EnvBeatsPersisted(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv(GitHubEnvVar, "")
	chain := Chain{Default(), Static("persisted")}
	assert.Equal(t, "persisted", chain.Token())

	t.Setenv(EnvVar, "env-wins")
	assert.Equal(t, "env-wins", chain.Token())
}
