package regex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGitHubLogin(t *testing.T) {
	valid := []string{"octo", "a", "octo-cat", "Octo123", "a-b-c", "a23456789012345678901234567890123456789"}
	invalid := []string{"", "-octo", "octo-", "a--b", "octo--cat", "octo cat", "octo/cat", "a234567890123456789012345678901234567890"}

	for _, login := range valid {
		assert.True(t, GitHubLogin.MatchString(login), login)
	}
	for _, login := range invalid {
		assert.False(t, GitHubLogin.MatchString(login), login)
	}
}

func TestIsLogin(t *testing.T) {
	hyphenated := strings.Repeat("a-", 19) + "ab"

	assert.True(t, IsLogin("octo-cat"))
	assert.True(t, IsLogin(strings.Repeat("a", MaxLoginLength)))
	assert.False(t, IsLogin("a--b"))
	assert.True(t, GitHubLogin.MatchString(hyphenated))
	assert.False(t, IsLogin(hyphenated))
}

func TestIsRepositoryName(t *testing.T) {
	assert.True(t, IsRepositoryName("octo-org/alpha"))
	assert.False(t, IsRepositoryName("octo--org/alpha"))
	assert.False(t, IsRepositoryName(strings.Repeat("a-", 20)+"a/alpha"))
}

func TestRepositoryName(t *testing.T) {
	assert.True(t, RepositoryName.MatchString("octo/alpha"))
	assert.True(t, RepositoryName.MatchString("octo-org/my.repo_v2"))
	assert.False(t, RepositoryName.MatchString("alpha"))
	assert.False(t, RepositoryName.MatchString("octo/alpha/extra"))
	assert.False(t, RepositoryName.MatchString("octo/"))
	assert.False(t, RepositoryName.MatchString("octo--org/alpha"))
}

func TestHTTPSRepo(t *testing.T) {
	tests := []struct {
		url   string
		owner string
		repo  string
	}{
		{"https://github.com/octo/alpha", "octo", "alpha"},
		{"https://github.com/octo/alpha.git", "octo", "alpha"},
		{"https://github.com/octo/alpha/", "octo", "alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			m := HTTPSRepo.FindStringSubmatch(tt.url)
			if assert.Len(t, m, 3) {
				assert.Equal(t, tt.owner, m[1])
				assert.Equal(t, tt.repo, m[2])
			}
		})
	}

	assert.Nil(t, HTTPSRepo.FindStringSubmatch("https://gitlab.com/octo/alpha"))
}
