package completion_helper

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"

	"github.com/ghreadme/ghreadme/internal/config"
)

func TestRepositoryComplete(t *testing.T) {
	// Arrange
	settings := config.NewSettings(filepath.Join(t.TempDir(), "settings.json"))
	settings.Username = "octo"
	settings.SetComment("octo", "octo/zeta", "z")
	settings.SetComment("octo", "octo/alpha", "a")
	settings.SetComment("other", "other/repo", "hidden")

	var out bytes.Buffer
	cmd := &cli.Command{
		Name:   "delete",
		Writer: &out,
		Flags:  []cli.Flag{&cli.StringFlag{Name: "username", Aliases: []string{"u"}}},
	}

	// Act
	RepositoryComplete(settings)(context.Background(), cmd)

	// Assert
	assert.Equal(t, "octo/alpha\nocto/zeta\n--username\n-u\n", out.String())
}
