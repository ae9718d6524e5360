package resolve

import (
	"testing"

	"github.com/schmitthub/regsmoke/internal/cmdutil"
	"github.com/schmitthub/regsmoke/internal/config"
	"github.com/schmitthub/regsmoke/internal/iostreams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrintsLoopbackAddress(t *testing.T) {
	ios, _, out, _ := iostreams.Test()
	f := &cmdutil.Factory{
		IOStreams: ios,
		Config: func() (*config.Config, error) {
			return config.DefaultConfig(), nil
		},
	}

	cmd := NewCmdResolve(f, nil)
	cmd.SetArgs([]string{})

	_, err := cmd.ExecuteC()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3000\n", out.String())
}
