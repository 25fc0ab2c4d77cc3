package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/cattery"
	"github.com/iov-one/cattery/catterytest"
	"github.com/iov-one/cattery/errors"
	"github.com/iov-one/cattery/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	addr := catterytest.SeqAddr(7)
	accts, err := json.Marshal([]GenesisAccount{{Address: addr, Free: 1500}})
	require.NoError(t, err)
	conf := []byte(`{"cash": {"minimal_balance": 500}}`)

	cases := map[string]struct {
		opts    cattery.Options
		wantErr *errors.Error
		free    uint64
	}{
		"configuration is required": {
			opts:    cattery.Options{"cash": accts},
			wantErr: errors.ErrNotFound,
		},
		"no accounts": {
			opts: cattery.Options{"conf": conf},
		},
		"funded account": {
			opts: cattery.Options{"conf": conf, "cash": accts},
			free: 1500,
		},
		"hex encoded address": {
			opts: cattery.Options{
				"conf": conf,
				"cash": []byte(`[{"address": "0000000000000000000000000000000000000007", "free": 42}]`),
			},
			free: 42,
		},
		"invalid address": {
			opts: cattery.Options{
				"conf": conf,
				"cash": []byte(`[{"address": "", "free": 42}]`),
			},
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			err := Initializer{}.FromGenesis(tc.opts, db)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)

			loaded, err := LoadConfig(db)
			require.NoError(t, err)
			assert.Equal(t, uint64(500), loaded.MinimalBalance)

			free, err := NewController(loaded).Balance(db, addr)
			require.NoError(t, err)
			assert.Equal(t, tc.free, free)
		})
	}
}

func TestConfigurationSerialization(t *testing.T) {
	conf := Configuration{MinimalBalance: 321}
	raw, err := conf.Marshal()
	require.NoError(t, err)

	var got Configuration
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, conf, got)

	read, err := ReadConfig(cattery.Options{"conf": []byte(`{"cash": {"minimal_balance": 321}}`)})
	require.NoError(t, err)
	assert.Equal(t, conf, read)
}
