package hosts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetwork(t *testing.T) {
	testCases := []struct {
		input    string
		expected Network
	}{
		{"", Devnet},
		{"devnet", Devnet},
		{"DEVNET", Devnet},
		{"mainnet", Mainnet},
		{"mainnet-beta", Mainnet},
		{" mainnet ", Mainnet},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			n, err := ParseNetwork(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, n)
		})
	}

	_, err := ParseNetwork("testnet")
	var unknown *UnknownNetworkError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "testnet", unknown.Network)
}

func TestDefaultNetworkIsDevnet(t *testing.T) {
	assert.Equal(t, Devnet, DefaultNetwork)
}

func TestRegistry_AllowsHost(t *testing.T) {
	r := Default()

	testCases := []struct {
		host    string
		allowed bool
	}{
		{"raydium.io", true},
		{"www.raydium.io", true},
		{"RAYDIUM.IO", true},
		{"Raydium.Io", true},
		{"raydium.io.", false},
		{"raydium.io.evil.com", false},
		{"raydium.io.attacker.net", false},
		{"evil-raydium.io", false},
		{"app.raydium.io", false},
		{"raydium.ib", false},
		{"raydium.io:443", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.host, func(t *testing.T) {
			assert.Equal(t, tc.allowed, r.AllowsHost(tc.host))
		})
	}
}

func TestRegistry_BaseURL(t *testing.T) {
	r := Default()

	for _, n := range []Network{Mainnet, Devnet} {
		u, err := r.BaseURL(n)
		require.NoError(t, err)
		assert.Equal(t, "https", u.Scheme)
		assert.True(t, r.AllowsHost(u.Hostname()))

		host, ok := r.Host(n)
		require.True(t, ok)
		assert.Equal(t, u.Hostname(), host)
	}

	devnet, err := r.BaseURL(Devnet)
	require.NoError(t, err)
	assert.Equal(t, "devnet", devnet.Query().Get("cluster"))

	_, err = r.BaseURL("localnet")
	assert.Error(t, err)
}

func TestRegistry_BaseURLReturnsCopy(t *testing.T) {
	r := Default()

	u, err := r.BaseURL(Mainnet)
	require.NoError(t, err)
	u.Host = "evil.example"
	u.Path = "/steal"

	again, err := r.BaseURL(Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "raydium.io", again.Host)
	assert.Equal(t, "/liquidity/create-pool/", again.Path)
}

func TestRegistry_HostsReturnsCopy(t *testing.T) {
	r := Default()

	list := r.Hosts()
	require.Equal(t, []string{"raydium.io", "www.raydium.io"}, list)
	list[0] = "evil.example"

	assert.False(t, r.AllowsHost("evil.example"))
	assert.Equal(t, []Network{Devnet, Mainnet}, r.Networks())
}
