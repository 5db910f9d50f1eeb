package poolurl

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poolgate/internal/address"
	"poolgate/internal/hosts"
)

const sampleMint = "11111111111111111111111111111112"

func TestBuildPoolCreationURL_Devnet(t *testing.T) {
	built, err := BuildPoolCreationURL(sampleMint, hosts.Devnet)
	require.NoError(t, err)

	u, err := url.Parse(built)
	require.NoError(t, err)

	devnetHost, ok := hosts.Default().Host(hosts.Devnet)
	require.True(t, ok)

	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, devnetHost, u.Hostname())
	assert.Equal(t, sampleMint, u.Query().Get(MintParam))
	assert.Equal(t, "devnet", u.Query().Get("cluster"))
	assert.Equal(t, "/liquidity/create-pool/", u.Path)
}

func TestBuildPoolCreationURL_DefaultsToDevnet(t *testing.T) {
	withDefault, err := BuildPoolCreationURL(sampleMint, "")
	require.NoError(t, err)

	devnet, err := BuildPoolCreationURL(sampleMint, hosts.Devnet)
	require.NoError(t, err)

	assert.Equal(t, devnet, withDefault)
}

func TestBuildPoolCreationURL_Mainnet(t *testing.T) {
	built, err := BuildPoolCreationURL(sampleMint, hosts.Mainnet)
	require.NoError(t, err)

	u, err := url.Parse(built)
	require.NoError(t, err)
	assert.Equal(t, "raydium.io", u.Hostname())
	assert.Empty(t, u.Query().Get("cluster"))
	assert.Equal(t, sampleMint, u.Query().Get(MintParam))
}

func TestBuildPoolCreationURL_RoundTripRandomMints(t *testing.T) {
	r := hosts.Default()

	for i := 0; i < 100; i++ {
		pub, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
		mint := solana.PublicKeyFromBytes(pub).String()
		require.True(t, address.Validate(mint).IsValid)

		for _, network := range r.Networks() {
			built, err := BuildPoolCreationURL(mint, network)
			require.NoError(t, err)

			u, err := url.Parse(built)
			require.NoError(t, err)

			host, _ := r.Host(network)
			assert.Equal(t, host, u.Hostname())
			assert.Equal(t, mint, u.Query().Get(MintParam))
		}
	}
}

func TestBuildPoolCreationURL_RejectsInvalidAddresses(t *testing.T) {
	hostile := []string{
		"",
		" " + sampleMint,
		sampleMint + "\n",
		"evil.com/" + sampleMint,
		"@evil.com",
		"../../../../etc/passwd",
		sampleMint + "&cluster=mainnet",
		sampleMint + "#frag",
		"https://raydium.io.evil.com/xxxxxxxxxxxxxxxxxxxxxxx",
		strings.Repeat("1", 32),
		strings.Repeat("2", 45),
	}

	for _, candidate := range hostile {
		t.Run(candidate, func(t *testing.T) {
			built, err := BuildPoolCreationURL(candidate, hosts.Devnet)
			require.Error(t, err)
			assert.Empty(t, built)

			var invalid *InvalidAddressError
			require.ErrorAs(t, err, &invalid)

			var vErr *address.ValidationError
			assert.True(t, errors.As(err, &vErr), "should unwrap to a ValidationError")
		})
	}
}

func TestBuilder_RevalidatesWithItsOwnStrictness(t *testing.T) {
	strict := NewBuilder(address.NewValidator(address.StrictnessChecksummed), nil)

	// Structurally fine, but decodes to more than 32 bytes.
	candidate := strings.Repeat("z", 44)

	_, err := BuildPoolCreationURL(candidate, hosts.Devnet)
	require.NoError(t, err)

	_, err = strict.BuildPoolCreationURL(candidate, hosts.Devnet)
	var invalid *InvalidAddressError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, address.MsgNotAPublicKey, invalid.Err.Message)
}

func TestBuildPoolCreationURL_UnknownNetwork(t *testing.T) {
	_, err := BuildPoolCreationURL(sampleMint, hosts.Network("localnet"))
	var unknown *hosts.UnknownNetworkError
	require.ErrorAs(t, err, &unknown)
}
