package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRosterClaimAndRelease(t *testing.T) {
	r := NewRoster()

	require.NoError(t, r.Claim("ada", &Client{ID: "c1"}))
	require.Equal(t, 1, r.Len())

	r.Release("ada")
	require.Zero(t, r.Len())
	require.NoError(t, r.Claim("ada", &Client{ID: "c2"}))
}

func TestRosterRejectsDuplicateName(t *testing.T) {
	r := NewRoster()

	require.NoError(t, r.Claim("ada", &Client{ID: "c1"}))
	err := r.Claim("ada", &Client{ID: "c2"})
	require.ErrorIs(t, err, ErrNameTaken)
}

func TestRosterRejectsBlankName(t *testing.T) {
	r := NewRoster()

	require.ErrorIs(t, r.Claim("", nil), ErrNameEmpty)
	require.ErrorIs(t, r.Claim("   ", nil), ErrNameEmpty)
}

func TestRosterTrimsNames(t *testing.T) {
	r := NewRoster()

	require.NoError(t, r.Claim("  ada  ", &Client{ID: "c1"}))
	require.ErrorIs(t, r.Claim("ada", &Client{ID: "c2"}), ErrNameTaken)
}

func TestRosterNamesSorted(t *testing.T) {
	r := NewRoster()

	require.NoError(t, r.Claim("zoe", &Client{ID: "c1"}))
	require.NoError(t, r.Claim("ada", &Client{ID: "c2"}))
	require.NoError(t, r.Claim("mei", &Client{ID: "c3"}))

	require.Equal(t, []string{"ada", "mei", "zoe"}, r.Names())
}
