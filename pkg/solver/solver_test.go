package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPairKeyOf_OrderIndependent(t *testing.T) {
	require.Equal(t, pairKeyOf("a", "b"), pairKeyOf("b", "a"))
}

func TestPairKeyOf_Distinguishes(t *testing.T) {
	require.NotEqual(t, pairKeyOf("a", "b"), pairKeyOf("a", "c"))
}
