package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanTypeRank(t *testing.T) {
	require.Less(t, PlanTypeBasico.Rank(), PlanTypeMedio.Rank())
	require.Less(t, PlanTypeMedio.Rank(), PlanTypePremium.Rank())
	require.Zero(t, PlanTypeFree.Rank())
	require.False(t, PlanTypeFree.Paid())
}

func TestDefaultDaringLevel(t *testing.T) {
	require.Equal(t, 3, PlanTypeBasico.DefaultDaringLevel())
	require.Equal(t, 5, PlanTypeMedio.DefaultDaringLevel())
	require.Equal(t, 7, PlanTypePremium.DefaultDaringLevel())
}

func TestUserSnapshotHasAccess(t *testing.T) {
	u := &UserSnapshot{Plan: PlanTypeMedio, HasActiveSubscription: true}
	require.True(t, u.HasAccess(""))
	require.True(t, u.HasAccess(PlanTypeBasico))
	require.True(t, u.HasAccess(PlanTypeMedio))
	require.False(t, u.HasAccess(PlanTypePremium))

	u.HasActiveSubscription = false
	require.False(t, u.HasAccess(""))

	var nilUser *UserSnapshot
	require.False(t, nilUser.HasAccess(""))
}
