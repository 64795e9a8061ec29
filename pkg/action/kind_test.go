package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_CategoryCoversAllKinds(t *testing.T) {
	for _, k := range AllKinds() {
		assert.True(t, k.Valid(), "kind %s should be valid", k)
		_, ok := kindCategories[k]
		assert.True(t, ok, "kind %s has no category", k)
	}
	assert.Len(t, AllKinds(), len(kindCategories))
}

func TestKind_Category(t *testing.T) {
	tests := []struct {
		kind Kind
		want Category
	}{
		{KindMove, CategoryMovement},
		{KindTake, CategoryItem},
		{KindAttack, CategoryCombat},
		{KindPersuade, CategorySocial},
		{KindSleep, CategoryWorld},
		{KindDrink, CategoryConsumption},
		{KindPickLock, CategorySkill},
		{KindStatus, CategoryMeta},
		{KindCustom, CategoryCustom},
		{Kind("juggle"), CategoryCustom},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Category())
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"move", KindMove, false},
		{"Go", KindMove, false},
		{"pick up", KindTake, false},
		{"pick-lock", KindPickLock, false},
		{"  ATTACK ", KindAttack, false},
		{"x", KindExamine, false},
		{"juggle", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAction_Describe(t *testing.T) {
	assert.Equal(t, "move well", New(KindMove, "well").Describe())
	assert.Equal(t, "give apple to guard", New(KindGive, "apple").WithIndirect("guard").Describe())
	assert.Equal(t, "pick lock chest", New(KindPickLock, "chest").Describe())
	assert.Equal(t, "dance a jig", Custom("dance a jig").Describe())
}

func TestAction_WithParamDoesNotAlias(t *testing.T) {
	base := New(KindWait, "").WithParam("minutes", "10")
	changed := base.WithParam("minutes", "30")

	assert.Equal(t, "10", base.Param("minutes"))
	assert.Equal(t, "30", changed.Param("minutes"))
}

func TestRiskTags_Add(t *testing.T) {
	var tags RiskTags
	tags = tags.Add(RiskDangerous, RiskHostile, RiskDangerous, "")

	assert.Equal(t, RiskTags{RiskDangerous, RiskHostile}, tags)
	assert.True(t, tags.Has(RiskHostile))
	assert.False(t, tags.Has(RiskValuable))
	assert.Equal(t, []string{"dangerous", "hostile"}, tags.Strings())
}
