package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioKind_String(t *testing.T) {
	assert.Equal(t, "earnOut", EarnOut.String())
	assert.Equal(t, "sellerFinancing", SellerFinancing.String())
	assert.Equal(t, "allCash", AllCash.String())
	assert.Equal(t, "ScenarioKind(7)", ScenarioKind(7).String())
}

func TestScenarioKind_TextRoundTrip(t *testing.T) {
	for _, kind := range ScenarioKinds {
		text, err := kind.MarshalText()
		require.NoError(t, err)

		var decoded ScenarioKind
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, kind, decoded)
	}
}

func TestScenarioKind_AsMapKey(t *testing.T) {
	data, err := json.Marshal(map[ScenarioKind]int64{EarnOut: 1, AllCash: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"earnOut":1,"allCash":3}`, string(data))

	var decoded map[ScenarioKind]int64
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(3), decoded[AllCash])
}

func TestScenarioKind_Unknown(t *testing.T) {
	_, err := ScenarioKind(9).MarshalText()
	assert.Error(t, err)

	_, err = ParseScenarioKind("equity")
	assert.Error(t, err)
}

func TestYearlyPayout(t *testing.T) {
	y := YearlyPayout{Year: 2, EarnOut: 10, SellerFinancing: 20, AllCash: 30}

	assert.Equal(t, "Year 2", y.Label())
	assert.Equal(t, int64(60), y.Total())
	assert.Equal(t, int64(20), y.Payout(SellerFinancing))
	assert.Zero(t, y.Payout(ScenarioKind(5)))
}

func TestDealSummary_Scenario(t *testing.T) {
	s := DealSummary{
		EarnOut:         ScenarioSummary{Total: 100, Taxes: 25, Net: 75},
		SellerFinancing: ScenarioSummary{Total: 200, Taxes: 50, Net: 150},
	}

	assert.Equal(t, s.EarnOut, s.Scenario(EarnOut))
	assert.Equal(t, s.SellerFinancing, s.Scenario(SellerFinancing))
	assert.Equal(t, ScenarioSummary{}, s.Scenario(AllCash))
	assert.Equal(t, ScenarioSummary{}, s.Scenario(ScenarioKind(-1)))
}
