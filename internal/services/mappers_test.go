package services

import (
	"encoding/json"
	"testing"

	"creatorhub_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := map[string]string{
		`12.5`:        "12.5",
		`"19.99"`:     "19.99",
		`"abc"`:       "0",
		`-3`:          "0",
		`1000000`:     "0",
		`999999.99`:   "999999.99",
		`null`:        "0",
		`"  7 "`:      "7",
		`4.005`:       "4.01",
		`{"x": 1}`:    "0",
		`[1]`:         "0",
		`"999999.994"`: "999999.99",
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			assert.Equal(t, want, parsePrice(json.RawMessage(raw)).String())
		})
	}
	assert.True(t, parsePrice(nil).IsZero())
}

func TestParseAge(t *testing.T) {
	age := func(s string) *dto.FlexString {
		f := dto.FlexString(s)
		return &f
	}

	got, ok := parseAge(age("27"))
	require.True(t, ok)
	assert.Equal(t, 27, *got)

	for _, raw := range []*dto.FlexString{nil, age(""), age("abc"), age("-1")} {
		_, ok := parseAge(raw)
		assert.False(t, ok)
	}
}

func TestParseTiers(t *testing.T) {
	tiers := parseTiers(`[{"name":" Basic ","price":"5","benefits":["a","b"]},{"name":"Pro","price":"oops"}]`)
	require.Len(t, tiers, 2)
	assert.Equal(t, "Basic", tiers[0].Name)
	assert.Equal(t, "5", tiers[0].Price.String())
	assert.Equal(t, []string{"a", "b"}, tiers[0].GetBenefits())
	assert.True(t, tiers[1].Price.IsZero())
	assert.Empty(t, tiers[1].GetBenefits())

	assert.Empty(t, parseTiers(""))
	assert.Empty(t, parseTiers("not json"))
}

func TestParseGallery(t *testing.T) {
	assert.Equal(t, []string{"/a.png", "/b.png"}, parseGallery(`[{"image":"/a.png"},"/b.png",{"image":""},42]`))
	assert.Empty(t, parseGallery(""))
	assert.Empty(t, parseGallery("{"))
}
