package billingsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscount_Table(t *testing.T) {
	testCases := []struct {
		name     string
		gender   Gender
		age      int64
		subtotal int64
		percent  int64
	}{
		{"below all bands", Male, 30, 199999, 0},
		{"male junior tier1 low edge", Male, 30, 200000, 10},
		{"male junior tier1 high edge", Male, 64, 300000, 10},
		{"male junior tier2", Male, 30, 300001, 20},
		{"male junior tier2 high edge", Male, 30, 500000, 20},
		{"male junior tier3", Male, 30, 500001, 25},
		{"male senior tier1", Male, 65, 250000, 20},
		{"male senior tier2", Male, 70, 450000, 30},
		{"male senior tier3", Male, 80, 900000, 35},
		{"female junior tier1", Female, 40, 200000, 15},
		{"female junior tier2", Female, 40, 400000, 25},
		{"female junior tier3", Female, 40, 600000, 35},
		{"female senior tier1", Female, 65, 300000, 25},
		{"female senior tier2", Female, 66, 500000, 35},
		{"female senior tier3", Female, 90, 750000, 40},
		{"zero subtotal", Female, 90, 0, 0},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.percent, Discount(tt.gender, tt.age, tt.subtotal))
		})
	}
}

// The historical variant with mismatched comparison operators put 300000 into
// the second tier. 300000 belongs to the first band, inclusive at both ends.
func TestDiscount_BoundaryPolicy(t *testing.T) {
	assert.Equal(t, int64(10), Discount(Male, 30, 300000))
	assert.Equal(t, int64(20), Discount(Male, 30, 500000))
	assert.Equal(t, int64(20), Discount(Male, 64, 300001))
	assert.Equal(t, int64(25), Discount(Male, 30, 500001))
}

func TestDiscount_OnlyKnownPercents(t *testing.T) {
	known := map[int64]bool{0: true, 10: true, 15: true, 20: true, 25: true, 30: true, 35: true, 40: true}
	for _, g := range []Gender{Male, Female} {
		for _, age := range []int64{20, 64, 65, 80} {
			for sub := int64(0); sub <= 700000; sub += 50000 {
				pct := Discount(g, age, sub)
				assert.Truef(t, known[pct], "gender=%s age=%d subtotal=%d gave %d", g, age, sub, pct)
			}
		}
	}
}

func TestQuote_SeniorMaleExample(t *testing.T) {
	q, err := New().Quote("male", 70, 450000)
	require.NoError(t, err)
	assert.Equal(t, int64(30), q.Percent)
	assert.Equal(t, int64(135000), q.DiscountAmount)
	assert.Equal(t, int64(315000), q.NetPayable)
}

func TestQuote_Exactness(t *testing.T) {
	svc := New()
	for sub := int64(150000); sub <= 650000; sub += 12345 {
		q, err := svc.Quote("female", 66, sub)
		require.NoError(t, err)
		assert.Equal(t, sub*q.Percent/100, q.DiscountAmount)
		assert.Equal(t, sub-q.DiscountAmount, q.NetPayable)
	}
}

func TestQuote_BadInput(t *testing.T) {
	svc := New()
	for _, tt := range []struct {
		gender   string
		age      int64
		subtotal int64
	}{
		{"other", 30, 250000},
		{"", 30, 250000},
		{"male", 0, 250000},
		{"female", -1, 250000},
		{"male", 30, -5},
	} {
		_, err := svc.Quote(tt.gender, tt.age, tt.subtotal)
		require.Error(t, err)
		assert.Equal(t, ErrBadInput, Code(err))
	}
}
