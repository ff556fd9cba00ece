package risk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens []string
		want   map[string]string
	}{
		{
			name:   "key=value",
			tokens: []string{"entry=3600", "sl=3564,58", "risk=1"},
			want:   map[string]string{"entry": "3600", "sl": "3564,58", "risk": "1"},
		},
		{
			name:   "key value",
			tokens: []string{"entry", "3600", "sl", "3564,58"},
			want:   map[string]string{"entry": "3600", "sl": "3564,58"},
		},
		{
			name:   "mixed and case",
			tokens: []string{"ENTRY=3600", "Sl", "3564", "Side=Long"},
			want:   map[string]string{"entry": "3600", "sl": "3564", "side": "Long"},
		},
		{
			name:   "split on first equals",
			tokens: []string{"note=a=b"},
			want:   map[string]string{"note": "a=b"},
		},
		{
			name:   "trailing key dropped",
			tokens: []string{"sl", "35", "tp"},
			want:   map[string]string{"sl": "35"},
		},
		{
			name:   "last wins",
			tokens: []string{"sl=1", "sl", "2", "sl=3"},
			want:   map[string]string{"sl": "3"},
		},
		{
			name:   "empty value",
			tokens: []string{"tp="},
			want:   map[string]string{"tp": ""},
		},
		{
			name:   "no tokens",
			tokens: nil,
			want:   map[string]string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseArgs(tt.tokens))
		})
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"3564,58", 3564.58, false},
		{"3564.58", 3564.58, false},
		{"-12,5", -12.5, false},
		{" 1000 ", 1000, false},
		{"0", 0, false},
		{"3,564.58", 0, true},
		{"1.2.3", 0, true},
		{"abc", 0, true},
		{"12€", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"1,", 1, false},
		{",5", 0.5, false},
		{"5.", 5, false},
		{"1e3", 0, true},
		{"+5", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseNumber(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidNumber))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestNewRequest(t *testing.T) {
	t.Parallel()

	req, err := NewRequest(map[string]string{
		"capital": "1000",
		"risk":    "1,5",
		"side":    "Short",
		"lev":     "10",
		"fee":     "0",
		"color":   "blue",
	})
	require.NoError(t, err)

	require.NotNil(t, req.Capital)
	assert.Equal(t, 1000.0, *req.Capital)
	require.NotNil(t, req.RiskPercent)
	assert.Equal(t, 1.5, *req.RiskPercent)
	assert.Equal(t, SideShort, req.Side)
	assert.Nil(t, req.SL)
	assert.Nil(t, req.Entry)
	require.NotNil(t, req.FeeBps)
	assert.Equal(t, 0.0, *req.FeeBps)
}

func TestNewRequest_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params map[string]string
		kind   error
		field  string
	}{
		{"bad number", map[string]string{"sl": "3,564.58"}, ErrInvalidNumber, KeySL},
		{"unknown side", map[string]string{"side": "sideways"}, ErrInvalidConstraint, KeySide},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewRequest(tt.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))
			assert.Equal(t, tt.field, FieldOf(err))
		})
	}
}

func TestWithDefaults_KeepsExplicit(t *testing.T) {
	t.Parallel()

	req := Request{Leverage: f64(3)}
	got := req.WithDefaults(Defaults{
		Capital:  f64(500),
		Leverage: f64(20),
		FeeBps:   f64(4),
	})

	assert.Equal(t, 500.0, *got.Capital)
	assert.Nil(t, got.RiskPercent)
	assert.Equal(t, 3.0, *got.Leverage)
	assert.Equal(t, 4.0, *got.FeeBps)
}
