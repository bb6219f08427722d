package models

import "testing"

func TestStoreLimitValidateBounds(t *testing.T) {
	cases := []struct {
		base, max int
		wantErr   bool
	}{
		{20, 50, false},
		{0, 0, false},
		{50, 50, false},
		{51, 50, true},
	}
	for _, c := range cases {
		input := &NewStoreLimit{ProductId: 1, LocationId: 2, BaseLimit: c.base, MaxLimit: c.max}
		err := input.ValidateBounds()
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateBounds(base=%d, max=%d) err = %v, wantErr %v", c.base, c.max, err, c.wantErr)
		}
	}
}
