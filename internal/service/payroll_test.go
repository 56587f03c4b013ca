package service

import (
	"testing"
)

func TestAccrueSalary(t *testing.T) {
	cases := []struct {
		name        string
		base        float64
		presentDays int
		workingDays int
		want        float64
	}{
		{"full month", 4200, 21, 21, 4200},
		{"half month", 4200, 10, 21, 2000},
		{"no attendance", 4200, 0, 21, 0},
		{"overshoot capped", 4200, 25, 21, 4200},
		{"zero salary", 0, 21, 21, 0},
		{"zero working days", 4200, 5, 0, 0},
		{"negative days", 4200, -3, 21, 0},
		{"rounds to cents", 1000, 1, 3, 333.33},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AccrueSalary(tc.base, tc.presentDays, tc.workingDays); got != tc.want {
				t.Errorf("AccrueSalary(%v, %d, %d) = %v, want %v",
					tc.base, tc.presentDays, tc.workingDays, got, tc.want)
			}
		})
	}
}
